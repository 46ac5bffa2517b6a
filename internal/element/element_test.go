package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drawing-backend/internal/geometry"
)

func rect(id string, x, y, w, h float64) Element {
	return Element{
		ID:              id,
		Kind:            KindRectangle,
		X:               x,
		Y:               y,
		Width:           w,
		Height:          h,
		StrokeColor:     "#1971c2",
		BackgroundColor: "transparent",
		StrokeWidth:     2,
		StrokeStyle:     StrokeSolid,
		Roughness:       1,
		Opacity:         1,
	}
}

func TestHitTest(t *testing.T) {
	el := rect("a", 10, 10, 20, 20)

	assert.True(t, el.HitTest(geometry.Point{X: 15, Y: 15}))
	assert.True(t, el.HitTest(geometry.Point{X: 10, Y: 10}))
	assert.False(t, el.HitTest(geometry.Point{X: 31, Y: 15}))
}

func TestHitTestDeletedElement(t *testing.T) {
	el := rect("a", 10, 10, 20, 20)
	el.IsDeleted = true

	assert.False(t, el.HitTest(geometry.Point{X: 15, Y: 15}))
}

func TestTopmostAtPrefersLaterElements(t *testing.T) {
	doc := Document{
		rect("bottom", 0, 0, 100, 100),
		rect("top", 0, 0, 100, 100),
	}

	hit := doc.TopmostAt(geometry.Point{X: 50, Y: 50})
	require.NotNil(t, hit)
	assert.Equal(t, "top", hit.ID)
}

func TestTopmostAtSkipsDeleted(t *testing.T) {
	top := rect("top", 0, 0, 100, 100)
	top.IsDeleted = true
	doc := Document{rect("bottom", 0, 0, 100, 100), top}

	hit := doc.TopmostAt(geometry.Point{X: 50, Y: 50})
	require.NotNil(t, hit)
	assert.Equal(t, "bottom", hit.ID)
}

func TestTopmostKindAt(t *testing.T) {
	text := rect("t1", 0, 0, 100, 100)
	text.Kind = KindText
	doc := Document{text, rect("r1", 0, 0, 100, 100)}

	hit := doc.TopmostKindAt(geometry.Point{X: 50, Y: 50}, KindText)
	require.NotNil(t, hit)
	assert.Equal(t, "t1", hit.ID)

	assert.Nil(t, doc.TopmostKindAt(geometry.Point{X: 50, Y: 50}, KindImage))
}

func TestRemoveIsHardRemoval(t *testing.T) {
	doc := Document{rect("a", 0, 0, 10, 10), rect("b", 20, 20, 10, 10)}

	out := doc.Remove("a")

	assert.Len(t, out, 1)
	assert.Equal(t, "b", out[0].ID)
	// original untouched
	assert.Len(t, doc, 2)
}

func TestRemoveUnknownIDReturnsCopy(t *testing.T) {
	doc := Document{rect("a", 0, 0, 10, 10)}

	out := doc.Remove("missing")

	assert.Len(t, out, 1)
	out[0].X = 999
	assert.Equal(t, 0.0, doc[0].X)
}

func TestCloneDeepCopiesPoints(t *testing.T) {
	el := rect("a", 0, 0, 10, 10)
	el.Kind = KindDraw
	el.Points = []geometry.Point{{X: 1, Y: 1}, {X: 2, Y: 2}}

	clone := el.Clone()
	clone.Points[0].X = 99

	assert.Equal(t, 1.0, el.Points[0].X)
}

func TestDocumentCloneIsIndependent(t *testing.T) {
	doc := Document{rect("a", 0, 0, 10, 10)}
	clone := doc.Clone()

	clone[0].X = 500

	assert.Equal(t, 0.0, doc[0].X)
}
