package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validElement(id string) Element {
	return rect(id, 10, 10, 50, 50)
}

func TestValidateDocumentAccepts(t *testing.T) {
	doc := Document{validElement("a"), validElement("b")}
	assert.Empty(t, ValidateDocument(doc))
}

func TestValidateDocumentEmptyPasses(t *testing.T) {
	assert.Empty(t, ValidateDocument(Document{}))
}

func TestValidateDocumentFieldErrors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Element)
		wantField string
	}{
		{"missing id", func(e *Element) { e.ID = "" }, "elements[0].id"},
		{"unknown type", func(e *Element) { e.Kind = "blob" }, "elements[0].type"},
		{"tool-only type rejected", func(e *Element) { e.Kind = "eraser" }, "elements[0].type"},
		{"missing strokeColor", func(e *Element) { e.StrokeColor = "" }, "elements[0].strokeColor"},
		{"missing backgroundColor", func(e *Element) { e.BackgroundColor = "" }, "elements[0].backgroundColor"},
		{"bad strokeWidth", func(e *Element) { e.StrokeWidth = 3 }, "elements[0].strokeWidth"},
		{"bad strokeStyle", func(e *Element) { e.StrokeStyle = "wavy" }, "elements[0].strokeStyle"},
		{"bad roughness", func(e *Element) { e.Roughness = 5 }, "elements[0].roughness"},
		{"opacity below range", func(e *Element) { e.Opacity = -0.1 }, "elements[0].opacity"},
		{"opacity above range", func(e *Element) { e.Opacity = 1.5 }, "elements[0].opacity"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := validElement("a")
			tt.mutate(&el)

			errs := ValidateDocument(Document{el})
			require.NotEmpty(t, errs)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestValidateDocumentOpacityBoundariesPass(t *testing.T) {
	zero := validElement("a")
	zero.Opacity = 0
	one := validElement("b")
	one.Opacity = 1

	assert.Empty(t, ValidateDocument(Document{zero, one}))
}

func TestValidateDocumentDuplicateID(t *testing.T) {
	doc := Document{validElement("same"), validElement("same")}

	errs := ValidateDocument(doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "elements[1].id", errs[0].Field)
	assert.Contains(t, errs[0].Message, "elements[0]")
}

func TestValidateDocumentRejectsWholeBatch(t *testing.T) {
	bad := validElement("b")
	bad.Kind = "unknown"
	doc := Document{validElement("a"), bad, validElement("c")}

	// one bad element fails the whole document
	errs := ValidateDocument(doc)
	require.Len(t, errs, 1)
	assert.Equal(t, "elements[1].type", errs[0].Field)
}
