package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drawing-backend/internal/element"
)

func newTestEngine() *Engine {
	return New(800, 600)
}

// drawRect 사각형 하나를 드래그로 그린다
func drawRect(e *Engine, x1, y1, x2, y2 float64) {
	e.SetTool(ToolRectangle)
	e.PointerDown(x1, y1)
	e.PointerMove(x2, y2)
	e.PointerUp(x2, y2)
}

func TestDrawRectangleCommitsSingleElement(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 10, 10, 100, 80)

	doc := e.Document()
	require.Len(t, doc, 1)
	assert.Equal(t, element.KindRectangle, doc[0].Kind)
	assert.Equal(t, 10.0, doc[0].X)
	assert.Equal(t, 10.0, doc[0].Y)
	assert.Equal(t, 90.0, doc[0].Width)
	assert.Equal(t, 70.0, doc[0].Height)
	assert.True(t, e.CanUndo())

	e.Undo()
	assert.Empty(t, e.Document())
}

func TestDrawLeftwardDragNormalizes(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 100, 80, 10, 10)

	doc := e.Document()
	require.Len(t, doc, 1)
	assert.Equal(t, 10.0, doc[0].X)
	assert.Equal(t, 90.0, doc[0].Width)
}

func TestTinyShapeIsDiscarded(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 10, 10, 12, 13)

	assert.Empty(t, e.Document())
	assert.False(t, e.CanUndo())
	assert.Equal(t, StateIdle, e.State())
}

func TestShapePreviewIsNotACommit(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolRectangle)
	e.PointerDown(10, 10)
	e.PointerMove(50, 50)

	// preview visible but nothing committed yet
	assert.Len(t, e.Document(), 1)
	assert.False(t, e.CanUndo())

	e.PointerMove(100, 80)
	e.PointerUp(100, 80)

	// one gesture, one undo step
	assert.True(t, e.CanUndo())
	e.Undo()
	assert.Empty(t, e.Document())
	assert.False(t, e.CanUndo())
}

func TestShapePreviewTracksPointer(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolRectangle)
	e.PointerDown(10, 10)
	e.PointerMove(40, 30)

	doc := e.Document()
	require.Len(t, doc, 1)
	id := doc[0].ID
	assert.Equal(t, 30.0, doc[0].Width)
	assert.Equal(t, 20.0, doc[0].Height)

	// 미리보기는 같은 요소를 갱신한다
	e.PointerMove(90, 70)
	doc = e.Document()
	require.Len(t, doc, 1)
	assert.Equal(t, id, doc[0].ID)
	assert.Equal(t, 80.0, doc[0].Width)
	assert.Equal(t, 60.0, doc[0].Height)
	assert.False(t, e.CanUndo())
}

func TestUndoIgnoredDuringGesture(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 0, 0, 100, 100)

	e.PointerDown(200, 200)
	e.PointerMove(250, 250)
	e.Undo()

	// mid-gesture undo must not fire
	assert.Len(t, e.Document(), 2)

	e.PointerUp(250, 250)
	assert.Len(t, e.Document(), 2)
}

func TestFreehandNeedsTwoPoints(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolDraw)

	// single click, no movement
	e.PointerDown(10, 10)
	e.PointerUp(10, 10)

	assert.Empty(t, e.Document())
	assert.False(t, e.CanUndo())
}

func TestFreehandCommitsPathWithBounds(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolDraw)
	e.PointerDown(10, 20)
	e.PointerMove(30, 5)
	e.PointerMove(50, 40)
	e.PointerUp(50, 40)

	doc := e.Document()
	require.Len(t, doc, 1)
	assert.Equal(t, element.KindDraw, doc[0].Kind)
	assert.Len(t, doc[0].Points, 3)
	assert.Equal(t, 10.0, doc[0].X)
	assert.Equal(t, 5.0, doc[0].Y)
	assert.Equal(t, 40.0, doc[0].Width)
	assert.Equal(t, 35.0, doc[0].Height)

	e.Undo()
	assert.Empty(t, e.Document())
}

func TestFreehandSkipsDuplicateMovePoints(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolDraw)
	e.PointerDown(10, 10)
	e.PointerMove(10, 10)
	e.PointerMove(20, 20)
	e.PointerMove(20, 20)
	e.PointerUp(20, 20)

	doc := e.Document()
	require.Len(t, doc, 1)
	assert.Len(t, doc[0].Points, 2)
}

func TestDragCommitsOnceAndUndoRestoresPosition(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 10, 10, 100, 80)

	e.SetTool(ToolSelect)
	e.PointerDown(50, 50)
	assert.Equal(t, StateDragging, e.State())
	e.PointerMove(150, 150)
	e.PointerUp(150, 150)

	doc := e.Document()
	require.Len(t, doc, 1)
	assert.Equal(t, 110.0, doc[0].X)
	assert.Equal(t, 110.0, doc[0].Y)

	e.Undo()
	doc = e.Document()
	require.Len(t, doc, 1)
	assert.Equal(t, 10.0, doc[0].X)
	assert.Equal(t, 10.0, doc[0].Y)
}

func TestSelectClickPicksTopmost(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 0, 0, 100, 100)
	drawRect(e, 0, 0, 100, 100)
	topID := e.Document()[1].ID

	e.SetTool(ToolSelect)
	e.PointerDown(50, 50)
	e.PointerUp(50, 50)

	require.Len(t, e.Selection(), 1)
	assert.Equal(t, topID, e.Selection()[0])
}

func TestClickEmptySpaceClearsSelection(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 10, 10, 100, 80)

	e.SetTool(ToolSelect)
	e.PointerDown(50, 50)
	e.PointerUp(50, 50)
	require.Len(t, e.Selection(), 1)

	e.PointerDown(500, 500)
	e.PointerUp(500, 500)
	assert.Empty(t, e.Selection())
}

func TestSwitchingToolClearsSelection(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 10, 10, 100, 80)

	e.SetTool(ToolSelect)
	e.PointerDown(50, 50)
	e.PointerUp(50, 50)
	require.Len(t, e.Selection(), 1)

	e.SetTool(ToolRectangle)
	assert.Empty(t, e.Selection())
}

func TestResizeNWHandle(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 0, 0, 100, 100)

	e.SetTool(ToolSelect)
	e.PointerDown(50, 50)
	e.PointerUp(50, 50)
	require.NotNil(t, e.SelectedElement())

	// grab the nw corner and drag inward
	e.PointerDown(0, 0)
	assert.Equal(t, StateResizing, e.State())
	e.PointerMove(30, 30)
	e.PointerUp(30, 30)

	sel := e.SelectedElement()
	require.NotNil(t, sel)
	assert.Equal(t, 30.0, sel.X)
	assert.Equal(t, 30.0, sel.Y)
	assert.Equal(t, 70.0, sel.Width)
	assert.Equal(t, 70.0, sel.Height)

	e.Undo()
	sel = e.SelectedElement()
	require.NotNil(t, sel)
	assert.Equal(t, 0.0, sel.X)
	assert.Equal(t, 100.0, sel.Width)
}

func TestResizeClampsToMinimumSize(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 0, 0, 100, 100)

	e.SetTool(ToolSelect)
	e.PointerDown(50, 50)
	e.PointerUp(50, 50)

	// drag nw corner well past the opposite edge
	e.PointerDown(0, 0)
	e.PointerMove(95, 95)
	e.PointerUp(95, 95)

	sel := e.SelectedElement()
	require.NotNil(t, sel)
	assert.Equal(t, 20.0, sel.Width)
	assert.Equal(t, 20.0, sel.Height)
	// opposite edge stays anchored
	assert.Equal(t, 80.0, sel.X)
	assert.Equal(t, 80.0, sel.Y)
}

func TestResizeEastHandleOnlyChangesWidth(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 0, 0, 100, 100)

	e.SetTool(ToolSelect)
	e.PointerDown(50, 50)
	e.PointerUp(50, 50)

	e.PointerDown(100, 50)
	assert.Equal(t, StateResizing, e.State())
	e.PointerMove(140, 90)
	e.PointerUp(140, 90)

	sel := e.SelectedElement()
	require.NotNil(t, sel)
	assert.Equal(t, 140.0, sel.Width)
	assert.Equal(t, 100.0, sel.Height)
	assert.Equal(t, 0.0, sel.X)
}

func TestEraserRemovesTopmostAndCommits(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 0, 0, 100, 100)
	drawRect(e, 0, 0, 100, 100)

	e.SetTool(ToolEraser)
	e.PointerDown(50, 50)
	e.PointerUp(50, 50)

	assert.Len(t, e.Document(), 1)
	assert.Empty(t, e.Selection())

	e.Undo()
	assert.Len(t, e.Document(), 2)
}

func TestEraserOnEmptySpaceDoesNotCommit(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 0, 0, 100, 100)
	undoBefore := e.CanUndo()

	e.SetTool(ToolEraser)
	e.PointerDown(500, 500)
	e.PointerUp(500, 500)

	assert.Len(t, e.Document(), 1)
	assert.Equal(t, undoBefore, e.CanUndo())
}

func TestEraserSweepRemovesEachElementSeparately(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 0, 0, 50, 50)
	drawRect(e, 200, 200, 250, 250)

	e.SetTool(ToolEraser)
	e.PointerDown(25, 25)
	e.PointerMove(225, 225)
	e.PointerUp(225, 225)

	assert.Empty(t, e.Document())

	// each erase is its own undo step
	e.Undo()
	assert.Len(t, e.Document(), 1)
	e.Undo()
	assert.Len(t, e.Document(), 2)
}

func TestPanMovesViewportNotDocument(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 10, 10, 100, 80)
	x := e.Document()[0].X

	e.SetTool(ToolHand)
	e.PointerDown(400, 300)
	e.PointerMove(450, 320)
	e.PointerUp(450, 320)

	assert.Equal(t, -50.0, e.Viewport().ScrollX)
	assert.Equal(t, -20.0, e.Viewport().ScrollY)
	assert.Equal(t, x, e.Document()[0].X)
}

func TestCancelDiscardsShapeInProgress(t *testing.T) {
	e := newTestEngine()
	e.SetTool(ToolRectangle)
	e.PointerDown(10, 10)
	e.PointerMove(100, 100)

	e.Cancel()

	assert.Empty(t, e.Document())
	assert.False(t, e.CanUndo())
	assert.Equal(t, StateIdle, e.State())
}

func TestUndoDropsStaleSelection(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 10, 10, 100, 80)

	e.SetTool(ToolSelect)
	e.PointerDown(50, 50)
	e.PointerUp(50, 50)
	require.Len(t, e.Selection(), 1)

	// undo the click commit, then the draw itself
	e.Undo()
	e.Undo()
	assert.Empty(t, e.Document())
	assert.Empty(t, e.Selection())
}

func TestLoadDocumentResetsStateWithoutHistory(t *testing.T) {
	e := newTestEngine()
	drawRect(e, 10, 10, 100, 80)

	loaded := element.Document{{
		ID:              "ext-1",
		Kind:            element.KindCircle,
		X:               5,
		Y:               5,
		Width:           50,
		Height:          50,
		StrokeColor:     "#000",
		BackgroundColor: "transparent",
		StrokeWidth:     2,
		StrokeStyle:     element.StrokeSolid,
		Roughness:       1,
		Opacity:         1,
	}}
	e.LoadDocument(loaded)

	require.Len(t, e.Document(), 1)
	assert.Equal(t, "ext-1", e.Document()[0].ID)
	assert.Empty(t, e.Selection())

	// loading is not itself an undo step; undo falls through to prior commits
	e.Undo()
	assert.Empty(t, e.Document())
}

func TestLineGetsTransparentBackground(t *testing.T) {
	e := newTestEngine()
	style := e.Style()
	style.BackgroundColor = "#ff0000"
	e.SetStyle(style)

	e.SetTool(ToolLine)
	e.PointerDown(0, 0)
	e.PointerMove(100, 100)
	e.PointerUp(100, 100)

	doc := e.Document()
	require.Len(t, doc, 1)
	assert.Equal(t, element.KindLine, doc[0].Kind)
	assert.Equal(t, "transparent", doc[0].BackgroundColor)
}

func TestShapeUsesCurrentStyle(t *testing.T) {
	e := newTestEngine()
	style := Style{
		StrokeColor:     "#e8590c",
		BackgroundColor: "#ffd8a8",
		StrokeWidth:     4,
		StrokeStyle:     element.StrokeDashed,
		Roughness:       2,
		Opacity:         0.5,
		FontSize:        16,
		FontFamily:      "Arial, sans-serif",
	}
	e.SetStyle(style)

	drawRect(e, 0, 0, 100, 100)

	doc := e.Document()
	require.Len(t, doc, 1)
	assert.Equal(t, "#e8590c", doc[0].StrokeColor)
	assert.Equal(t, "#ffd8a8", doc[0].BackgroundColor)
	assert.Equal(t, element.StrokeWidth(4), doc[0].StrokeWidth)
	assert.Equal(t, element.StrokeDashed, doc[0].StrokeStyle)
	assert.Equal(t, 0.5, doc[0].Opacity)
}

func TestImageToolTriggersRequest(t *testing.T) {
	e := newTestEngine()
	called := false
	e.OnImageRequest = func() { called = true }

	e.SetTool(ToolImage)
	e.PointerDown(100, 100)

	assert.True(t, called)
	assert.Empty(t, e.Document())
}
