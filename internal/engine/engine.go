package engine

import (
	"drawing-backend/internal/element"
	"drawing-backend/internal/geometry"
	"drawing-backend/internal/history"
)

const (
	handleTolerance = 8.0  // device px, 줌으로 나눠서 사용
	minElementSize  = 20.0 // 리사이즈 최소 크기
	minShapeSize    = 5.0  // 이보다 작은 도형 드래그는 버림
	maxImageWidth   = 300.0
	codeBlockWidth  = 450.0
	codeBlockHeight = 300.0

	codeStrokeColor   = "#8b5cf6"
	defaultCodeSource = "// JavaScript code\nconsole.log(\"Hello, AI!\");"
	defaultCodeLang   = "javascript"
)

// State 진행 중인 제스처 상태 (상호 배타)
type State int

const (
	StateIdle State = iota
	StateDrawingShape
	StateDrawingFreehand
	StateDragging
	StateResizing
	StatePanning
	StateErasing
	StateEditingText
)

// resizeGesture 리사이즈 제스처의 시작 조건
type resizeGesture struct {
	id           string
	handle       HandleKind
	startBounds  geometry.Rect
	startPointer geometry.Point
}

// TextSession 진행 중인 텍스트 입력 세션
// ElementID가 비어 있으면 삽입, 아니면 해당 요소 수정.
type TextSession struct {
	Anchor    geometry.Point
	ElementID string
	Value     string
}

// Engine 포인터 이벤트를 문서 변경/선택 변경/히스토리 커밋으로 변환하는 상태 기계
// UI 이벤트 루프 전용: 단일 스레드에서만 호출해야 한다.
//
// 제스처는 2단계 프로토콜을 따른다: 시작 시 pre-gesture 스냅샷을 떠 두고,
// 미리보기는 전부 history.Replace, 포인터 업에서 스냅샷을 복원한 뒤 최종
// 문서를 한 번만 Set 커밋한다. undo가 항상 제스처 이전 상태로 돌아가는 이유.
type Engine struct {
	hist  *history.History[element.Document]
	view  Viewport
	tool  Tool
	style Style

	selection []string

	state       State
	gestureBase element.Document // 제스처 시작 시점의 문서
	startPoint  geometry.Point
	drawID      string           // 진행 중인 도형/freehand 요소 ID
	path        []geometry.Point // freehand 경로
	dragID      string
	dragOffset  geometry.Point
	lastPan     geometry.Point // device 좌표
	resize      resizeGesture
	text        *TextSession

	// OnImageRequest image 도구로 캔버스를 클릭했을 때 호출 (파일 선택 UI 트리거)
	OnImageRequest func()
}

// New 빈 문서로 엔진 생성
func New(viewportWidth, viewportHeight float64) *Engine {
	return &Engine{
		hist:  history.New(element.Document{}),
		view:  NewViewport(viewportWidth, viewportHeight),
		tool:  ToolSelect,
		style: DefaultStyle(),
	}
}

// Document 현재 문서
func (e *Engine) Document() element.Document {
	return e.hist.Present()
}

// LoadDocument 다른 채팅의 문서로 교체 (undo 대상 아님)
func (e *Engine) LoadDocument(doc element.Document) {
	e.hist.Replace(doc.Clone())
	e.selection = nil
	e.state = StateIdle
	e.gestureBase = nil
	e.text = nil
}

// Tool 현재 도구
func (e *Engine) Tool() Tool {
	return e.tool
}

// SetTool 도구 변경. select 이외의 도구로 바꾸면 선택 해제.
func (e *Engine) SetTool(t Tool) {
	e.tool = t
	if t != ToolSelect {
		e.selection = nil
	}
}

// Style 현재 스타일
func (e *Engine) Style() Style {
	return e.style
}

// SetStyle 스타일 변경 (이후 생성되는 요소에 적용)
func (e *Engine) SetStyle(s Style) {
	e.style = s
}

// Viewport 뷰포트 접근
func (e *Engine) Viewport() *Viewport {
	return &e.view
}

// Selection 선택된 요소 ID 목록
func (e *Engine) Selection() []string {
	return e.selection
}

// SelectedElement 정확히 하나 선택된 경우 그 요소 (핸들 표시 조건)
func (e *Engine) SelectedElement() *element.Element {
	if len(e.selection) != 1 {
		return nil
	}
	return e.Document().Find(e.selection[0])
}

// State 현재 제스처 상태
func (e *Engine) State() State {
	return e.state
}

// Text 진행 중인 텍스트 세션 (없으면 nil)
func (e *Engine) Text() *TextSession {
	return e.text
}

// Undo 마지막 커밋 되돌리기. 제스처 진행 중에는 무시.
func (e *Engine) Undo() {
	if e.state != StateIdle {
		return
	}
	e.hist.Undo()
	e.dropStaleSelection()
}

// Redo 되돌린 커밋 재적용. 제스처 진행 중에는 무시.
func (e *Engine) Redo() {
	if e.state != StateIdle {
		return
	}
	e.hist.Redo()
	e.dropStaleSelection()
}

// CanUndo undo 가능 여부
func (e *Engine) CanUndo() bool {
	return e.hist.CanUndo()
}

// CanRedo redo 가능 여부
func (e *Engine) CanRedo() bool {
	return e.hist.CanRedo()
}

// PointerDown 포인터 누름. 좌표는 device px.
func (e *Engine) PointerDown(deviceX, deviceY float64) {
	p := e.view.ToDocument(deviceX, deviceY)

	// 텍스트 입력 중 다른 곳 클릭 → 현재 내용으로 커밋
	if e.state == StateEditingText {
		e.CommitText(e.text.Value)
		return
	}

	switch {
	case e.tool == ToolEraser:
		e.state = StateErasing
		e.eraseAt(p)

	case e.tool == ToolSelect:
		e.pointerDownSelect(p)

	case e.tool == ToolHand:
		e.state = StatePanning
		e.lastPan = geometry.Point{X: deviceX, Y: deviceY}

	case e.tool == ToolText:
		e.pointerDownText(p)

	case e.tool == ToolCode:
		e.insertCodeBlock(p)

	case e.tool == ToolImage:
		if e.OnImageRequest != nil {
			e.OnImageRequest()
		}

	case e.tool == ToolDraw:
		e.state = StateDrawingFreehand
		e.gestureBase = e.Document().Clone()
		e.startPoint = p
		e.drawID = element.NewID()
		e.path = []geometry.Point{p}

	case e.tool.IsShape():
		e.state = StateDrawingShape
		e.gestureBase = e.Document().Clone()
		e.startPoint = p
		e.drawID = element.NewID()
	}
}

// pointerDownSelect select 도구의 포인터 다운: 핸들 → 리사이즈, 요소 → 드래그, 빈 곳 → 선택 해제
func (e *Engine) pointerDownSelect(p geometry.Point) {
	// 단일 선택된 요소의 리사이즈 핸들 우선
	if sel := e.SelectedElement(); sel != nil {
		if handle, ok := handleAt(sel.Bounds(), p, e.view.Zoom); ok {
			e.state = StateResizing
			e.gestureBase = e.Document().Clone()
			e.resize = resizeGesture{
				id:           sel.ID,
				handle:       handle,
				startBounds:  sel.Bounds(),
				startPointer: p,
			}
			return
		}
	}

	hit := e.Document().TopmostAt(p)
	if hit == nil {
		e.selection = nil
		return
	}

	// 다중 선택은 단일 선택으로 교체
	e.selection = []string{hit.ID}
	e.state = StateDragging
	e.gestureBase = e.Document().Clone()
	e.dragID = hit.ID
	e.dragOffset = geometry.Point{X: p.X - hit.X, Y: p.Y - hit.Y}
}

// pointerDownText 기존 텍스트 요소면 수정 세션, 아니면 빈 삽입 세션
func (e *Engine) pointerDownText(p geometry.Point) {
	e.state = StateEditingText
	if existing := e.Document().TopmostKindAt(p, element.KindText); existing != nil {
		e.text = &TextSession{Anchor: p, ElementID: existing.ID, Value: existing.Text}
		return
	}
	e.text = &TextSession{Anchor: p}
}

// PointerMove 포인터 이동. 도구가 아니라 현재 제스처 상태로 분기한다.
// (제스처 도중 도구 변경은 지원하지 않는 케이스)
// 여기서의 문서 변경은 전부 미리보기: history.Replace만 사용한다.
func (e *Engine) PointerMove(deviceX, deviceY float64) {
	p := e.view.ToDocument(deviceX, deviceY)

	switch e.state {
	case StateErasing:
		e.eraseAt(p)

	case StateResizing:
		bounds := resizeBounds(e.resize.startBounds, e.resize.handle,
			p.X-e.resize.startPointer.X, p.Y-e.resize.startPointer.Y)
		doc := e.gestureBase.Clone()
		if el := doc.Find(e.resize.id); el != nil {
			el.X, el.Y = bounds.X, bounds.Y
			el.Width, el.Height = bounds.Width, bounds.Height
		}
		e.hist.Replace(doc)

	case StatePanning:
		e.view.Pan(deviceX-e.lastPan.X, deviceY-e.lastPan.Y)
		e.lastPan = geometry.Point{X: deviceX, Y: deviceY}

	case StateDragging:
		doc := e.gestureBase.Clone()
		if el := doc.Find(e.dragID); el != nil {
			el.X = p.X - e.dragOffset.X
			el.Y = p.Y - e.dragOffset.Y
		}
		e.hist.Replace(doc)

	case StateDrawingShape:
		rect := geometry.NormalizeRect(e.startPoint.X, e.startPoint.Y, p.X, p.Y)
		doc := e.gestureBase.Clone()
		doc = append(doc, e.shapeElement(rect))
		e.hist.Replace(doc)

	case StateDrawingFreehand:
		// 같은 좌표의 move 이벤트는 경로에 보태지 않는다
		if geometry.Distance(e.path[len(e.path)-1], p) > 0 {
			e.path = append(e.path, p)
		}
		doc := e.gestureBase.Clone()
		doc = append(doc, e.freehandElement())
		e.hist.Replace(doc)
	}
}

// PointerUp 제스처 종료: 단일 Set 커밋 또는 폐기 후 idle 복귀
func (e *Engine) PointerUp(deviceX, deviceY float64) {
	p := e.view.ToDocument(deviceX, deviceY)

	switch e.state {
	case StateErasing:
		// 지우기는 요소마다 즉시 커밋됨 (개별 undo 가능)

	case StateResizing, StateDragging:
		e.commitGesture(e.hist.Present().Clone())

	case StateDrawingShape:
		rect := geometry.NormalizeRect(e.startPoint.X, e.startPoint.Y, p.X, p.Y)
		if rect.Width > minShapeSize || rect.Height > minShapeSize {
			doc := e.gestureBase.Clone()
			doc = append(doc, e.shapeElement(rect))
			e.commitGesture(doc)
		} else {
			e.cancelGesture()
		}
		e.drawID = ""

	case StateDrawingFreehand:
		if len(e.path) >= 2 {
			doc := e.gestureBase.Clone()
			doc = append(doc, e.freehandElement())
			e.commitGesture(doc)
		} else {
			e.cancelGesture()
		}
		e.path = nil
		e.drawID = ""
	}

	if e.state != StateEditingText {
		e.state = StateIdle
		e.gestureBase = nil
	}
}

// Cancel 진행 중인 제스처/텍스트 세션 폐기 (Escape)
func (e *Engine) Cancel() {
	if e.state == StateEditingText {
		e.CancelText()
		return
	}
	if e.gestureBase != nil {
		e.cancelGesture()
	}
	e.state = StateIdle
	e.path = nil
	e.drawID = ""
}

// commitGesture pre-gesture 스냅샷을 present로 복원한 뒤 최종 문서를 한 번만 커밋
func (e *Engine) commitGesture(final element.Document) {
	e.hist.Replace(e.gestureBase)
	e.hist.Set(final)
	e.gestureBase = nil
}

// cancelGesture 미리보기 폐기, pre-gesture 문서 복원
func (e *Engine) cancelGesture() {
	e.hist.Replace(e.gestureBase)
	e.gestureBase = nil
}

// shapeElement 현재 스타일로 도형 요소 생성
func (e *Engine) shapeElement(rect geometry.Rect) element.Element {
	background := e.style.BackgroundColor
	// 선분 계열은 채움 없음
	if e.tool == ToolLine || e.tool == ToolArrow {
		background = "transparent"
	}
	return element.Element{
		ID:              e.drawID,
		Kind:            e.tool.Kind(),
		X:               rect.X,
		Y:               rect.Y,
		Width:           rect.Width,
		Height:          rect.Height,
		StrokeColor:     e.style.StrokeColor,
		BackgroundColor: background,
		StrokeWidth:     e.style.StrokeWidth,
		StrokeStyle:     e.style.StrokeStyle,
		Roughness:       e.style.Roughness,
		Opacity:         e.style.Opacity,
	}
}

// freehandElement 현재 경로로 freehand 요소 생성 (바운드는 경로에서 유도)
func (e *Engine) freehandElement() element.Element {
	bounds := geometry.BoundsOf(e.path)
	points := make([]geometry.Point, len(e.path))
	copy(points, e.path)
	return element.Element{
		ID:              e.drawID,
		Kind:            element.KindDraw,
		X:               bounds.X,
		Y:               bounds.Y,
		Width:           bounds.Width,
		Height:          bounds.Height,
		StrokeColor:     e.style.StrokeColor,
		BackgroundColor: "transparent",
		StrokeWidth:     e.style.StrokeWidth,
		StrokeStyle:     e.style.StrokeStyle,
		Roughness:       e.style.Roughness,
		Opacity:         e.style.Opacity,
		Points:          points,
	}
}

// eraseAt 점에 닿는 최상단 요소를 문서에서 제거하고 즉시 커밋
// 선택돼 있었다면 선택에서도 제거한다.
func (e *Engine) eraseAt(p geometry.Point) {
	top := e.Document().TopmostAt(p)
	if top == nil {
		return
	}
	id := top.ID
	e.hist.Set(e.Document().Remove(id))

	kept := e.selection[:0]
	for _, sel := range e.selection {
		if sel != id {
			kept = append(kept, sel)
		}
	}
	e.selection = kept
}

// dropStaleSelection undo/redo 후 문서에 없는 선택 ID 정리
func (e *Engine) dropStaleSelection() {
	doc := e.Document()
	kept := e.selection[:0]
	for _, id := range e.selection {
		if doc.IndexOf(id) >= 0 {
			kept = append(kept, id)
		}
	}
	e.selection = kept
}
