package engine

import (
	"math"
	"strings"

	"drawing-backend/internal/element"
	"drawing-backend/internal/geometry"
)

// SetTextValue 텍스트 세션의 현재 입력값 갱신 (키 입력마다 호출)
func (e *Engine) SetTextValue(value string) {
	if e.text != nil {
		e.text.Value = value
	}
}

// CommitText 텍스트 세션 종료
// 빈 입력은 조용히 무시 (요소 생성 없음). 기존 요소면 내용 수정, 아니면 새 요소 삽입.
// 둘 다 단일 Set 커밋.
func (e *Engine) CommitText(value string) {
	session := e.text
	e.text = nil
	e.state = StateIdle
	if session == nil {
		return
	}

	if strings.TrimSpace(value) == "" {
		return
	}

	doc := e.Document().Clone()

	if session.ElementID != "" {
		if el := doc.Find(session.ElementID); el != nil {
			el.Text = value
			e.hist.Set(doc)
		}
		return
	}

	doc = append(doc, element.Element{
		ID:              element.NewID(),
		Kind:            element.KindText,
		X:               session.Anchor.X,
		Y:               session.Anchor.Y,
		Width:           math.Max(float64(len([]rune(value)))*e.style.FontSize*0.6, 20),
		Height:          e.style.FontSize * 1.2,
		StrokeColor:     e.style.StrokeColor,
		BackgroundColor: "transparent",
		StrokeWidth:     e.style.StrokeWidth,
		StrokeStyle:     e.style.StrokeStyle,
		Roughness:       e.style.Roughness,
		Opacity:         1,
		Text:            value,
		FontSize:        e.style.FontSize,
		FontFamily:      e.style.FontFamily,
	})
	e.hist.Set(doc)
}

// CancelText 텍스트 세션 폐기 (Escape), 문서 변경 없음
func (e *Engine) CancelText() {
	e.text = nil
	e.state = StateIdle
}

// insertCodeBlock 클릭 지점에 기본 코드 블록 삽입 후 즉시 선택, 단일 커밋
func (e *Engine) insertCodeBlock(p geometry.Point) {
	el := element.Element{
		ID:              element.NewID(),
		Kind:            element.KindCode,
		X:               p.X,
		Y:               p.Y,
		Width:           codeBlockWidth,
		Height:          codeBlockHeight,
		StrokeColor:     codeStrokeColor,
		BackgroundColor: "transparent",
		StrokeWidth:     e.style.StrokeWidth,
		StrokeStyle:     e.style.StrokeStyle,
		Roughness:       e.style.Roughness,
		Opacity:         1,
		Code:            defaultCodeSource,
		CodeLanguage:    defaultCodeLang,
	}

	doc := e.Document().Clone()
	doc = append(doc, el)
	e.hist.Set(doc)
	e.selection = []string{el.ID}
}

// InsertImage 디코딩된 이미지를 뷰포트 중앙에 삽입, 단일 커밋
// 최대 폭 300으로 축소하되 종횡비 유지. 잘못된 크기는 무시.
func (e *Engine) InsertImage(imageURL string, naturalWidth, naturalHeight float64) {
	if naturalWidth <= 0 || naturalHeight <= 0 {
		return
	}

	width := math.Min(maxImageWidth, naturalWidth)
	height := width * naturalHeight / naturalWidth
	center := e.view.Center()

	doc := e.Document().Clone()
	doc = append(doc, element.Element{
		ID:              element.NewID(),
		Kind:            element.KindImage,
		X:               center.X - width/2,
		Y:               center.Y - height/2,
		Width:           width,
		Height:          height,
		StrokeColor:     "transparent",
		BackgroundColor: "transparent",
		StrokeWidth:     e.style.StrokeWidth,
		StrokeStyle:     e.style.StrokeStyle,
		Roughness:       e.style.Roughness,
		Opacity:         1,
		ImageURL:        imageURL,
	})
	e.hist.Set(doc)
}

// BeginCodeAnalysis 코드 블록의 분석 시작 표시
// isExecuting은 그 요소의 실행 버튼만 잠그는 플래그라 undo 대상이 아니다 (Replace).
// 반환값: 분석에 넘길 코드/언어, 시작 가능 여부.
func (e *Engine) BeginCodeAnalysis(id string) (code, language string, ok bool) {
	doc := e.Document().Clone()
	el := doc.Find(id)
	if el == nil || el.Kind != element.KindCode || el.IsExecuting {
		return "", "", false
	}

	el.IsExecuting = true
	e.hist.Replace(doc)

	language = el.CodeLanguage
	if language == "" {
		language = defaultCodeLang
	}
	return el.Code, language, true
}

// FinishCodeAnalysis 분석 결과 기록, 실행 플래그 해제 (Replace - undo 대상 아님)
func (e *Engine) FinishCodeAnalysis(id, output, explanation string) {
	doc := e.Document().Clone()
	el := doc.Find(id)
	if el == nil {
		return
	}

	el.CodeOutput = output
	el.CodeExplanation = explanation
	el.IsExecuting = false
	e.hist.Replace(doc)
}
