package engine

import "drawing-backend/internal/element"

// Tool 툴바에서 선택 가능한 도구
type Tool string

const (
	ToolSelect    Tool = "select"
	ToolHand      Tool = "hand"
	ToolRectangle Tool = "rectangle"
	ToolDiamond   Tool = "diamond"
	ToolCircle    Tool = "circle"
	ToolLine      Tool = "line"
	ToolArrow     Tool = "arrow"
	ToolDraw      Tool = "draw"
	ToolText      Tool = "text"
	ToolImage     Tool = "image"
	ToolEraser    Tool = "eraser"
	ToolCode      Tool = "code"
)

func (t Tool) String() string {
	return string(t)
}

// IsShape 드래그로 바운딩 박스를 그리는 도형 도구인지 확인
func (t Tool) IsShape() bool {
	switch t {
	case ToolRectangle, ToolDiamond, ToolCircle, ToolLine, ToolArrow:
		return true
	}
	return false
}

// Kind 도형 도구에 대응하는 요소 종류
func (t Tool) Kind() element.Kind {
	return element.Kind(t)
}

// Style 새 요소에 적용되는 현재 스타일 설정
type Style struct {
	StrokeColor     string
	BackgroundColor string
	StrokeWidth     element.StrokeWidth
	StrokeStyle     element.StrokeStyle
	Roughness       element.Roughness
	Opacity         float64
	FontSize        float64
	FontFamily      string
}

// DefaultStyle 초기 스타일
func DefaultStyle() Style {
	return Style{
		StrokeColor:     "#1971c2",
		BackgroundColor: "transparent",
		StrokeWidth:     2,
		StrokeStyle:     element.StrokeSolid,
		Roughness:       1,
		Opacity:         1,
		FontSize:        16,
		FontFamily:      "Arial, sans-serif",
	}
}
