package element

import (
	"github.com/google/uuid"

	"drawing-backend/internal/geometry"
)

// Kind 요소 종류 (닫힌 집합)
type Kind string

const (
	KindRectangle Kind = "rectangle"
	KindDiamond   Kind = "diamond"
	KindCircle    Kind = "circle"
	KindLine      Kind = "line"
	KindArrow     Kind = "arrow"
	KindDraw      Kind = "draw" // freehand path
	KindText      Kind = "text"
	KindImage     Kind = "image"
	KindCode      Kind = "code"
)

func (k Kind) String() string {
	return string(k)
}

// Valid 알려진 요소 종류인지 확인
func (k Kind) Valid() bool {
	switch k {
	case KindRectangle, KindDiamond, KindCircle, KindLine, KindArrow,
		KindDraw, KindText, KindImage, KindCode:
		return true
	}
	return false
}

// StrokeStyle 선 스타일
type StrokeStyle string

const (
	StrokeSolid  StrokeStyle = "solid"
	StrokeDashed StrokeStyle = "dashed"
	StrokeDotted StrokeStyle = "dotted"
)

func (s StrokeStyle) Valid() bool {
	switch s {
	case StrokeSolid, StrokeDashed, StrokeDotted:
		return true
	}
	return false
}

// StrokeWidth 선 굵기 {1, 2, 4}
type StrokeWidth int

func (w StrokeWidth) Valid() bool {
	return w == 1 || w == 2 || w == 4
}

// Roughness 스케치 거칠기 {0, 1, 2} - 예약 필드, 렌더링에는 미적용
type Roughness int

func (r Roughness) Valid() bool {
	return r >= 0 && r <= 2
}

// Element 캔버스에 그려지는 단일 요소
// line/arrow는 바운딩 박스의 대각선 (x,y)→(x+width, y+height)가 선분을 인코딩한다.
type Element struct {
	ID              string           `json:"id"`
	Kind            Kind             `json:"type"`
	X               float64          `json:"x"`
	Y               float64          `json:"y"`
	Width           float64          `json:"width"`
	Height          float64          `json:"height"`
	StrokeColor     string           `json:"strokeColor"`
	BackgroundColor string           `json:"backgroundColor"` // "transparent" 허용
	StrokeWidth     StrokeWidth      `json:"strokeWidth"`
	StrokeStyle     StrokeStyle      `json:"strokeStyle"`
	Roughness       Roughness        `json:"roughness"`
	Opacity         float64          `json:"opacity"`
	Points          []geometry.Point `json:"points,omitempty"` // draw 전용
	Text            string           `json:"text,omitempty"`
	FontSize        float64          `json:"fontSize,omitempty"`
	FontFamily      string           `json:"fontFamily,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	Angle           float64          `json:"angle"` // 회전 예약 필드, 항상 0
	IsDeleted       bool             `json:"isDeleted"`

	// code 요소 전용
	Code            string `json:"code,omitempty"`
	CodeLanguage    string `json:"codeLanguage,omitempty"`
	CodeOutput      string `json:"codeOutput,omitempty"`
	CodeExplanation string `json:"codeExplanation,omitempty"`
	IsExecuting     bool   `json:"isExecuting,omitempty"`
}

// NewID 새 요소 ID 생성
func NewID() string {
	return uuid.NewString()
}

// Bounds 요소의 바운딩 박스
func (e *Element) Bounds() geometry.Rect {
	return geometry.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

// HitTest 점이 요소에 닿는지 확인. 삭제된 요소는 항상 false.
func (e *Element) HitTest(p geometry.Point) bool {
	if e.IsDeleted {
		return false
	}
	return e.Bounds().Contains(p)
}

// Clone 깊은 복사 (Points 슬라이스 포함)
func (e *Element) Clone() Element {
	clone := *e
	if e.Points != nil {
		clone.Points = make([]geometry.Point, len(e.Points))
		copy(clone.Points, e.Points)
	}
	return clone
}

// Document 요소의 순서 있는 목록. 순서 = z-order (뒤가 위에 그려짐)
type Document []Element

// Clone 문서 전체 깊은 복사
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	clone := make(Document, len(d))
	for i := range d {
		clone[i] = d[i].Clone()
	}
	return clone
}

// IndexOf ID로 요소 인덱스 조회 (-1 = 없음)
func (d Document) IndexOf(id string) int {
	for i := range d {
		if d[i].ID == id {
			return i
		}
	}
	return -1
}

// Find ID로 요소 조회
func (d Document) Find(id string) *Element {
	if i := d.IndexOf(id); i >= 0 {
		return &d[i]
	}
	return nil
}

// TopmostAt 점에 닿는 최상단 요소 (역 z-order 탐색, 삭제된 요소 제외)
func (d Document) TopmostAt(p geometry.Point) *Element {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].HitTest(p) {
			return &d[i]
		}
	}
	return nil
}

// TopmostKindAt 특정 종류 중 점에 닿는 최상단 요소
func (d Document) TopmostKindAt(p geometry.Point, kind Kind) *Element {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Kind == kind && d[i].HitTest(p) {
			return &d[i]
		}
	}
	return nil
}

// Remove ID로 요소 제거한 새 문서 반환 (hard removal)
func (d Document) Remove(id string) Document {
	out := make(Document, 0, len(d))
	for i := range d {
		if d[i].ID != id {
			out = append(out, d[i].Clone())
		}
	}
	return out
}
