package engine

import (
	"math"

	"drawing-backend/internal/geometry"
)

const (
	zoomStep = 1.2
	minZoom  = 0.1
	maxZoom  = 3.0
)

// Viewport 화면 좌표 ↔ 문서 좌표 변환과 팬/줌 상태
// 히트 테스트, 그리기, 리사이즈가 전부 같은 변환을 써야 줌 배율에서 어긋나지 않는다.
type Viewport struct {
	Zoom    float64
	ScrollX float64 // 스크롤 오프셋 (device px)
	ScrollY float64
	OffsetX float64 // 캔버스 요소의 화면 오프셋 (device px)
	OffsetY float64
	Width   float64 // 가시 영역 크기 (device px)
	Height  float64
}

// NewViewport 기본 뷰포트 (zoom=1, 원점)
func NewViewport(width, height float64) Viewport {
	return Viewport{Zoom: 1, Width: width, Height: height}
}

// ToDocument 디바이스 포인터 좌표 → 문서 좌표
func (v *Viewport) ToDocument(deviceX, deviceY float64) geometry.Point {
	return geometry.Point{
		X: (deviceX - v.OffsetX + v.ScrollX) / v.Zoom,
		Y: (deviceY - v.OffsetY + v.ScrollY) / v.Zoom,
	}
}

// Pan 디바이스 좌표 델타만큼 스크롤 이동 (문서는 건드리지 않음)
func (v *Viewport) Pan(deltaX, deltaY float64) {
	v.ScrollX -= deltaX
	v.ScrollY -= deltaY
}

// ZoomIn 줌 ×1.2, 최대 3.0
func (v *Viewport) ZoomIn() {
	v.Zoom = math.Min(v.Zoom*zoomStep, maxZoom)
}

// ZoomOut 줌 ÷1.2, 최소 0.1
func (v *Viewport) ZoomOut() {
	v.Zoom = math.Max(v.Zoom/zoomStep, minZoom)
}

// Reset 줌 1, 스크롤 (0,0) 복원
func (v *Viewport) Reset() {
	v.Zoom = 1
	v.ScrollX = 0
	v.ScrollY = 0
}

// Center 현재 가시 영역 중심의 문서 좌표
func (v *Viewport) Center() geometry.Point {
	return geometry.Point{
		X: (v.ScrollX + v.Width/2) / v.Zoom,
		Y: (v.ScrollY + v.Height/2) / v.Zoom,
	}
}
