package geometry

import "math"

// Point 문서 좌표계의 한 점
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect 축 정렬 사각형 (정규화된 상태: Width, Height >= 0)
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Distance 두 점 사이의 유클리드 거리
func Distance(p1, p2 Point) float64 {
	return math.Sqrt(math.Pow(p2.X-p1.X, 2) + math.Pow(p2.Y-p1.Y, 2))
}

// NormalizeRect 시작점/끝점에서 정규화된 사각형 생성
// 드래그 방향과 무관하게 Width, Height는 항상 0 이상
func NormalizeRect(startX, startY, endX, endY float64) Rect {
	return Rect{
		X:      math.Min(startX, endX),
		Y:      math.Min(startY, endY),
		Width:  math.Abs(endX - startX),
		Height: math.Abs(endY - startY),
	}
}

// Contains 점이 사각형 내부(경계 포함)에 있는지 확인
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// BoundsOf 점 목록을 감싸는 최소 사각형
func BoundsOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
