package engine

import (
	"math"
	"strings"

	"drawing-backend/internal/geometry"
)

// HandleKind 리사이즈 핸들 위치 (모서리 4 + 변 중점 4)
type HandleKind string

const (
	HandleNW HandleKind = "nw"
	HandleN  HandleKind = "n"
	HandleNE HandleKind = "ne"
	HandleE  HandleKind = "e"
	HandleSE HandleKind = "se"
	HandleS  HandleKind = "s"
	HandleSW HandleKind = "sw"
	HandleW  HandleKind = "w"
)

// Handle 바운딩 박스에서 유도된 핸들 한 개
type Handle struct {
	Kind HandleKind
	Pos  geometry.Point
}

// handlesFor 바운딩 박스의 8개 핸들 위치
func handlesFor(r geometry.Rect) []Handle {
	return []Handle{
		{HandleNW, geometry.Point{X: r.X, Y: r.Y}},
		{HandleN, geometry.Point{X: r.X + r.Width/2, Y: r.Y}},
		{HandleNE, geometry.Point{X: r.X + r.Width, Y: r.Y}},
		{HandleE, geometry.Point{X: r.X + r.Width, Y: r.Y + r.Height/2}},
		{HandleSE, geometry.Point{X: r.X + r.Width, Y: r.Y + r.Height}},
		{HandleS, geometry.Point{X: r.X + r.Width/2, Y: r.Y + r.Height}},
		{HandleSW, geometry.Point{X: r.X, Y: r.Y + r.Height}},
		{HandleW, geometry.Point{X: r.X, Y: r.Y + r.Height/2}},
	}
}

// handleAt 허용 오차 내의 핸들 탐색. 오차는 줌에 반비례해서 화면상 잡는 느낌이 일정하다.
func handleAt(r geometry.Rect, p geometry.Point, zoom float64) (HandleKind, bool) {
	tolerance := handleTolerance / zoom
	for _, h := range handlesFor(r) {
		if math.Abs(p.X-h.Pos.X) < tolerance && math.Abs(p.Y-h.Pos.Y) < tolerance {
			return h.Kind, true
		}
	}
	return "", false
}

// resizeBounds 시작 바운드 + 포인터 델타로 새 바운드 계산
// 최소 크기(20)에 걸리면 드래그 중인 핸들의 반대쪽 변을 고정한다.
func resizeBounds(start geometry.Rect, handle HandleKind, deltaX, deltaY float64) geometry.Rect {
	x, y, w, h := start.X, start.Y, start.Width, start.Height
	kind := string(handle)

	if strings.Contains(kind, "w") {
		x += deltaX
		w -= deltaX
	}
	if strings.Contains(kind, "e") {
		w += deltaX
	}
	if strings.Contains(kind, "n") {
		y += deltaY
		h -= deltaY
	}
	if strings.Contains(kind, "s") {
		h += deltaY
	}

	if w < minElementSize {
		w = minElementSize
		if strings.Contains(kind, "w") {
			x = start.X + start.Width - minElementSize
		}
	}
	if h < minElementSize {
		h = minElementSize
		if strings.Contains(kind, "n") {
			y = start.Y + start.Height - minElementSize
		}
	}

	return geometry.Rect{X: x, Y: y, Width: w, Height: h}
}
