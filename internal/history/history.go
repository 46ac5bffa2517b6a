// Package history 임의의 문서 값에 대한 undo/redo 컨테이너
package history

// History 과거/현재/미래 스냅샷을 보관하는 제네릭 undo/redo 스택
// 용량 제한 없음 - 긴 세션에서는 메모리가 계속 늘어난다.
type History[T any] struct {
	past    []T
	present T
	future  []T
}

// New 초기 문서로 히스토리 생성
func New[T any](initial T) *History[T] {
	return &History[T]{present: initial}
}

// Present 현재 문서
func (h *History[T]) Present() T {
	return h.present
}

// Set 완결된 편집을 커밋
// 이전 present를 past에 쌓고 future를 비운다 (새 편집 후에는 redo 불가).
func (h *History[T]) Set(value T) {
	h.past = append(h.past, h.present)
	h.present = value
	h.future = nil
}

// Replace 진행 중인 제스처의 미리보기 갱신
// past/future에는 손대지 않고 present만 교체한다. undo 불가능한 문서 로드에도 사용.
func (h *History[T]) Replace(value T) {
	h.present = value
}

// Undo 마지막 커밋을 되돌림. past가 비어 있으면 no-op.
func (h *History[T]) Undo() {
	if len(h.past) == 0 {
		return
	}
	last := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append([]T{h.present}, h.future...)
	h.present = last
}

// Redo 되돌린 커밋을 다시 적용. future가 비어 있으면 no-op.
func (h *History[T]) Redo() {
	if len(h.future) == 0 {
		return
	}
	next := h.future[0]
	h.future = h.future[1:]
	h.past = append(h.past, h.present)
	h.present = next
}

// CanUndo undo 가능 여부
func (h *History[T]) CanUndo() bool {
	return len(h.past) > 0
}

// CanRedo redo 가능 여부
func (h *History[T]) CanRedo() bool {
	return len(h.future) > 0
}
