package element

import "fmt"

// FieldError 필드 단위 검증 오류
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateDocument 요소 배열 전체 검증
// 하나라도 실패하면 전체 거부 (부분 적용 없음). 반환 슬라이스가 비어 있으면 통과.
func ValidateDocument(doc Document) []FieldError {
	var errs []FieldError

	seen := make(map[string]int, len(doc))
	for i := range doc {
		el := &doc[i]
		prefix := fmt.Sprintf("elements[%d]", i)

		if el.ID == "" {
			errs = append(errs, FieldError{Field: prefix + ".id", Message: "id is required"})
		} else if prev, dup := seen[el.ID]; dup {
			errs = append(errs, FieldError{
				Field:   prefix + ".id",
				Message: fmt.Sprintf("duplicate id (already used at elements[%d])", prev),
			})
		} else {
			seen[el.ID] = i
		}

		if !el.Kind.Valid() {
			errs = append(errs, FieldError{
				Field:   prefix + ".type",
				Message: fmt.Sprintf("unknown element type %q", string(el.Kind)),
			})
		}

		if el.StrokeColor == "" {
			errs = append(errs, FieldError{Field: prefix + ".strokeColor", Message: "strokeColor is required"})
		}
		if el.BackgroundColor == "" {
			errs = append(errs, FieldError{Field: prefix + ".backgroundColor", Message: "backgroundColor is required"})
		}
		if !el.StrokeWidth.Valid() {
			errs = append(errs, FieldError{
				Field:   prefix + ".strokeWidth",
				Message: fmt.Sprintf("strokeWidth must be 1, 2 or 4, got %d", int(el.StrokeWidth)),
			})
		}
		if !el.StrokeStyle.Valid() {
			errs = append(errs, FieldError{
				Field:   prefix + ".strokeStyle",
				Message: fmt.Sprintf("strokeStyle must be solid, dashed or dotted, got %q", string(el.StrokeStyle)),
			})
		}
		if !el.Roughness.Valid() {
			errs = append(errs, FieldError{
				Field:   prefix + ".roughness",
				Message: fmt.Sprintf("roughness must be 0, 1 or 2, got %d", int(el.Roughness)),
			})
		}
		if el.Opacity < 0 || el.Opacity > 1 {
			errs = append(errs, FieldError{
				Field:   prefix + ".opacity",
				Message: fmt.Sprintf("opacity must be between 0 and 1, got %g", el.Opacity),
			})
		}
	}

	return errs
}
