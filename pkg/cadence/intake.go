package cadence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/cadencehq/cadence/pkg/models"
)

// FieldError names one invalid field in an intake draft, with a message an
// artist-facing form can show directly.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// validateDraft runs the tagged schema validation over an intake draft and
// translates validator failures into form-friendly field errors. Returns nil
// when the draft is acceptable.
func (a *App) validateDraft(draft *models.SubmissionDraft) []FieldError {
	err := a.validate.Struct(draft)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "", Message: "invalid submission"}}
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   fieldPath(fe),
			Message: fieldMessage(fe),
		})
	}
	return fields
}

// fieldPath strips the struct name from the validator namespace, leaving the
// dotted path the JSON payload used (e.g. "Tracks[0].AudioFile.URL").
func fieldPath(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// fieldMessage maps a validation tag to a human-readable message.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
