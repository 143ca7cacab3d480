package dtos

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var setupOnce sync.Once

// Setup makes gin's validator report fields by their "label" tag so
// ValidationMessage can build readable messages.
func Setup() {
	setupOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if label := f.Tag.Get("label"); label != "" {
				return label
			}
			return f.Name
		})
	})
}

// ValidationMessage turns a binding error into the message shown to the
// client. Only the first failing field is reported.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "min":
		return fe.Field() + " must be at least " + fe.Param()
	default:
		return "Invalid " + strings.ToLower(fe.Field())
	}
}
