package dtos

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
)

func TestValidationMessage(t *testing.T) {
	Setup()

	tests := []struct {
		name string
		obj  any
		want string
	}{
		{"missing title", &PostJobRequest{Description: "d", Category: "c", Location: "l", Level: "x", Salary: 1}, "Job Title is required"},
		{"missing salary", &PostJobRequest{Title: "t", Description: "d", Category: "c", Location: "l", Level: "x"}, "Job salary is required"},
		{"negative salary", &PostJobRequest{Title: "t", Description: "d", Category: "c", Location: "l", Level: "x", Salary: -5}, "Job salary must be at least 0"},
		{"first missing field wins", &PostJobRequest{Title: "t"}, "Job description is required"},
		{"apply without job", &ApplyJobRequest{}, "Job ID is required"},
		{"status without id", &ChangeStatusRequest{Status: "Accepted"}, "Application ID is required"},
		{"bad email", &RegisterCompanyRequest{Name: "n", Email: "nope", Password: "p"}, "Invalid email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.obj)
			assert.Error(t, err)
			assert.Equal(t, tt.want, ValidationMessage(err))
		})
	}
}

func TestValidationMessage_NonValidationError(t *testing.T) {
	assert.Equal(t, "Invalid request body", ValidationMessage(errors.New("unexpected EOF")))
}
