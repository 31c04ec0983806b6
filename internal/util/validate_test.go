package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Email    string   `json:"email" validate:"required,email"`
	Status   string   `json:"status" validate:"omitempty,oneof=OPEN CLOSED"`
	Priority int      `json:"priority" validate:"omitempty,min=1,max=5"`
	Skills   []string `json:"skills" validate:"dive,max=5"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(signupForm{
		Email:    "not-an-email",
		Status:   "PENDING",
		Priority: 9,
		Skills:   []string{"Go", "Kubernetes"},
	})

	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, "validation failed", formErr.Message)
	assert.Equal(t, map[string]string{
		"email":     "must be a valid email address",
		"status":    "must be one of: OPEN CLOSED",
		"priority":  "must be at most 5",
		"skills[1]": "must be at most 5",
	}, formErr.Errors)
}

func TestValidateStruct_Valid(t *testing.T) {
	assert.NoError(t, ValidateStruct(signupForm{Email: "ana@example.com", Skills: []string{"Go"}}))
}

type renameForm struct {
	Name  string  `json:"name" validate:"required,notblank"`
	Alias *string `json:"alias" validate:"omitempty,notblank"`
}

func TestValidateStruct_NotBlank(t *testing.T) {
	blank := " \t "
	err := ValidateStruct(renameForm{Name: "   ", Alias: &blank})

	var formErr *FormError
	require.ErrorAs(t, err, &formErr)
	assert.Equal(t, map[string]string{
		"name":  "must not be blank",
		"alias": "must not be blank",
	}, formErr.Errors)

	alias := "dev"
	assert.NoError(t, ValidateStruct(renameForm{Name: "Ana", Alias: &alias}))
	assert.NoError(t, ValidateStruct(renameForm{Name: "Ana"}))
}
