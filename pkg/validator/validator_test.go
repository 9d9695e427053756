package validator

import (
	"testing"

	gpvalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleInput struct {
	Name  string `validate:"required,min=3"`
	Email string `validate:"required,email"`
	State string `validate:"omitempty,len=2"`
}

func TestValidate_OK(t *testing.T) {
	err := Validate(sampleInput{Name: "Maria", Email: "maria@example.com", State: "SP"})
	assert.NoError(t, err)
}

func TestValidate_CollectsFieldErrors(t *testing.T) {
	err := Validate(sampleInput{Name: "ab", Email: "not-an-email", State: "SPX"})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	fields := vErr.Fields()
	assert.Equal(t, "must be at least 3 characters", fields["Name"])
	assert.Equal(t, "must be a valid email address", fields["Email"])
	assert.Equal(t, "must be exactly 2 characters", fields["State"])
}

func TestValidate_ErrorMessageListsFields(t *testing.T) {
	err := Validate(sampleInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name")
	assert.Contains(t, err.Error(), "Email")
}

func TestRegister_CustomTag(t *testing.T) {
	type withCustom struct {
		Code string `validate:"evencode"`
	}

	require.NoError(t, Register("evencode", func(fl gpvalidator.FieldLevel) bool {
		return len(fl.Field().String())%2 == 0
	}))

	assert.NoError(t, Validate(withCustom{Code: "ab"}))
	assert.Error(t, Validate(withCustom{Code: "abc"}))
}
