package validation_test

import (
	"errors"
	"testing"
	"time"

	"jobkit-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,max=10,valid_username"`
	Phone    string `json:"mobile" validate:"omitempty,valid_phone"`
}

type dated struct {
	DOB time.Time `json:"dob" validate:"required,not_future"`
}

func TestFieldErrors(t *testing.T) {
	v := validation.New()

	t.Run("Should key messages by json field name", func(t *testing.T) {
		err := v.Struct(signup{Email: "nope", Username: "bad name!"})
		require.Error(t, err)

		fields := validation.FieldErrors(err)
		assert.Equal(t, "Enter a valid email address.", fields["email"])
		assert.Contains(t, fields["username"], "valid username")
		assert.NotContains(t, fields, "mobile")
	})

	t.Run("Should report required fields", func(t *testing.T) {
		err := v.Struct(signup{})
		require.Error(t, err)

		fields := validation.FieldErrors(err)
		assert.Equal(t, "This field is required.", fields["email"])
		assert.Equal(t, "This field is required.", fields["username"])
	})

	t.Run("Should report string length limits", func(t *testing.T) {
		err := v.Struct(signup{Email: "a@b.com", Username: "averyveryverylongname"})
		require.Error(t, err)
		assert.Contains(t, validation.FieldErrors(err)["username"], "no more than 10 characters")
	})

	t.Run("Should wrap non validation errors", func(t *testing.T) {
		fields := validation.FieldErrors(errors.New("boom"))
		assert.Equal(t, "boom", fields["non_field_errors"])
	})
}

func TestCustomValidators(t *testing.T) {
	v := validation.New()

	t.Run("Should accept well formed phone numbers", func(t *testing.T) {
		assert.NoError(t, v.Struct(signup{Email: "a@b.com", Username: "alice", Phone: "+628123456789"}))
	})

	t.Run("Should reject malformed phone numbers", func(t *testing.T) {
		err := v.Struct(signup{Email: "a@b.com", Username: "alice", Phone: "12-34"})
		require.Error(t, err)
		assert.Contains(t, validation.FieldErrors(err), "mobile")
	})

	t.Run("Should reject usernames containing @", func(t *testing.T) {
		err := v.Struct(signup{Email: "a@b.com", Username: "bob@x"})
		require.Error(t, err)
		assert.Contains(t, validation.FieldErrors(err), "username")
		assert.NoError(t, v.Struct(signup{Email: "a@b.com", Username: "bob.x_1"}))
	})

	t.Run("Should reject dates in the future", func(t *testing.T) {
		err := v.Struct(dated{DOB: time.Now().AddDate(1, 0, 0)})
		require.Error(t, err)
		assert.Equal(t, "Date cannot be in the future.", validation.FieldErrors(err)["dob"])
	})

	t.Run("Should accept past dates", func(t *testing.T) {
		assert.NoError(t, v.Struct(dated{DOB: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}))
	})
}
