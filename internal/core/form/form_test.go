package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginValidate(t *testing.T) {
	tests := []struct {
		name string
		form Login
		msg  string
	}{
		{"Valid", Login{"crio.do", "learnbydoing"}, ""},
		{"NoUsername", Login{"", "learnbydoing"}, "Username is a required field"},
		{"NoPassword", Login{"crio.do", ""}, "Password is a required field"},
		{"NothingAtAll", Login{}, "Username is a required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.msg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestRegisterValidate(t *testing.T) {
	tests := []struct {
		name  string
		form  Register
		field string
		msg   string
	}{
		{
			name: "Valid",
			form: Register{"crio.do", "learnbydoing", "learnbydoing"},
		},
		{
			name:  "NoUsername",
			form:  Register{"", "learnbydoing", "learnbydoing"},
			field: "username",
			msg:   "Username is a required field",
		},
		{
			name:  "ShortUsername",
			form:  Register{"crio", "learnbydoing", "learnbydoing"},
			field: "username",
			msg:   "Username must be at least 6 characters",
		},
		{
			name:  "NoPassword",
			form:  Register{"crio.do", "", ""},
			field: "password",
			msg:   "Password is a required field",
		},
		{
			name:  "ShortPassword",
			form:  Register{"crio.do", "learn", "learn"},
			field: "password",
			msg:   "Password must be at least 6 characters",
		},
		{
			name:  "Mismatch",
			form:  Register{"crio.do", "learnbydoing", "learnbydoin"},
			field: "confirmPassword",
			msg:   "Passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.msg == "" {
				require.NoError(t, err)
				return
			}
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
			assert.Equal(t, tt.msg, vErr.Message)
		})
	}
}
