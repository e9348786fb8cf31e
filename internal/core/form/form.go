// Package form validates the login and registration forms before anything
// is sent to the backend.
package form

import (
	"errors"
	"unicode/utf8"
)

const minLength = 6

var ErrInvalid = errors.New("invalid form")

// A ValidationError carries the message shown to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalid
}

type Login struct {
	Username string
	Password string
}

type Register struct {
	Username        string
	Password        string
	ConfirmPassword string
}

func (f Login) Validate() error {
	switch {
	case f.Username == "":
		return invalid("username", "Username is a required field")
	case f.Password == "":
		return invalid("password", "Password is a required field")
	}
	return nil
}

func (f Register) Validate() error {
	switch {
	case f.Username == "":
		return invalid("username", "Username is a required field")
	case utf8.RuneCountInString(f.Username) < minLength:
		return invalid("username", "Username must be at least 6 characters")
	case f.Password == "":
		return invalid("password", "Password is a required field")
	case utf8.RuneCountInString(f.Password) < minLength:
		return invalid("password", "Password must be at least 6 characters")
	case f.Password != f.ConfirmPassword:
		return invalid("confirmPassword", "Passwords do not match")
	}
	return nil
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
