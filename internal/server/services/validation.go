package services

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/gophtodo/internal/server/auth"
)

const (
	minUserNameLen = 5
	minPasswordLen = 10
	minNameLen     = 5
)

// FieldError describes one rejected request field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors lists every field a request failed on.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) orNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

type SignupRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (r SignupRequest) Validate() error {
	var errs ValidationErrors

	switch {
	case utf8.RuneCountInString(r.UserName) < minUserNameLen:
		errs = append(errs, FieldError{"username", "must be at least 5 characters long"})
	case !isEmail(r.UserName):
		errs = append(errs, FieldError{"username", "must be a valid email address"})
	}

	switch {
	case utf8.RuneCountInString(r.Password) < minPasswordLen:
		errs = append(errs, FieldError{"password", "must be at least 10 characters long"})
	case len(r.Password) > auth.MaxPasswordBytes:
		errs = append(errs, FieldError{"password", "must be at most 72 bytes long"})
	}

	if utf8.RuneCountInString(r.Name) < minNameLen {
		errs = append(errs, FieldError{"name", "must be at least 5 characters long"})
	}

	return errs.orNil()
}

// isEmail accepts a bare address like "user@example.com": no display name,
// no angle brackets, and a dotted domain.
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s || addr.Name != "" {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}

type SigninRequest struct {
	UserName string `json:"username"`
	Password string `json:"password"`
}

type CreateTodoRequest struct {
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

func (r CreateTodoRequest) Validate() error {
	var errs ValidationErrors
	if strings.TrimSpace(r.Description) == "" {
		errs = append(errs, FieldError{"description", "must not be empty"})
	}
	return errs.orNil()
}

// UpdateTodoRequest carries optional fields; nil means "leave unchanged".
type UpdateTodoRequest struct {
	Description *string `json:"description"`
	Done        *bool   `json:"done"`
}

func (r UpdateTodoRequest) Validate() error {
	var errs ValidationErrors
	if r.Description != nil && strings.TrimSpace(*r.Description) == "" {
		errs = append(errs, FieldError{"description", "must not be empty"})
	}
	return errs.orNil()
}
