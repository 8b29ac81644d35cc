package user

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never expose hash in JSON
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Public returns the fields safe to hand back to clients.
func (u User) Public() map[string]any {
	return map[string]any{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
	}
}

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nameRe  = regexp.MustCompile(`^[A-Za-z ]+$`)
)

// ValidationError carries a field -> message map for the 400 body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))

	for field, msg := range e.Fields {
		parts = append(parts, field+": "+msg)
	}

	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidEmail reports whether addr has the local@domain.tld shape.
func ValidEmail(addr string) bool {
	return emailRe.MatchString(addr)
}

// Validate enforces the record constraints before anything is persisted:
// name 3-50 chars of letters and spaces, valid email syntax, password with
// at least 6 chars including one upper, one lower, one digit and one symbol.
func Validate(name, email, password string) error {
	fields := make(map[string]string)

	switch {
	case name == "":
		fields["name"] = "Name is required"
	case len(name) < 3:
		fields["name"] = "Name should be at least 3 characters long"
	case len(name) > 50:
		fields["name"] = "Name cannot exceed 50 characters"
	case !nameRe.MatchString(name):
		fields["name"] = "Name should only contain alphabets and spaces"
	}

	switch {
	case email == "":
		fields["email"] = "Email is required"
	case !ValidEmail(email):
		fields["email"] = "Please enter a valid email address"
	}

	switch {
	case password == "":
		fields["password"] = "Password is required"
	case len(password) < 6:
		fields["password"] = "Password must be at least 6 characters long"
	case !strongPassword(password):
		fields["password"] = "Password must include at least one uppercase, one lowercase letter, one number, and one symbol"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

func strongPassword(password string) bool {
	var upper, lower, digit, symbol bool

	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsSpace(r):
			symbol = true
		}
	}

	return upper && lower && digit && symbol
}
