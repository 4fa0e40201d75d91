package marketplace

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// UserType is the marketplace role of an account.
type UserType string

const (
	UserTypeTrainee UserType = "trainee"
	UserTypeClinic  UserType = "clinic"
	UserTypeAdmin   UserType = "admin"
)

// UserTypes lists every role in chart order (clinics, trainees, admins).
var UserTypes = []UserType{UserTypeClinic, UserTypeTrainee, UserTypeAdmin}

// IsValid checks if the user type is one of the known roles
func (t UserType) IsValid() bool {
	return t == UserTypeTrainee || t == UserTypeClinic || t == UserTypeAdmin
}

func (t UserType) String() string {
	return string(t)
}

// Label returns the capitalized role name, e.g. "Clinic".
func (t UserType) Label() string {
	return titleCaser().String(strings.ToLower(string(t)))
}

// PluralLabel returns the role name used on counters and charts, e.g. "Clinics".
func (t UserType) PluralLabel() string {
	return t.Label() + "s"
}

// NewUserType parses a role, ignoring case and surrounding whitespace.
func NewUserType(s string) (UserType, error) {
	t := UserType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q, must be 'trainee', 'clinic', or 'admin'", ErrInvalidUserType, s)
	}
	return t, nil
}

func titleCaser() cases.Caser {
	return cases.Title(language.English)
}
