package team

import (
	"errors"
	"strings"
)

const minPasswordLength = 8

type CreateEmployeeDTO struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (d *CreateEmployeeDTO) Validate() error {
	if len(strings.TrimSpace(d.Name)) < 2 {
		return errors.New("name must be at least 2 characters")
	}
	if !strings.Contains(d.Email, "@") {
		return errors.New("email is invalid")
	}
	if len(d.Password) < minPasswordLength {
		return errors.New("password must be at least 8 characters")
	}
	if d.Password != d.ConfirmPassword {
		return errors.New("passwords must match")
	}
	return nil
}

// NormalizedName trims surrounding whitespace.
func (d *CreateEmployeeDTO) NormalizedName() string {
	return strings.TrimSpace(d.Name)
}

// NormalizedEmail lowercases the address so the unique index catches
// case-variant duplicates.
func (d *CreateEmployeeDTO) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(d.Email))
}
