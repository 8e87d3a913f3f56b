package auth

import (
	"errors"
	"strings"
)

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if strings.TrimSpace(dto.Email) == "" {
		return errors.New("email is required")
	}
	if dto.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (dto ChangePasswordDTO) Validate() error {
	if dto.CurrentPassword == "" {
		return errors.New("current password is required")
	}
	if len(dto.NewPassword) < 8 {
		return errors.New("new password must be at least 8 characters")
	}
	if dto.NewPassword != dto.ConfirmPassword {
		return errors.New("passwords do not match")
	}
	return nil
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token"`
}

func (dto RefreshTokenDTO) Validate() error {
	if dto.RefreshToken == "" {
		return errors.New("refresh token is required")
	}
	return nil
}
