package catalog

import (
	"errors"
	"strings"
)

type CreateCategoryDTO struct {
	Name        string  `json:"name"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (dto CreateCategoryDTO) Validate() error {
	if len(strings.TrimSpace(dto.Name)) < 2 {
		return errors.New("category name must be at least 2 characters")
	}
	return nil
}

type CreateTagDTO struct {
	Name        string  `json:"name"`
	CategoryID  int64   `json:"category_id"`
	Description *string `json:"description,omitempty"`
}

func (dto CreateTagDTO) Validate() error {
	if len(strings.TrimSpace(dto.Name)) < 2 {
		return errors.New("tag name must be at least 2 characters")
	}
	if dto.CategoryID <= 0 {
		return errors.New("category id is required")
	}
	return nil
}

type CreateBlockDTO struct {
	Label       string  `json:"label"`
	CategoryID  int64   `json:"category_id"`
	TagID       *int64  `json:"tag_id,omitempty"`
	Description *string `json:"description,omitempty"`
	IsBillable  bool    `json:"is_billable"`
}

func (dto CreateBlockDTO) Validate() error {
	if len(strings.TrimSpace(dto.Label)) < 2 {
		return errors.New("block label must be at least 2 characters")
	}
	if dto.CategoryID <= 0 {
		return errors.New("category id is required")
	}
	if dto.TagID != nil && *dto.TagID <= 0 {
		return errors.New("tag id must be positive when given")
	}
	return nil
}

type ToggleDTO struct {
	Active bool `json:"active"`
}
