package catalog

import (
	catalogDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/catalog"
)

type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
	SortOrder   int     `json:"sort_order"`
	Active      bool    `json:"active"`
	Tags        []Tag   `json:"tags"`
}

type Tag struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CategoryID  *int64  `json:"category_id,omitempty"`
	SortOrder   int     `json:"sort_order"`
	Active      bool    `json:"active"`
}

type Block struct {
	ID           int64   `json:"id"`
	Label        string  `json:"label"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	TagID        *int64  `json:"tag_id,omitempty"`
	Description  *string `json:"description,omitempty"`
	IsBillable   bool    `json:"is_billable"`
	SortOrder    int     `json:"sort_order"`
	Active       bool    `json:"active"`
}

// Catalog bundles everything the admin screen and the entry pickers need.
type Catalog struct {
	Categories []Category `json:"categories"`
	Blocks     []Block    `json:"blocks"`
}

func CategoryFromDataModel(c *catalogDatamodel.ActivityCategory) Category {
	tags := make([]Tag, len(c.Tags))
	for i := range c.Tags {
		tags[i] = TagFromDataModel(&c.Tags[i])
	}
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		SortOrder:   c.SortOrder,
		Active:      c.Active,
		Tags:        tags,
	}
}

func TagFromDataModel(t *catalogDatamodel.ActivityTag) Tag {
	return Tag{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		SortOrder:   t.SortOrder,
		Active:      t.Active,
	}
}

func BlockFromDataModel(b *catalogDatamodel.ActivityBlock) Block {
	block := Block{
		ID:          b.ID,
		Label:       b.Label,
		CategoryID:  b.CategoryID,
		TagID:       b.TagID,
		Description: b.Description,
		IsBillable:  b.IsBillable,
		SortOrder:   b.SortOrder,
		Active:      b.Active,
	}
	if b.Category != nil {
		block.CategoryName = b.Category.Name
	}
	return block
}
