package catalog

import "time"

type ActivityCategory struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description *string   `gorm:"column:description"`
	Color       *string   `gorm:"column:color"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`
	Active      bool      `gorm:"column:active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`

	Tags []ActivityTag `gorm:"foreignKey:CategoryID"`
}

func (ActivityCategory) TableName() string {
	return "activity_categories"
}

type ActivityTag struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;not null"`
	Description *string   `gorm:"column:description"`
	CategoryID  *int64    `gorm:"column:category_id"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`
	Active      bool      `gorm:"column:active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (ActivityTag) TableName() string {
	return "activity_tags"
}

type ActivityBlock struct {
	ID          int64     `gorm:"primaryKey"`
	Label       string    `gorm:"column:label;not null"`
	CategoryID  int64     `gorm:"column:category_id;not null"`
	TagID       *int64    `gorm:"column:tag_id"`
	Description *string   `gorm:"column:description"`
	IsBillable  bool      `gorm:"column:is_billable;default:false"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`
	Active      bool      `gorm:"column:active;default:true"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`

	Category *ActivityCategory `gorm:"foreignKey:CategoryID"`
	Tag      *ActivityTag      `gorm:"foreignKey:TagID"`
}

func (ActivityBlock) TableName() string {
	return "activity_blocks"
}
