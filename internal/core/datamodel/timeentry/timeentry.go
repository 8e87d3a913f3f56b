package timeentry

import (
	"time"

	catalogDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/catalog"
	userDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/user"
)

const (
	SourceManual          = "MANUAL"
	SourceQuickSelect     = "QUICK_SELECT"
	SourceImport          = "IMPORT"
	SourceAdminAdjustment = "ADMIN_ADJUSTMENT"
)

const (
	HistoryActionCreated  = "CREATED"
	HistoryActionUpdated  = "UPDATED"
	HistoryActionDeleted  = "DELETED"
	HistoryActionRestored = "RESTORED"
)

type TimeEntry struct {
	ID              string     `gorm:"primaryKey;type:text"`
	UserID          string     `gorm:"column:user_id;not null;index"`
	BlockID         int64      `gorm:"column:block_id;not null"`
	Start           time.Time  `gorm:"column:start;not null;index"`
	End             *time.Time `gorm:"column:end"`
	DurationMinutes *int       `gorm:"column:duration_minutes"`
	Note            *string    `gorm:"column:note"`
	Source          string     `gorm:"column:source;not null;default:MANUAL"`
	EditedByID      *string    `gorm:"column:edited_by_id"`
	DeletedAt       *time.Time `gorm:"column:deleted_at"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`

	User  *userDatamodel.User             `gorm:"foreignKey:UserID"`
	Block *catalogDatamodel.ActivityBlock `gorm:"foreignKey:BlockID"`
}

func (TimeEntry) TableName() string {
	return "time_entries"
}

type FavoriteBlock struct {
	ID         int64      `gorm:"primaryKey"`
	UserID     string     `gorm:"column:user_id;not null;uniqueIndex:idx_favorite_user_block"`
	BlockID    int64      `gorm:"column:block_id;not null;uniqueIndex:idx_favorite_user_block"`
	LastUsedAt *time.Time `gorm:"column:last_used_at"`

	Block *catalogDatamodel.ActivityBlock `gorm:"foreignKey:BlockID"`
}

func (FavoriteBlock) TableName() string {
	return "favorite_blocks"
}

// TimeEntryHistory is an append-only audit trail of entry mutations.
// Snapshots are stored as serialized JSON of the entry at mutation time.
type TimeEntryHistory struct {
	ID          int64     `gorm:"primaryKey"`
	EntryID     string    `gorm:"column:entry_id;not null;index"`
	Action      string    `gorm:"column:action;not null"`
	Snapshot    string    `gorm:"column:snapshot;not null"`
	ChangedAt   time.Time `gorm:"column:changed_at"`
	ChangedByID *string   `gorm:"column:changed_by_id"`
}

func (TimeEntryHistory) TableName() string {
	return "time_entry_history"
}
