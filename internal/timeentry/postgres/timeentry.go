package postgres

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	catalogDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/catalog"
	timeentryDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/timeentry"
	"github.com/Adprivat/praxislabor/internal/timeentry"
)

type TimeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) timeentry.RepositoryAPI {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) GetBlock(id int64) (*catalogDatamodel.ActivityBlock, error) {
	var block catalogDatamodel.ActivityBlock
	if err := r.db.Preload("Category").Where("id = ?", id).First(&block).Error; err != nil {
		return nil, err
	}
	return &block, nil
}

func (r *TimeEntryRepository) GetByID(id string) (*timeentryDatamodel.TimeEntry, error) {
	var entry timeentryDatamodel.TimeEntry
	if err := r.db.Where("id = ?", id).First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *TimeEntryRepository) CreateWithFavorite(entry *timeentryDatamodel.TimeEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return upsertFavorite(tx, entry.UserID, entry.BlockID)
	})
}

func (r *TimeEntryRepository) UpdateWithFavorite(entry *timeentryDatamodel.TimeEntry) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		entry.UpdatedAt = time.Now()
		if err := tx.Save(entry).Error; err != nil {
			return err
		}
		return upsertFavorite(tx, entry.UserID, entry.BlockID)
	})
}

// upsertFavorite refreshes the owner's recently-used marker for a block.
func upsertFavorite(tx *gorm.DB, userID string, blockID int64) error {
	now := time.Now()
	favorite := timeentryDatamodel.FavoriteBlock{
		UserID:     userID,
		BlockID:    blockID,
		LastUsedAt: &now,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "block_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"last_used_at": now}),
	}).Create(&favorite).Error
}

func (r *TimeEntryRepository) SoftDelete(id string, at time.Time) error {
	return r.db.Model(&timeentryDatamodel.TimeEntry{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Updates(map[string]interface{}{
			"deleted_at": at,
			"updated_at": at,
		}).Error
}

func (r *TimeEntryRepository) ListForUser(userID string, since time.Time) ([]*timeentryDatamodel.TimeEntry, error) {
	var entries []*timeentryDatamodel.TimeEntry
	err := r.db.
		Preload("Block").
		Preload("Block.Category").
		Where("user_id = ? AND deleted_at IS NULL AND start >= ?", userID, since).
		Order("start DESC").
		Find(&entries).Error
	return entries, err
}

func (r *TimeEntryRepository) ListFavorites(userID string) ([]*timeentryDatamodel.FavoriteBlock, error) {
	var favorites []*timeentryDatamodel.FavoriteBlock
	err := r.db.
		Preload("Block").
		Where("user_id = ?", userID).
		Order("last_used_at DESC").
		Find(&favorites).Error
	return favorites, err
}

func (r *TimeEntryRepository) AppendHistory(record *timeentryDatamodel.TimeEntryHistory) error {
	if record.ChangedAt.IsZero() {
		record.ChangedAt = time.Now()
	}
	return r.db.Create(record).Error
}
