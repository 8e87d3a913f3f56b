package postgres

import (
	"time"

	"gorm.io/gorm"

	scheduleDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/schedule"
	timeentryDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/timeentry"
	userDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/user"
	"github.com/Adprivat/praxislabor/internal/management"
)

type ManagementRepository struct {
	db *gorm.DB
}

func NewManagementRepository(db *gorm.DB) management.RepositoryAPI {
	return &ManagementRepository{db: db}
}

func (r *ManagementRepository) EntriesInRange(start, end time.Time, userID string) ([]*timeentryDatamodel.TimeEntry, error) {
	query := r.db.
		Preload("User").
		Preload("Block").
		Preload("Block.Category").
		Where("deleted_at IS NULL").
		Where("start >= ? AND start <= ?", start, end)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	var entries []*timeentryDatamodel.TimeEntry
	if err := query.Order("start DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *ManagementRepository) SchedulesForUsers(userIDs []string) ([]*scheduleDatamodel.WorkSchedule, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	var schedules []*scheduleDatamodel.WorkSchedule
	err := r.db.
		Where("user_id IN ?", userIDs).
		Order("valid_from DESC, id DESC").
		Find(&schedules).Error
	if err != nil {
		return nil, err
	}
	return schedules, nil
}

func (r *ManagementRepository) ActiveUsers() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
