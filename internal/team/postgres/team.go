package postgres

import (
	"time"

	"gorm.io/gorm"

	scheduleDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/schedule"
	timeentryDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/timeentry"
	userDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/user"
	"github.com/Adprivat/praxislabor/internal/team"
)

type TeamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) team.RepositoryAPI {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListEmployees() ([]*userDatamodel.User, error) {
	var users []*userDatamodel.User
	err := r.db.
		Where("role = ?", userDatamodel.RoleEmployee).
		Order("name ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *TeamRepository) EntryActivity(userIDs []string) ([]*team.EntryActivity, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	type countRow struct {
		UserID     string
		EntryCount int64
	}
	var counts []countRow
	err := r.db.
		Model(&timeentryDatamodel.TimeEntry{}).
		Select("user_id, COUNT(*) AS entry_count").
		Where("user_id IN ?", userIDs).
		Where("deleted_at IS NULL").
		Group("user_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	var latest []*timeentryDatamodel.TimeEntry
	err = r.db.
		Select("user_id", "start").
		Where("user_id IN ?", userIDs).
		Where("deleted_at IS NULL").
		Order("start DESC").
		Find(&latest).Error
	if err != nil {
		return nil, err
	}

	byUser := make(map[string]*team.EntryActivity, len(counts))
	rows := make([]*team.EntryActivity, 0, len(counts))
	for _, c := range counts {
		activity := &team.EntryActivity{UserID: c.UserID, EntryCount: c.EntryCount}
		byUser[c.UserID] = activity
		rows = append(rows, activity)
	}
	// Rows are newest first, so the first hit per user wins.
	for _, entry := range latest {
		if activity, ok := byUser[entry.UserID]; ok && activity.LastStart == nil {
			start := entry.Start
			activity.LastStart = &start
		}
	}
	return rows, nil
}

func (r *TeamRepository) GetUser(id string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *TeamRepository) EmailExists(email string) (bool, error) {
	var count int64
	err := r.db.
		Model(&userDatamodel.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TeamRepository) CreateWithSchedule(user *userDatamodel.User, schedule *scheduleDatamodel.WorkSchedule) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		schedule.UserID = user.ID
		return tx.Create(schedule).Error
	})
}

func (r *TeamRepository) Deactivate(id string) error {
	return r.db.
		Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":     false,
			"password_hash": nil,
			"updated_at":    time.Now(),
		}).Error
}
