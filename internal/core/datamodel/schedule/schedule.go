package schedule

import "time"

// WorkSchedule rows are immutable once created. Changing a user's
// contracted hours means inserting a new row with a later validFrom,
// never editing an existing one.
type WorkSchedule struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        string    `gorm:"column:user_id;not null;index"`
	ValidFrom     time.Time `gorm:"column:valid_from;not null"`
	WeeklyMinutes int       `gorm:"column:weekly_minutes;not null"`
	CreatedByID   *string   `gorm:"column:created_by_id"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (WorkSchedule) TableName() string {
	return "work_schedules"
}
