package user

import "time"

const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:text"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	Name         string    `gorm:"column:name;not null"`
	PasswordHash *string   `gorm:"column:password_hash"`
	Role         string    `gorm:"column:role;not null;default:EMPLOYEE"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}
