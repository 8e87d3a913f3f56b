package postgres

import (
	"time"

	"github.com/Adprivat/praxislabor/internal/auth"
	userDatamodel "github.com/Adprivat/praxislabor/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) auth.RepositoryAPI {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetByEmail(email string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Where("email = ?", email).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AuthRepository) GetByID(id string) (*userDatamodel.User, error) {
	var record userDatamodel.User
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *AuthRepository) UpdatePassword(userID, passwordHash string) error {
	return r.db.
		Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		}).Error
}
