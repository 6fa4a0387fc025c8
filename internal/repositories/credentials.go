package repositories

import (
	"context"

	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Credentials struct {
	db *gorm.DB
}

func NewCredentialsRepository(db *gorm.DB) *Credentials {
	return &Credentials{db: db}
}

func (repo *Credentials) Add(ctx context.Context, credential models.Credential) error {
	return repo.db.WithContext(ctx).Create(&credential).Error
}

func (repo *Credentials) GetByEmail(ctx context.Context, email string) (*models.Credential, error) {

	var credential models.Credential
	err := repo.db.WithContext(ctx).First(&credential, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &credential, nil
}

func (repo *Credentials) UpdatePassword(ctx context.Context, uid string, passwordHash string) error {
	return repo.db.WithContext(ctx).Model(&models.Credential{}).Where("uid = ?", uid).
		Update("password_hash", passwordHash).Error
}
