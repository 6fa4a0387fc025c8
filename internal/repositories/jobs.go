package repositories

import (
	"context"
	"time"

	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Jobs struct {
	db *gorm.DB
}

func NewJobsRepository(db *gorm.DB) *Jobs {
	return &Jobs{db: db}
}

// Add assigns the record identifier exactly once and appends the record.
// An identifier passed in by the caller is ignored.
func (repo *Jobs) Add(ctx context.Context, job models.Job) (string, error) {
	job.ID = uuid.NewString()
	if err := repo.db.WithContext(ctx).Create(&job).Error; err != nil {
		return "", err
	}
	return job.ID, nil
}

// GetAll returns the full collection ordered by posting time, newest first.
func (repo *Jobs) GetAll(ctx context.Context) ([]models.Job, error) {

	var jobs []models.Job
	if err := repo.db.WithContext(ctx).Order("posted_at desc").Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) GetByCreator(ctx context.Context, creatorID string) ([]models.Job, error) {

	var jobs []models.Job
	if err := repo.db.WithContext(ctx).Order("posted_at desc").
		Find(&jobs, "creator_id = ?", creatorID).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (repo *Jobs) GetByID(ctx context.Context, id string) (*models.Job, error) {

	var job models.Job
	err := repo.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// Remove deletes one record by identifier. Removing an identifier that
// does not exist is a silent no-op, so racing deletes both resolve.
func (repo *Jobs) Remove(ctx context.Context, id string) error {
	return repo.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id).Error
}

func (repo *Jobs) Count(ctx context.Context) (int64, error) {

	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.Job{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *Jobs) RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error) {
	res := repo.db.WithContext(ctx).Delete(&models.Job{}, "posted_at < ?", expirationTime)
	return res.RowsAffected, res.Error
}
