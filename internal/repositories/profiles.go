package repositories

import (
	"context"
	"strings"

	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Profiles struct {
	db *gorm.DB
}

func NewProfilesRepository(db *gorm.DB) *Profiles {
	return &Profiles{db: db}
}

func (repo *Profiles) Add(ctx context.Context, profile models.UserProfile) error {
	return repo.db.WithContext(ctx).Create(&profile).Error
}

func (repo *Profiles) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {

	var profile models.UserProfile
	err := repo.db.WithContext(ctx).Preload("PortfolioItems").
		First(&profile, "uid = ?", uid).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// UpdateDetails mutates only the profile-editing fields. Role is never
// touched here; it is immutable after sign-up.
func (repo *Profiles) UpdateDetails(ctx context.Context, uid string, bio, institution string, skills []string) error {
	return repo.db.WithContext(ctx).Model(&models.UserProfile{}).Where("uid = ?", uid).
		Updates(map[string]any{
			"bio":         bio,
			"institution": institution,
			"skills":      strings.Join(skills, ","),
		}).Error
}

// AppendPortfolioItem adds one item to the profile's portfolio. Existing
// items are left untouched (additive merge).
func (repo *Profiles) AppendPortfolioItem(ctx context.Context, uid string, item models.PortfolioItem) (string, error) {
	item.ID = uuid.NewString()
	item.ProfileUID = uid
	if err := repo.db.WithContext(ctx).Create(&item).Error; err != nil {
		return "", err
	}
	return item.ID, nil
}

// Follow records followerUID following followedUID on both profiles.
// Already-present entries are kept as is.
func (repo *Profiles) Follow(ctx context.Context, followerUID, followedUID string) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var follower, followed models.UserProfile
		if err := tx.First(&follower, "uid = ?", followerUID).Error; err != nil {
			return err
		}
		if err := tx.First(&followed, "uid = ?", followedUID).Error; err != nil {
			return err
		}

		err := tx.Model(&models.UserProfile{}).Where("uid = ?", followerUID).
			Update("following", models.AddToSet(follower.Following, followedUID)).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.UserProfile{}).Where("uid = ?", followedUID).
			Update("followers", models.AddToSet(followed.Followers, followerUID)).Error
	})
}

// Unfollow removes the relation from both profiles. Unfollowing someone
// never followed is a no-op.
func (repo *Profiles) Unfollow(ctx context.Context, followerUID, followedUID string) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var follower, followed models.UserProfile
		if err := tx.First(&follower, "uid = ?", followerUID).Error; err != nil {
			return err
		}
		if err := tx.First(&followed, "uid = ?", followedUID).Error; err != nil {
			return err
		}

		err := tx.Model(&models.UserProfile{}).Where("uid = ?", followerUID).
			Update("following", models.RemoveFromSet(follower.Following, followedUID)).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.UserProfile{}).Where("uid = ?", followedUID).
			Update("followers", models.RemoveFromSet(followed.Followers, followerUID)).Error
	})
}
