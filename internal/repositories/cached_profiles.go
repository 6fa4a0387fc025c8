package repositories

import (
	"context"
	"time"

	"github.com/OBATA-VTU/oGig/internal/domain/models"
	gocache "github.com/patrickmn/go-cache"
)

type profileRepository interface {
	GetByUID(ctx context.Context, uid string) (*models.UserProfile, error)
}

// CachedProfiles memoizes profile reads; profiles are looked up on every
// authenticated request to resolve the caller's role.
type CachedProfiles struct {
	repo  profileRepository
	cache *gocache.Cache
}

func NewCachedProfiles(repo profileRepository) *CachedProfiles {
	return &CachedProfiles{repo: repo, cache: gocache.New(5*time.Minute, 10*time.Minute)}
}

func (c *CachedProfiles) GetByUID(ctx context.Context, uid string) (*models.UserProfile, error) {
	if value, found := c.cache.Get(uid); found {
		profile := value.(models.UserProfile)
		return &profile, nil
	}

	profile, err := c.repo.GetByUID(ctx, uid)
	if profile != nil && err == nil {
		// Set, not Add: two concurrent misses for the same uid must both
		// succeed, the later write simply wins
		c.cache.Set(uid, *profile, gocache.DefaultExpiration)
	}

	return profile, err
}

// Invalidate drops the cached copy after a profile mutation.
func (c *CachedProfiles) Invalidate(uid string) {
	c.cache.Delete(uid)
}
