package services

import (
	"context"
	"time"

	"github.com/OBATA-VTU/oGig/internal/logger"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type expiredJobsRepository interface {
	RemoveExpired(ctx context.Context, expirationTime time.Time) (int64, error)
}

// ListingsCleaner prunes postings older than the configured expiry once
// a day.
type ListingsCleaner struct {
	jobs             expiredJobsRepository
	cron             *cron.Cron
	expirationInDays int
}

func NewListingsCleaner(jobs expiredJobsRepository, expirationInDays int) (*ListingsCleaner, error) {

	if expirationInDays <= 0 {
		return nil, errors.New("expiration in days must be greater than zero")
	}

	lc := &ListingsCleaner{
		jobs:             jobs,
		cron:             cron.New(),
		expirationInDays: expirationInDays,
	}

	_, err := lc.cron.AddFunc("0 0 * * *", lc.cleanExpiredListings)
	if err != nil {
		return nil, err
	}

	lc.cron.Start()
	log.Infof("listings cleaner started, expiration in days: %d", lc.expirationInDays)
	return lc, nil
}

func (lc *ListingsCleaner) Stop() {
	lc.cron.Stop()
}

func (lc *ListingsCleaner) cleanExpiredListings() {
	expirationTime := time.Now().Add(-time.Duration(lc.expirationInDays) * 24 * time.Hour)
	rowsAffected, err := lc.jobs.RemoveExpired(context.Background(), expirationTime)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("Failed to clean expired listings: %v", err)
	} else {
		log.Infof("Expired listings cleaned at %v, affected rows: %v", time.Now(), rowsAffected)
	}
}
