package services

import (
	"context"
	"strings"

	"github.com/OBATA-VTU/oGig/internal/domain/faults"
	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/OBATA-VTU/oGig/internal/events"
	"github.com/OBATA-VTU/oGig/internal/logger"
	"github.com/OBATA-VTU/oGig/internal/metrics"
	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type jobsRepository interface {
	Add(ctx context.Context, job models.Job) (string, error)
	GetAll(ctx context.Context) ([]models.Job, error)
	GetByCreator(ctx context.Context, creatorID string) ([]models.Job, error)
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Remove(ctx context.Context, id string) error
}

// JobBoard owns the live view of the jobs collection. Every mutation
// republishes the complete ordered snapshot to all current subscribers.
type JobBoard struct {
	bus  EventBus.Bus
	jobs jobsRepository
}

func NewJobBoard(bus EventBus.Bus, jobs jobsRepository) (*JobBoard, error) {
	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	if jobs == nil {
		return nil, errors.New("jobs repository is nil")
	}
	return &JobBoard{bus: bus, jobs: jobs}, nil
}

func (b *JobBoard) Create(ctx context.Context, job models.Job) (string, error) {
	id, err := b.jobs.Add(ctx, job)
	if err != nil {
		return "", classifyStoreError(err)
	}

	source := "user"
	if job.IsAdminPosted {
		source = "admin"
	}
	metrics.PostedJobsCounter.WithLabelValues(source).Inc()

	b.publishSnapshot(ctx)
	return id, nil
}

// Delete removes a record by identifier. A missing identifier is not an
// error, so two racing deletes of the same id both resolve cleanly.
func (b *JobBoard) Delete(ctx context.Context, id string) error {
	if err := b.jobs.Remove(ctx, id); err != nil {
		return classifyStoreError(err)
	}

	metrics.DeletedJobsCounter.Inc()

	b.publishSnapshot(ctx)
	return nil
}

func (b *JobBoard) Get(ctx context.Context, id string) (*models.Job, error) {
	job, err := b.jobs.GetByID(ctx, id)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return job, nil
}

// ByCreator returns the caller's own postings, newest first.
func (b *JobBoard) ByCreator(ctx context.Context, creatorID string) ([]models.Job, error) {
	jobs, err := b.jobs.GetByCreator(ctx, creatorID)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return jobs, nil
}

func (b *JobBoard) Snapshot(ctx context.Context) ([]models.Job, error) {
	jobs, err := b.jobs.GetAll(ctx)
	if err != nil {
		return nil, classifyStoreError(err)
	}
	return jobs, nil
}

// Subscription is the teardown handle for one live feed. Callers must
// invoke Unsubscribe when no longer interested.
type Subscription struct {
	board      *JobBoard
	onSnapshot func(events.JobsSnapshot)
	onError    func(events.JobsFeedError)
}

// Subscribe registers a live snapshot feed and immediately delivers the
// current collection state. onError receives classified failures: a
// permission fault is terminal, a transient one is user-retriable.
func (b *JobBoard) Subscribe(onSnapshot func(events.JobsSnapshot), onError func(events.JobsFeedError)) (*Subscription, error) {
	if onError == nil {
		onError = func(events.JobsFeedError) {}
	}

	if err := b.bus.Subscribe(events.JobsSnapshotTopic, onSnapshot); err != nil {
		return nil, err
	}
	if err := b.bus.Subscribe(events.JobsFeedErrorTopic, onError); err != nil {
		_ = b.bus.Unsubscribe(events.JobsSnapshotTopic, onSnapshot)
		return nil, err
	}

	metrics.BoardSubscribersGauge.Inc()

	jobs, err := b.jobs.GetAll(context.Background())
	if err != nil {
		onError(events.JobsFeedError{Err: classifyStoreError(err)})
	} else {
		onSnapshot(events.JobsSnapshot{Jobs: jobs})
	}

	return &Subscription{board: b, onSnapshot: onSnapshot, onError: onError}, nil
}

func (s *Subscription) Unsubscribe() {
	_ = s.board.bus.Unsubscribe(events.JobsSnapshotTopic, s.onSnapshot)
	_ = s.board.bus.Unsubscribe(events.JobsFeedErrorTopic, s.onError)
	metrics.BoardSubscribersGauge.Dec()
}

func (b *JobBoard) publishSnapshot(ctx context.Context) {
	jobs, err := b.jobs.GetAll(ctx)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to read snapshot after mutation: %v", err)
		b.bus.Publish(events.JobsFeedErrorTopic, events.JobsFeedError{Err: classifyStoreError(err)})
		return
	}
	b.bus.Publish(events.JobsSnapshotTopic, events.JobsSnapshot{Jobs: jobs})
}

// classifyStoreError separates operator-fixable denials from retriable
// connectivity failures.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "permission denied") ||
		strings.Contains(msg, "access denied") ||
		strings.Contains(msg, "readonly database") {
		return faults.Wrap(faults.Permission, err, "store denied the operation")
	}
	return faults.Wrap(faults.Transient, err, "store unreachable")
}
