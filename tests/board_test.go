package tests

import (
	"context"
	"testing"
	"time"

	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/OBATA-VTU/oGig/internal/events"
	"github.com/OBATA-VTU/oGig/internal/repositories"
	"github.com/OBATA-VTU/oGig/internal/services"
	"github.com/asaskevich/EventBus"
	"github.com/stretchr/testify/assert"
)

func clearDb() {
	dbCtx.DB.Exec("DELETE from jobs WHERE TRUE")
	dbCtx.DB.Exec("DELETE from portfolio_items WHERE TRUE")
	dbCtx.DB.Exec("DELETE from user_profiles WHERE TRUE")
	dbCtx.DB.Exec("DELETE from credentials WHERE TRUE")
}

func postedJob(title, creatorID string, postedAt time.Time) models.Job {
	return models.Job{
		Title:     title,
		Company:   "Acme",
		Location:  "Lagos, Ikeja",
		Type:      models.Gig,
		CreatorID: creatorID,
		PostedAt:  postedAt,
	}
}

func Test_Board_SubscribersFollowEveryMutation(t *testing.T) {

	defer clearDb()

	board, err := services.NewJobBoard(EventBus.New(), repositories.NewJobsRepository(dbCtx.DB))
	assert.NoError(t, err)

	var snapshots []events.JobsSnapshot
	subscription, err := board.Subscribe(func(snapshot events.JobsSnapshot) {
		snapshots = append(snapshots, snapshot)
	}, nil)
	assert.NoError(t, err)
	defer subscription.Unsubscribe()

	now := time.Now().UTC()
	id, err := board.Create(context.Background(), postedJob("Driver", "u1", now))
	assert.NoError(t, err)
	_, err = board.Create(context.Background(), postedJob("Designer", "u2", now.Add(time.Minute)))
	assert.NoError(t, err)

	assert.NoError(t, board.Delete(context.Background(), id))

	assert.Len(t, snapshots, 4)
	assert.Len(t, snapshots[2].Jobs, 2)
	assert.Len(t, snapshots[3].Jobs, 1)
	assert.Equal(t, "Designer", snapshots[3].Jobs[0].Title)
}

func Test_Board_SnapshotIsOrderedNewestFirst(t *testing.T) {

	defer clearDb()

	board, err := services.NewJobBoard(EventBus.New(), repositories.NewJobsRepository(dbCtx.DB))
	assert.NoError(t, err)

	now := time.Now().UTC()
	_, err = board.Create(context.Background(), postedJob("Oldest", "u1", now.Add(-2*time.Hour)))
	assert.NoError(t, err)
	_, err = board.Create(context.Background(), postedJob("Newest", "u1", now))
	assert.NoError(t, err)
	_, err = board.Create(context.Background(), postedJob("Middle", "u1", now.Add(-time.Hour)))
	assert.NoError(t, err)

	jobs, err := board.Snapshot(context.Background())
	assert.NoError(t, err)

	assert.Len(t, jobs, 3)
	assert.Equal(t, "Newest", jobs[0].Title)
	assert.Equal(t, "Middle", jobs[1].Title)
	assert.Equal(t, "Oldest", jobs[2].Title)
}

func Test_JobsRepository_GetByCreator(t *testing.T) {

	defer clearDb()

	jobs := repositories.NewJobsRepository(dbCtx.DB)

	now := time.Now().UTC()
	_, err := jobs.Add(context.Background(), postedJob("Mine", "creator-a", now))
	assert.NoError(t, err)
	_, err = jobs.Add(context.Background(), postedJob("Also mine", "creator-a", now.Add(time.Minute)))
	assert.NoError(t, err)
	_, err = jobs.Add(context.Background(), postedJob("Someone else's", "creator-b", now))
	assert.NoError(t, err)

	mine, err := jobs.GetByCreator(context.Background(), "creator-a")
	assert.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, "Also mine", mine[0].Title)
}

func Test_JobsRepository_RemoveExpired(t *testing.T) {

	defer clearDb()

	jobs := repositories.NewJobsRepository(dbCtx.DB)

	now := time.Now().UTC()
	_, err := jobs.Add(context.Background(), postedJob("Stale", "u1", now.Add(-40*24*time.Hour)))
	assert.NoError(t, err)
	_, err = jobs.Add(context.Background(), postedJob("Fresh", "u1", now))
	assert.NoError(t, err)

	removed, err := jobs.RemoveExpired(context.Background(), now.Add(-30*24*time.Hour))
	assert.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	remaining, err := jobs.GetAll(context.Background())
	assert.NoError(t, err)
	assert.Len(t, remaining, 1)
	assert.Equal(t, "Fresh", remaining[0].Title)
}
