package services

import (
	"context"
	"time"

	"github.com/OBATA-VTU/oGig/internal/auth"
	"github.com/OBATA-VTU/oGig/internal/domain/faults"
	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

type boardWriter interface {
	Create(ctx context.Context, job models.Job) (string, error)
}

// Submissions validates and normalizes user-posted gigs before handing
// them to the board.
type Submissions struct {
	board    boardWriter
	validate *validator.Validate
	now      func() time.Time
}

func NewSubmissionService(board boardWriter) *Submissions {
	return &Submissions{
		board:    board,
		validate: validator.New(),
		now:      time.Now,
	}
}

// WithClock overrides the posting-time source, for tests.
func (s *Submissions) WithClock(now func() time.Time) *Submissions {
	s.now = now
	return s
}

// Submit rejects unauthenticated callers, validates the payload and
// writes the normalized record. The returned job carries the assigned
// identifier and the posting timestamp.
func (s *Submissions) Submit(ctx context.Context, payload models.JobSubmission, identity *auth.Identity) (*models.Job, error) {

	if identity == nil || identity.UID == "" {
		return nil, faults.New(faults.Authentication, "authentication required")
	}

	job, err := validateSubmission(s.validate, payload)
	if err != nil {
		return nil, err
	}

	job.PostedAt = s.now().UTC()
	job.IsAdminPosted = false
	job.CreatorID = identity.UID
	job.CreatorName = identity.DisplayName
	if job.CreatorName == "" {
		job.CreatorName = identity.Email
	}

	id, err := s.board.Create(ctx, *job)
	if err != nil {
		return nil, err
	}
	job.ID = id

	log.Infof("gig %v posted by %v", id, identity.UID)
	return job, nil
}

// validateSubmission enforces the required-field rules and normalizes
// the comma-delimited tag input. It has no side effects.
func validateSubmission(validate *validator.Validate, payload models.JobSubmission) (*models.Job, error) {

	if err := validate.Struct(payload); err != nil {
		return nil, faults.Wrap(faults.Validation, err, "submission rejected")
	}

	jobType, err := models.ToJobType(payload.Type)
	if err != nil {
		return nil, faults.Wrap(faults.Validation, err, "submission rejected")
	}

	job := &models.Job{
		Title:        payload.Title,
		Company:      payload.Company,
		Description:  payload.Description,
		Requirements: payload.Requirements,
		Procedure:    payload.Procedure,
		Location:     payload.Location,
		Type:         jobType,
		Category:     payload.Category,
		Salary:       payload.Salary,
		Whatsapp:     payload.Whatsapp,
		Phone:        payload.Phone,
		Email:        payload.Email,
		Link:         payload.Link,
	}
	job.SetTags(models.ParseTags(payload.Tags))

	return job, nil
}
