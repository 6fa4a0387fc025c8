package models

import (
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
)

type JobType string

const (
	FullTime JobType = "Full-time"
	PartTime JobType = "Part-time"
	Contract JobType = "Contract"
	Gig      JobType = "Gig"
	Service  JobType = "Service"
)

func JobTypes() []JobType {
	return []JobType{FullTime, PartTime, Contract, Gig, Service}
}

func ToJobType(s string) (JobType, error) {
	for _, t := range JobTypes() {
		if s == string(t) {
			return t, nil
		}
	}
	return "", errors.New("invalid job type")
}

type Job struct {
	ID            string `gorm:"primaryKey"`
	Title         string
	Company       string
	Description   string
	Requirements  string
	Procedure     string
	Location      string
	Type          JobType
	Category      string
	Salary        string
	PostedAt      time.Time
	IsAdminPosted bool
	Tags          string
	CreatorID     string
	CreatorName   string
	Logo          string
	Whatsapp      string
	Phone         string
	Email         string
	Link          string
}

func (j *Job) TagsAsArray() []string {
	if j.Tags == "" {
		return []string{}
	}
	return strings.Split(j.Tags, ",")
}

func (j *Job) SetTags(tags []string) {
	j.Tags = strings.Join(tags, ",")
}

// ParseTags splits a raw comma-delimited tag string, trimming whitespace
// and dropping empty segments. The result is never nil.
func ParseTags(raw string) []string {
	split := lo.Map(strings.Split(raw, ","), func(item string, _ int) string {
		return strings.TrimSpace(item)
	})
	return lo.Filter(split, func(item string, _ int) bool {
		return item != ""
	})
}

// JobSubmission is the payload a user fills in to post a gig. Tags arrive
// as a single comma-delimited string, the way the posting form sends them.
type JobSubmission struct {
	Title        string `json:"title" validate:"required"`
	Company      string `json:"company" validate:"required"`
	Location     string `json:"location" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Type         string `json:"type" validate:"required"`
	Category     string `json:"category"`
	Salary       string `json:"salary"`
	Requirements string `json:"requirements"`
	Procedure    string `json:"procedure"`
	Tags         string `json:"tags"`
	Whatsapp     string `json:"whatsapp"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Link         string `json:"link"`
}

// AIProcessedJob mirrors the structured output schema the formatting model
// is asked to produce from raw pasted text.
type AIProcessedJob struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Description  string   `json:"description"`
	Requirements string   `json:"requirements"`
	Procedure    string   `json:"procedure"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Category     string   `json:"category"`
	Salary       string   `json:"salary,omitempty"`
	Tags         []string `json:"tags"`
	Whatsapp     string   `json:"whatsapp,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Email        string   `json:"email,omitempty"`
	Link         string   `json:"link,omitempty"`
}

func (p AIProcessedJob) IsEmpty() bool {
	return p.Title == "" && p.Company == "" && p.Description == ""
}
