package services

import (
	"strings"

	"github.com/OBATA-VTU/oGig/internal/domain/models"
	"github.com/samber/lo"
)

// FilterCriteria fields are independently optional; "" and "all" both
// mean "any". State is matched as a substring of the free-text
// "State, Area" location convention.
type FilterCriteria struct {
	Search   string
	Type     string
	Category string
	State    string
}

const matchAny = "all"

// FilterJobs retains a job iff all four predicates pass. The input order
// is preserved; the store already delivers newest-first.
func FilterJobs(jobs []models.Job, criteria FilterCriteria) []models.Job {
	return lo.Filter(jobs, func(job models.Job, _ int) bool {
		return matchesSearch(job, criteria.Search) &&
			matchesType(job, criteria.Type) &&
			matchesCategory(job, criteria.Category) &&
			matchesState(job, criteria.State)
	})
}

func matchesSearch(job models.Job, search string) bool {
	q := strings.ToLower(search)
	if q == "" {
		return true
	}

	if strings.Contains(strings.ToLower(job.Title), q) ||
		strings.Contains(strings.ToLower(job.Description), q) ||
		strings.Contains(strings.ToLower(job.Location), q) {
		return true
	}

	for _, tag := range job.TagsAsArray() {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func matchesType(job models.Job, jobType string) bool {
	if jobType == "" || jobType == matchAny {
		return true
	}
	return string(job.Type) == jobType
}

func matchesCategory(job models.Job, category string) bool {
	if category == "" || category == matchAny {
		return true
	}
	return strings.Contains(strings.ToLower(job.Category), strings.ToLower(category))
}

func matchesState(job models.Job, state string) bool {
	if state == "" || state == matchAny {
		return true
	}
	return strings.Contains(strings.ToLower(job.Location), strings.ToLower(state))
}
