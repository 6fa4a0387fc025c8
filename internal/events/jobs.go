package events

import "github.com/OBATA-VTU/oGig/internal/domain/models"

var JobsSnapshotTopic = "JobsSnapshotEvent"
var JobsFeedErrorTopic = "JobsFeedErrorEvent"

// JobsSnapshot always carries the complete ordered collection, never a
// delta. Subscribers replace their view wholesale on every event.
type JobsSnapshot struct {
	Jobs []models.Job
}

type JobsFeedError struct {
	Err error
}
