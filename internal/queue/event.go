// Package queue defines message payloads exchanged over the message broker
// and the consumer that records them.
package queue

import "time"

// DonorEventsQueue is the durable queue carrying DonorEvent messages.
const DonorEventsQueue = "donor.events"

const (
	DonorRegistered = "donor.registered"
	DonorDeleted    = "donor.deleted"
)

// DonorEvent is published after a donor is registered or deleted.  Deletion
// events carry only the id, since the row is already gone.
type DonorEvent struct {
	Type       string    `json:"type"`
	DonorID    int64     `json:"donor_id"`
	BloodGroup string    `json:"blood_group,omitempty"`
	Location   string    `json:"location,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
