package service

import (
	"context"
	"time"
)

// Directory event types.
const (
	EventIdentityProvisioned = "identity.provisioned"
	EventPharmacyProvisioned = "pharmacy.provisioned"
	EventCategoryProvisioned = "category.provisioned"
)

// DirectoryEvent announces a completed provisioning flow to downstream consumers.
type DirectoryEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	Type       string    `json:"type"`
	SubjectID  string    `json:"subject_id"`
	Role       string    `json:"role,omitempty"`
	PharmacyID string    `json:"pharmacy_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishDirectoryEvent publishes a directory event
	PublishDirectoryEvent(ctx context.Context, event *DirectoryEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
