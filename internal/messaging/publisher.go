package messaging

import (
	"context"

	"github.com/feral-file/ff-metadata-registry/internal/domain"
)

// Publisher defines the interface for publishing metadata change events to the message broker
//
//go:generate mockgen -source=publisher.go -destination=../mocks/publisher.go -package=mocks -mock_names=Publisher=MockPublisher
type Publisher interface {
	// PublishEvent publishes a metadata change event
	PublishEvent(ctx context.Context, event *domain.MetadataEvent) error
	// Close closes the connection
	Close()
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every event, used when events are disabled
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) PublishEvent(context.Context, *domain.MetadataEvent) error { return nil }

func (noopPublisher) Close() {}
