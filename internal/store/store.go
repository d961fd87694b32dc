package store

import (
	"context"

	"github.com/feral-file/ff-metadata-registry/internal/domain"
	"github.com/feral-file/ff-metadata-registry/internal/store/schema"
)

// CreateMetadataInput holds the row written by a registration
type CreateMetadataInput struct {
	TokenID     domain.TokenID
	Name        string
	Description string
	ImageURI    string
	Attributes  []domain.Attribute
	ContentHash string
	Sequence    uint64 // stored as both created_at and updated_at
}

// UpdateMetadataInput holds the mutable fields written by a revision
type UpdateMetadataInput struct {
	TokenID     domain.TokenID
	Name        string
	Description string
	ImageURI    string
	Attributes  []domain.Attribute
	ContentHash string
	Sequence    uint64 // stored as updated_at
}

// Store defines the interface for the metadata and token URI stores
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// GetMetadata retrieves the metadata record of a token, nil if absent
	GetMetadata(ctx context.Context, tokenID domain.TokenID) (*schema.TokenMetadata, error)
	// CreateMetadata inserts a new record, domain.ErrAlreadyExists if one is present
	CreateMetadata(ctx context.Context, input CreateMetadataInput) error
	// UpdateMetadata overwrites the mutable fields and updated_at, domain.ErrNotFound if absent.
	// created_at is never written.
	UpdateMetadata(ctx context.Context, input UpdateMetadataInput) error
	// ListMetadata returns up to limit records with token id greater than after, ordered by token id
	ListMetadata(ctx context.Context, after domain.TokenID, limit int) ([]schema.TokenMetadata, error)
	// MaxSequence returns the highest updated_at stored, zero when empty
	MaxSequence(ctx context.Context) (uint64, error)

	// GetTokenURI retrieves the token URI of a token, nil if absent
	GetTokenURI(ctx context.Context, tokenID domain.TokenID) (*schema.TokenURI, error)
	// UpsertTokenURI inserts or overwrites the token URI of a token
	UpsertTokenURI(ctx context.Context, tokenID domain.TokenID, uri string) error
}
