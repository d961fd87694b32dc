package store

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/tidwall/btree"

	"github.com/feral-file/ff-metadata-registry/internal/domain"
	"github.com/feral-file/ff-metadata-registry/internal/store/schema"
)

// memoryStore keeps both stores in ordered in-memory maps
type memoryStore struct {
	mu sync.RWMutex

	metadata  *btree.Map[domain.TokenID, schema.TokenMetadata]
	tokenURIs *btree.Map[domain.TokenID, string]
}

// NewMemoryStore creates an empty in-memory store. Nothing survives a restart.
func NewMemoryStore() Store {
	return &memoryStore{
		metadata:  btree.NewMap[domain.TokenID, schema.TokenMetadata](0),
		tokenURIs: btree.NewMap[domain.TokenID, string](0),
	}
}

func (s *memoryStore) GetMetadata(ctx context.Context, tokenID domain.TokenID) (*schema.TokenMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.metadata.Get(tokenID)
	if !ok {
		return nil, nil
	}

	row.Attributes = toJSONSlice(row.Attributes)
	return &row, nil
}

func (s *memoryStore) CreateMetadata(ctx context.Context, input CreateMetadataInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.metadata.Get(input.TokenID); ok {
		return fmt.Errorf("%w: token %s", domain.ErrAlreadyExists, input.TokenID)
	}

	s.metadata.Set(input.TokenID, schema.TokenMetadata{
		TokenID:     input.TokenID,
		Name:        input.Name,
		Description: input.Description,
		ImageURI:    input.ImageURI,
		Attributes:  toJSONSlice(input.Attributes),
		ContentHash: input.ContentHash,
		CreatedAt:   input.Sequence,
		UpdatedAt:   input.Sequence,
	})

	return nil
}

func (s *memoryStore) UpdateMetadata(ctx context.Context, input UpdateMetadataInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.metadata.Get(input.TokenID)
	if !ok {
		return fmt.Errorf("%w: token %s", domain.ErrNotFound, input.TokenID)
	}

	row.Name = input.Name
	row.Description = input.Description
	row.ImageURI = input.ImageURI
	row.Attributes = toJSONSlice(input.Attributes)
	row.ContentHash = input.ContentHash
	row.UpdatedAt = input.Sequence
	s.metadata.Set(input.TokenID, row)

	return nil
}

func (s *memoryStore) ListMetadata(ctx context.Context, after domain.TokenID, limit int) ([]schema.TokenMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]schema.TokenMetadata, 0, max(limit, 0))
	// nothing sorts after the largest id, and after+1 would wrap
	if limit <= 0 || after == math.MaxInt64 {
		return rows, nil
	}

	s.metadata.Ascend(after+1, func(_ domain.TokenID, row schema.TokenMetadata) bool {
		row.Attributes = toJSONSlice(row.Attributes)
		rows = append(rows, row)
		return len(rows) < limit
	})

	return rows, nil
}

func (s *memoryStore) MaxSequence(ctx context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var maxSequence uint64
	s.metadata.Scan(func(_ domain.TokenID, row schema.TokenMetadata) bool {
		maxSequence = max(maxSequence, row.UpdatedAt)
		return true
	})

	return maxSequence, nil
}

func (s *memoryStore) GetTokenURI(ctx context.Context, tokenID domain.TokenID) (*schema.TokenURI, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uri, ok := s.tokenURIs.Get(tokenID)
	if !ok {
		return nil, nil
	}

	return &schema.TokenURI{TokenID: tokenID, URI: uri}, nil
}

func (s *memoryStore) UpsertTokenURI(ctx context.Context, tokenID domain.TokenID, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokenURIs.Set(tokenID, uri)
	return nil
}
