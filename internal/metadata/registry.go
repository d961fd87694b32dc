package metadata

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-metadata-registry/internal/adapter"
	"github.com/feral-file/ff-metadata-registry/internal/domain"
	"github.com/feral-file/ff-metadata-registry/internal/identity"
	"github.com/feral-file/ff-metadata-registry/internal/logger"
	"github.com/feral-file/ff-metadata-registry/internal/messaging"
	"github.com/feral-file/ff-metadata-registry/internal/store"
)

// Registry is the single-owner metadata registry.
// Every mutation is gated by the owner check, then validation, then the existence state of the token id.
//
//go:generate mockgen -source=registry.go -destination=../mocks/registry.go -package=mocks -mock_names=Registry=MockRegistry
type Registry interface {
	// Register inserts a new record. created_at and updated_at are set to the current sequence marker.
	Register(ctx context.Context, in domain.MetadataInput) error
	// Revise overwrites the mutable fields of an existing record and advances updated_at
	Revise(ctx context.Context, in domain.MetadataInput) error
	// Get returns the record of a token id, nil when it was never registered
	Get(ctx context.Context, tokenID domain.TokenID) (*domain.MetadataRecord, error)
	// SetTokenURI inserts or overwrites the token URI of a token id
	SetTokenURI(ctx context.Context, tokenID domain.TokenID, uri string) error
	// GetTokenURI returns the token URI of a token id, nil when it was never set
	GetTokenURI(ctx context.Context, tokenID domain.TokenID) (*domain.TokenURI, error)
	// BulkRegister registers the inputs in order and stops at the first failure.
	// Records inserted before the failure are kept; the failing element's error is returned as is.
	BulkRegister(ctx context.Context, inputs []domain.MetadataInput) error
	// List returns up to limit records with a token id greater than after, ordered by token id
	List(ctx context.Context, after domain.TokenID, limit int) ([]domain.MetadataRecord, error)
}

// Config holds the registry configuration
type Config struct {
	// PublishTimeout bounds the publication of one change event, zero means no bound
	PublishTimeout time.Duration
}

type registry struct {
	// mu serializes every public operation, bulk registration included
	mu sync.Mutex

	store     store.Store
	identity  identity.Provider
	sequencer adapter.Sequencer
	publisher messaging.Publisher
	json      adapter.JSON
	jcs       adapter.JCS
	clock     adapter.Clock
	config    Config
}

// NewRegistry creates a new metadata registry
func NewRegistry(
	st store.Store,
	identityProvider identity.Provider,
	sequencer adapter.Sequencer,
	publisher messaging.Publisher,
	jsonAdapter adapter.JSON,
	jcsAdapter adapter.JCS,
	clock adapter.Clock,
	config Config,
) Registry {
	return &registry{
		store:     st,
		identity:  identityProvider,
		sequencer: sequencer,
		publisher: publisher,
		json:      jsonAdapter,
		jcs:       jcsAdapter,
		clock:     clock,
		config:    config,
	}
}

// Register inserts a new metadata record
func (r *registry) Register(ctx context.Context, in domain.MetadataInput) error {
	r.mu.Lock()
	event, err := r.authorizeAndRegister(ctx, in)
	r.mu.Unlock()

	observe(operationRegister, err)
	if err != nil {
		return err
	}

	r.publish(ctx, event)
	return nil
}

func (r *registry) authorizeAndRegister(ctx context.Context, in domain.MetadataInput) (*domain.MetadataEvent, error) {
	if err := r.authorize(ctx); err != nil {
		return nil, err
	}
	return r.register(ctx, in)
}

// register runs validation, the must-not-exist check and the insert.
// The caller holds the lock and has already checked the owner.
func (r *registry) register(ctx context.Context, in domain.MetadataInput) (*domain.MetadataEvent, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := r.store.GetMetadata(ctx, in.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: token %s", domain.ErrAlreadyExists, in.TokenID)
	}

	hash, err := r.contentHash(in)
	if err != nil {
		return nil, err
	}

	sequence := r.sequencer.Next()
	err = r.store.CreateMetadata(ctx, store.CreateMetadataInput{
		TokenID:     in.TokenID,
		Name:        in.Name,
		Description: in.Description,
		ImageURI:    in.ImageURI,
		Attributes:  in.Attributes,
		ContentHash: hash,
		Sequence:    sequence,
	})
	if err != nil {
		// Another process sharing the database may have inserted the token in between
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: token %s", domain.ErrAlreadyExists, in.TokenID)
		}
		return nil, fmt.Errorf("failed to create metadata: %w", err)
	}

	logger.InfoCtx(ctx, "Registered metadata",
		zap.Int64("tokenID", int64(in.TokenID)),
		zap.Uint64("sequence", sequence),
		zap.String("contentHash", hash))

	return r.newEvent(domain.EventTypeMetadataRegistered, in.TokenID, sequence, hash, ""), nil
}

// Revise overwrites the mutable fields of an existing record
func (r *registry) Revise(ctx context.Context, in domain.MetadataInput) error {
	r.mu.Lock()
	event, err := r.revise(ctx, in)
	r.mu.Unlock()

	observe(operationRevise, err)
	if err != nil {
		return err
	}

	r.publish(ctx, event)
	return nil
}

func (r *registry) revise(ctx context.Context, in domain.MetadataInput) (*domain.MetadataEvent, error) {
	if err := r.authorize(ctx); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	existing, err := r.store.GetMetadata(ctx, in.TokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: token %s", domain.ErrNotFound, in.TokenID)
	}

	hash, err := r.contentHash(in)
	if err != nil {
		return nil, err
	}

	sequence := r.sequencer.Next()
	if sequence < existing.CreatedAt {
		// A sequencer behind the stored marker would break updated_at >= created_at
		sequence = existing.CreatedAt
	}

	err = r.store.UpdateMetadata(ctx, store.UpdateMetadataInput{
		TokenID:     in.TokenID,
		Name:        in.Name,
		Description: in.Description,
		ImageURI:    in.ImageURI,
		Attributes:  in.Attributes,
		ContentHash: hash,
		Sequence:    sequence,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: token %s", domain.ErrNotFound, in.TokenID)
		}
		return nil, fmt.Errorf("failed to update metadata: %w", err)
	}

	logger.InfoCtx(ctx, "Revised metadata",
		zap.Int64("tokenID", int64(in.TokenID)),
		zap.Uint64("createdAt", existing.CreatedAt),
		zap.Uint64("sequence", sequence),
		zap.String("contentHash", hash))

	return r.newEvent(domain.EventTypeMetadataRevised, in.TokenID, sequence, hash, ""), nil
}

// Get returns the record of a token id
func (r *registry) Get(ctx context.Context, tokenID domain.TokenID) (*domain.MetadataRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, err := r.get(ctx, tokenID)
	observe(operationGet, err)
	return record, err
}

func (r *registry) get(ctx context.Context, tokenID domain.TokenID) (*domain.MetadataRecord, error) {
	if err := domain.ValidateTokenID(tokenID); err != nil {
		return nil, err
	}

	metadata, err := r.store.GetMetadata(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get metadata: %w", err)
	}
	if metadata == nil {
		return nil, nil
	}

	return metadata.ToDomain(), nil
}

// SetTokenURI inserts or overwrites the token URI of a token id
func (r *registry) SetTokenURI(ctx context.Context, tokenID domain.TokenID, uri string) error {
	r.mu.Lock()
	event, err := r.setTokenURI(ctx, tokenID, uri)
	r.mu.Unlock()

	observe(operationSetTokenURI, err)
	if err != nil {
		return err
	}

	r.publish(ctx, event)
	return nil
}

func (r *registry) setTokenURI(ctx context.Context, tokenID domain.TokenID, uri string) (*domain.MetadataEvent, error) {
	if err := r.authorize(ctx); err != nil {
		return nil, err
	}
	if err := domain.ValidateTokenID(tokenID); err != nil {
		return nil, err
	}
	if err := domain.ValidateURI(uri); err != nil {
		return nil, err
	}

	if err := r.store.UpsertTokenURI(ctx, tokenID, uri); err != nil {
		return nil, fmt.Errorf("failed to set token uri: %w", err)
	}

	logger.InfoCtx(ctx, "Set token URI",
		zap.Int64("tokenID", int64(tokenID)),
		zap.String("uri", uri))

	return r.newEvent(domain.EventTypeTokenURISet, tokenID, 0, "", uri), nil
}

// GetTokenURI returns the token URI of a token id
func (r *registry) GetTokenURI(ctx context.Context, tokenID domain.TokenID) (*domain.TokenURI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tokenURI, err := r.getTokenURI(ctx, tokenID)
	observe(operationGetTokenURI, err)
	return tokenURI, err
}

func (r *registry) getTokenURI(ctx context.Context, tokenID domain.TokenID) (*domain.TokenURI, error) {
	if err := domain.ValidateTokenID(tokenID); err != nil {
		return nil, err
	}

	tokenURI, err := r.store.GetTokenURI(ctx, tokenID)
	if err != nil {
		return nil, fmt.Errorf("failed to get token uri: %w", err)
	}
	if tokenURI == nil {
		return nil, nil
	}

	return tokenURI.ToDomain(), nil
}

// BulkRegister registers the inputs in order, stopping at the first failure
func (r *registry) BulkRegister(ctx context.Context, inputs []domain.MetadataInput) error {
	r.mu.Lock()
	events, err := r.bulkRegister(ctx, inputs)
	r.mu.Unlock()

	observe(operationBulkRegister, err)
	bulkRecordsTotal.Add(float64(len(events)))

	// Records inserted before a failure stay registered, so their events are published either way
	for _, event := range events {
		r.publish(ctx, event)
	}

	return err
}

func (r *registry) bulkRegister(ctx context.Context, inputs []domain.MetadataInput) ([]*domain.MetadataEvent, error) {
	if err := r.authorize(ctx); err != nil {
		return nil, err
	}
	if len(inputs) > domain.MAX_BULK_RECORDS {
		return nil, fmt.Errorf("%w: %d records, maximum %d", domain.ErrBatchTooLarge, len(inputs), domain.MAX_BULK_RECORDS)
	}

	var (
		acc    error
		events = make([]*domain.MetadataEvent, 0, len(inputs))
	)
	for i := 0; i < len(inputs) && acc == nil; i++ {
		var event *domain.MetadataEvent
		event, acc = r.register(ctx, inputs[i])
		if event != nil {
			events = append(events, event)
		}
	}

	if acc != nil {
		logger.WarnCtx(ctx, "Bulk registration stopped",
			zap.Int("failedIndex", len(events)),
			zap.Int("skipped", len(inputs)-len(events)-1),
			zap.Error(acc))
	} else {
		logger.InfoCtx(ctx, "Bulk registration completed", zap.Int("count", len(events)))
	}

	return events, acc
}

// List returns up to limit records with a token id greater than after
func (r *registry) List(ctx context.Context, after domain.TokenID, limit int) ([]domain.MetadataRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.list(ctx, after, limit)
	observe(operationList, err)
	return records, err
}

func (r *registry) list(ctx context.Context, after domain.TokenID, limit int) ([]domain.MetadataRecord, error) {
	if after < 0 {
		return nil, fmt.Errorf("%w: cursor %d", domain.ErrInvalidTokenID, after)
	}
	limit = NormalizeListLimit(limit)

	rows, err := r.store.ListMetadata(ctx, after, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list metadata: %w", err)
	}

	records := make([]domain.MetadataRecord, 0, len(rows))
	for i := range rows {
		records = append(records, *rows[i].ToDomain())
	}
	return records, nil
}

// NormalizeListLimit applies the default page size and caps the limit at MAX_LIST_LIMIT
func NormalizeListLimit(limit int) int {
	if limit <= 0 {
		return domain.DEFAULT_LIST_LIMIT
	}
	if limit > domain.MAX_LIST_LIMIT {
		return domain.MAX_LIST_LIMIT
	}
	return limit
}

// authorize checks that the caller in ctx is the owner
func (r *registry) authorize(ctx context.Context) error {
	if !identity.IsOwner(ctx, r.identity) {
		caller, _ := r.identity.Caller(ctx)
		logger.WarnCtx(ctx, "Rejected mutation from non-owner", zap.String("caller", caller.String()))
		return domain.ErrNotOwner
	}
	return nil
}

// contentDocument is the canonical shape hashed into the content hash
type contentDocument struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ImageURI    string             `json:"image_uri"`
	Attributes  []domain.Attribute `json:"attributes"`
}

// contentHash returns the hex SHA-256 of the JCS-canonical JSON of the content fields.
// Equal content hashes equally regardless of token id.
func (r *registry) contentHash(in domain.MetadataInput) (string, error) {
	attributes := in.Attributes
	if attributes == nil {
		attributes = []domain.Attribute{}
	}

	data, err := r.json.Marshal(contentDocument{
		Name:        in.Name,
		Description: in.Description,
		ImageURI:    in.ImageURI,
		Attributes:  attributes,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal metadata content: %w", err)
	}

	canonical, err := r.jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize metadata content: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func (r *registry) newEvent(eventType domain.EventType, tokenID domain.TokenID, sequence uint64, hash, uri string) *domain.MetadataEvent {
	now := r.clock.Now()
	return &domain.MetadataEvent{
		ID:          ulid.MustNewDefault(now).String(),
		EventType:   eventType,
		TokenID:     tokenID,
		Sequence:    sequence,
		ContentHash: hash,
		URI:         uri,
		Timestamp:   now.UTC(),
	}
}

// publish sends a change event. Failures are logged only; the mutation has already been applied.
func (r *registry) publish(ctx context.Context, event *domain.MetadataEvent) {
	if event == nil {
		return
	}

	publishCtx := context.WithoutCancel(ctx)
	if r.config.PublishTimeout > 0 {
		var cancel context.CancelFunc
		publishCtx, cancel = context.WithTimeout(publishCtx, r.config.PublishTimeout)
		defer cancel()
	}

	if err := r.publisher.PublishEvent(publishCtx, event); err != nil {
		eventPublishFailuresTotal.Inc()
		logger.ErrorCtx(ctx, fmt.Errorf("failed to publish event: %w", err),
			zap.String("eventID", event.ID),
			zap.String("eventType", string(event.EventType)),
			zap.Int64("tokenID", int64(event.TokenID)))
	}
}
