package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feral-file/ff-metadata-registry/internal/domain"
	"github.com/feral-file/ff-metadata-registry/internal/logger"
	"github.com/feral-file/ff-metadata-registry/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and keeps MaxIdleConns within MaxOpenConns
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// GetMetadata retrieves the metadata record of a token
func (s *pgStore) GetMetadata(ctx context.Context, tokenID domain.TokenID) (*schema.TokenMetadata, error) {
	var metadata schema.TokenMetadata
	err := s.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&metadata).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token metadata: %w", err)
	}

	return &metadata, nil
}

// CreateMetadata inserts a new metadata record.
// The primary key guards against concurrent registrations from other processes.
func (s *pgStore) CreateMetadata(ctx context.Context, input CreateMetadataInput) error {
	metadata := schema.TokenMetadata{
		TokenID:     input.TokenID,
		Name:        input.Name,
		Description: input.Description,
		ImageURI:    input.ImageURI,
		Attributes:  toJSONSlice(input.Attributes),
		ContentHash: input.ContentHash,
		CreatedAt:   input.Sequence,
		UpdatedAt:   input.Sequence,
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_id"}},
			DoNothing: true,
		}).
		Create(&metadata)
	if result.Error != nil {
		return fmt.Errorf("failed to create token metadata: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: token %s", domain.ErrAlreadyExists, input.TokenID)
	}

	return nil
}

// UpdateMetadata overwrites the mutable fields of an existing record
func (s *pgStore) UpdateMetadata(ctx context.Context, input UpdateMetadataInput) error {
	result := s.db.WithContext(ctx).
		Model(&schema.TokenMetadata{}).
		Where("token_id = ?", input.TokenID).
		Updates(map[string]interface{}{
			"name":         input.Name,
			"description":  input.Description,
			"image_uri":    input.ImageURI,
			"attributes":   toJSONSlice(input.Attributes),
			"content_hash": input.ContentHash,
			"updated_at":   input.Sequence,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update token metadata: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: token %s", domain.ErrNotFound, input.TokenID)
	}

	return nil
}

// ListMetadata returns metadata records ordered by token id
func (s *pgStore) ListMetadata(ctx context.Context, after domain.TokenID, limit int) ([]schema.TokenMetadata, error) {
	var rows []schema.TokenMetadata
	err := s.db.WithContext(ctx).
		Where("token_id > ?", after).
		Order("token_id ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list token metadata: %w", err)
	}

	return rows, nil
}

// MaxSequence returns the highest updated_at stored
func (s *pgStore) MaxSequence(ctx context.Context) (uint64, error) {
	var maxSequence uint64
	err := s.db.WithContext(ctx).
		Model(&schema.TokenMetadata{}).
		Select("COALESCE(MAX(updated_at), 0)").
		Scan(&maxSequence).Error
	if err != nil {
		return 0, fmt.Errorf("failed to get max sequence: %w", err)
	}

	logger.DebugCtx(ctx, "Loaded max sequence", zap.Uint64("sequence", maxSequence))

	return maxSequence, nil
}

// GetTokenURI retrieves the token URI of a token
func (s *pgStore) GetTokenURI(ctx context.Context, tokenID domain.TokenID) (*schema.TokenURI, error) {
	var tokenURI schema.TokenURI
	err := s.db.WithContext(ctx).Where("token_id = ?", tokenID).First(&tokenURI).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get token uri: %w", err)
	}

	return &tokenURI, nil
}

// UpsertTokenURI inserts or overwrites the token URI of a token
func (s *pgStore) UpsertTokenURI(ctx context.Context, tokenID domain.TokenID, uri string) error {
	tokenURI := schema.TokenURI{
		TokenID: tokenID,
		URI:     uri,
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "token_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"uri"}),
		}).
		Create(&tokenURI).Error
	if err != nil {
		return fmt.Errorf("failed to upsert token uri: %w", err)
	}

	return nil
}

// toJSONSlice copies attributes into a jsonb-backed slice, never nil so the column holds []
func toJSONSlice(attributes []domain.Attribute) datatypes.JSONSlice[domain.Attribute] {
	out := make(datatypes.JSONSlice[domain.Attribute], len(attributes))
	copy(out, attributes)
	return out
}
