package schema

import (
	"gorm.io/datatypes"

	"github.com/feral-file/ff-metadata-registry/internal/domain"
)

// TokenMetadata represents the token_metadata table - one metadata record per token id
type TokenMetadata struct {
	// TokenID is the positive token identifier (primary key, not generated)
	TokenID domain.TokenID `gorm:"column:token_id;primaryKey;autoIncrement:false"`
	// Name is the display name of the token
	Name string `gorm:"column:name;not null;type:text"`
	// Description is the long-form description of the token
	Description string `gorm:"column:description;not null;type:text"`
	// ImageURI references the token's image
	ImageURI string `gorm:"column:image_uri;not null;type:text"`
	// Attributes are the ordered trait/value pairs
	Attributes datatypes.JSONSlice[domain.Attribute] `gorm:"column:attributes;not null;type:jsonb"`
	// ContentHash is the SHA-256 of the canonical JSON of the content fields
	ContentHash string `gorm:"column:content_hash;not null;type:text"`
	// CreatedAt is the sequence marker of the registration, never modified afterwards
	CreatedAt uint64 `gorm:"column:created_at;not null;type:bigint;autoCreateTime:false"`
	// UpdatedAt is the sequence marker of the latest registration or revision
	UpdatedAt uint64 `gorm:"column:updated_at;not null;type:bigint;autoUpdateTime:false;index:idx_token_metadata_updated_at"`
}

// TableName specifies the table name for the TokenMetadata model
func (TokenMetadata) TableName() string {
	return "token_metadata"
}

// ToDomain converts the row into a domain record
func (m *TokenMetadata) ToDomain() *domain.MetadataRecord {
	attributes := make([]domain.Attribute, len(m.Attributes))
	copy(attributes, m.Attributes)

	return &domain.MetadataRecord{
		TokenID:     m.TokenID,
		Name:        m.Name,
		Description: m.Description,
		ImageURI:    m.ImageURI,
		Attributes:  attributes,
		ContentHash: m.ContentHash,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
