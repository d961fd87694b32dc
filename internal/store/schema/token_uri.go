package schema

import "github.com/feral-file/ff-metadata-registry/internal/domain"

// TokenURI represents the token_uris table - the canonical locator per token id.
// Its lifecycle is independent from token_metadata.
type TokenURI struct {
	TokenID domain.TokenID `gorm:"column:token_id;primaryKey;autoIncrement:false"`
	URI     string         `gorm:"column:uri;not null;type:text"`
}

// TableName specifies the table name for the TokenURI model
func (TokenURI) TableName() string {
	return "token_uris"
}

// ToDomain converts the row into a domain value
func (u *TokenURI) ToDomain() *domain.TokenURI {
	return &domain.TokenURI{
		TokenID: u.TokenID,
		URI:     u.URI,
	}
}
