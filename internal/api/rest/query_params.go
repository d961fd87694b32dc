package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-metadata-registry/internal/domain"
	"github.com/feral-file/ff-metadata-registry/internal/metadata"
)

// ListMetadataQueryParams holds query parameters for GET /metadata
type ListMetadataQueryParams struct {
	// After is the exclusive token id cursor, zero starts from the beginning
	After int64 `form:"after,default=0"`
	Limit int   `form:"limit,default=50"`
}

// ParseListMetadataQuery parses query parameters for GET /metadata
func ParseListMetadataQuery(c *gin.Context) (*ListMetadataQueryParams, error) {
	var params ListMetadataQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limits
	params.Limit = metadata.NormalizeListLimit(params.Limit)

	return &params, nil
}

// Cursor returns the after parameter as a token id
func (p *ListMetadataQueryParams) Cursor() domain.TokenID {
	return domain.TokenID(p.After)
}

// parseTokenIDParam parses the :token_id path parameter.
// Non-numeric values are a bad request; positivity is checked by the registry.
func parseTokenIDParam(c *gin.Context) (domain.TokenID, bool) {
	tokenID, err := domain.ParseTokenID(c.Param("token_id"))
	if err != nil {
		respondBadRequest(c, "Invalid token id", err.Error())
		return 0, false
	}
	return tokenID, true
}
