package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-metadata-registry/internal/api/shared/constants"
	"github.com/feral-file/ff-metadata-registry/internal/api/shared/dto"
	"github.com/feral-file/ff-metadata-registry/internal/domain"
	"github.com/feral-file/ff-metadata-registry/internal/metadata"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// GetMetadata retrieves the metadata record of a token
	// GET /api/v1/metadata/:token_id
	GetMetadata(c *gin.Context)

	// ListMetadata retrieves registered metadata ordered by token id
	// GET /api/v1/metadata?after=<token_id>&limit=<limit>
	ListMetadata(c *gin.Context)

	// RegisterMetadata registers a new metadata record (requires authentication, owner only)
	// POST /api/v1/metadata
	RegisterMetadata(c *gin.Context)

	// ReviseMetadata revises an existing metadata record (requires authentication, owner only)
	// PUT /api/v1/metadata/:token_id
	ReviseMetadata(c *gin.Context)

	// BulkRegisterMetadata registers up to 50 records, stopping at the first failure (requires authentication, owner only)
	// POST /api/v1/metadata/bulk
	BulkRegisterMetadata(c *gin.Context)

	// GetTokenURI retrieves the token URI of a token
	// GET /api/v1/token-uris/:token_id
	GetTokenURI(c *gin.Context)

	// SetTokenURI sets the token URI of a token (requires authentication, owner only)
	// PUT /api/v1/token-uris/:token_id
	SetTokenURI(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	registry metadata.Registry
}

// NewHandler creates a new REST API handler backed by the registry
func NewHandler(registry metadata.Registry) Handler {
	return &handler{
		registry: registry,
	}
}

// GetMetadata retrieves the metadata record of a token.
// The content hash is returned as a strong ETag and If-None-Match is honored.
func (h *handler) GetMetadata(c *gin.Context) {
	tokenID, ok := parseTokenIDParam(c)
	if !ok {
		return
	}

	record, err := h.registry.Get(c.Request.Context(), tokenID)
	if err != nil {
		respondRegistryError(c, err, "get")
		return
	}

	if record == nil {
		respondNotFound(c, "Metadata not found")
		return
	}

	etag := formatETag(record.ContentHash)
	c.Header(constants.HEADER_ETAG, etag)
	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	c.JSON(http.StatusOK, dto.MapMetadataToDTO(record))
}

// ListMetadata retrieves registered metadata ordered by token id
func (h *handler) ListMetadata(c *gin.Context) {
	queryParams, err := ParseListMetadataQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	records, err := h.registry.List(c.Request.Context(), queryParams.Cursor(), queryParams.Limit)
	if err != nil {
		respondRegistryError(c, err, "list")
		return
	}

	c.JSON(http.StatusOK, dto.MapMetadataListToDTO(records, queryParams.Limit))
}

// RegisterMetadata registers a new metadata record
func (h *handler) RegisterMetadata(c *gin.Context) {
	var req dto.RegisterMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	input := req.ToInput()
	if err := h.registry.Register(c.Request.Context(), input); err != nil {
		respondRegistryError(c, err, "register")
		return
	}

	h.respondRecord(c, http.StatusCreated, input.TokenID)
}

// ReviseMetadata revises an existing metadata record
func (h *handler) ReviseMetadata(c *gin.Context) {
	tokenID, ok := parseTokenIDParam(c)
	if !ok {
		return
	}

	var req dto.ReviseMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := h.registry.Revise(c.Request.Context(), req.ToInput(tokenID)); err != nil {
		respondRegistryError(c, err, "revise")
		return
	}

	h.respondRecord(c, http.StatusOK, tokenID)
}

// BulkRegisterMetadata registers records in order, stopping at the first failure.
// Records registered before the failure stay registered; the response carries the failing record's error only.
func (h *handler) BulkRegisterMetadata(c *gin.Context) {
	var req dto.BulkRegisterMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := h.registry.BulkRegister(c.Request.Context(), req.ToInputs()); err != nil {
		respondRegistryError(c, err, "bulk_register")
		return
	}

	c.JSON(http.StatusOK, dto.BulkRegisterResponse{Registered: len(req.Records)})
}

// GetTokenURI retrieves the token URI of a token
func (h *handler) GetTokenURI(c *gin.Context) {
	tokenID, ok := parseTokenIDParam(c)
	if !ok {
		return
	}

	tokenURI, err := h.registry.GetTokenURI(c.Request.Context(), tokenID)
	if err != nil {
		respondRegistryError(c, err, "get_token_uri")
		return
	}

	if tokenURI == nil {
		respondNotFound(c, "Token URI not found")
		return
	}

	c.JSON(http.StatusOK, dto.TokenURIResponse{TokenID: tokenURI.TokenID, URI: tokenURI.URI})
}

// SetTokenURI sets the token URI of a token
func (h *handler) SetTokenURI(c *gin.Context) {
	tokenID, ok := parseTokenIDParam(c)
	if !ok {
		return
	}

	var req dto.SetTokenURIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := h.registry.SetTokenURI(c.Request.Context(), tokenID, req.URI); err != nil {
		respondRegistryError(c, err, "set_token_uri")
		return
	}

	c.JSON(http.StatusOK, dto.TokenURIResponse{TokenID: tokenID, URI: req.URI})
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": constants.SERVICE_NAME,
	})
}

// respondRecord reads back a record after a successful mutation and writes it with its ETag
func (h *handler) respondRecord(c *gin.Context, status int, tokenID domain.TokenID) {
	record, err := h.registry.Get(c.Request.Context(), tokenID)
	if err != nil {
		respondRegistryError(c, err, "get")
		return
	}
	if record == nil {
		respondNotFound(c, "Metadata not found")
		return
	}

	c.Header(constants.HEADER_ETAG, formatETag(record.ContentHash))
	c.JSON(status, dto.MapMetadataToDTO(record))
}

func formatETag(contentHash string) string {
	return fmt.Sprintf("%q", contentHash)
}

// etagMatches reports whether an If-None-Match header matches etag.
// The header may be "*" or a comma-separated list; comparison is weak, so W/ prefixes are ignored.
func etagMatches(header string, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		if strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
