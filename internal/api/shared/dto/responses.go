package dto

import "github.com/feral-file/ff-metadata-registry/internal/domain"

// AttributeResponse represents one trait/value pair
type AttributeResponse struct {
	Trait string `json:"trait_type"`
	Value string `json:"value"`
}

// MetadataResponse represents a metadata record
type MetadataResponse struct {
	TokenID     domain.TokenID      `json:"token_id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	ImageURI    string              `json:"image_uri"`
	Attributes  []AttributeResponse `json:"attributes"`
	ContentHash string              `json:"content_hash"`
	CreatedAt   uint64              `json:"created_at"`
	UpdatedAt   uint64              `json:"updated_at"`
}

// MapMetadataToDTO maps a domain record to its response form
func MapMetadataToDTO(record *domain.MetadataRecord) *MetadataResponse {
	if record == nil {
		return nil
	}

	attributes := make([]AttributeResponse, len(record.Attributes))
	for i, a := range record.Attributes {
		attributes[i] = AttributeResponse{Trait: a.Trait, Value: a.Value}
	}

	return &MetadataResponse{
		TokenID:     record.TokenID,
		Name:        record.Name,
		Description: record.Description,
		ImageURI:    record.ImageURI,
		Attributes:  attributes,
		ContentHash: record.ContentHash,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
}

// MetadataListResponse represents a page of metadata records
type MetadataListResponse struct {
	Items []MetadataResponse `json:"items"`
	// NextAfter is the cursor for the next page, absent on the last page
	NextAfter *domain.TokenID `json:"next_after,omitempty"`
}

// MapMetadataListToDTO maps a page of records. A full page carries the last token id as the next cursor.
func MapMetadataListToDTO(records []domain.MetadataRecord, limit int) *MetadataListResponse {
	resp := &MetadataListResponse{
		Items: make([]MetadataResponse, 0, len(records)),
	}
	for i := range records {
		resp.Items = append(resp.Items, *MapMetadataToDTO(&records[i]))
	}

	if len(records) > 0 && len(records) == limit {
		next := records[len(records)-1].TokenID
		resp.NextAfter = &next
	}

	return resp
}

// TokenURIResponse represents a token URI
type TokenURIResponse struct {
	TokenID domain.TokenID `json:"token_id"`
	URI     string         `json:"uri"`
}

// BulkRegisterResponse represents the result of a successful bulk registration
type BulkRegisterResponse struct {
	Registered int `json:"registered"`
}
