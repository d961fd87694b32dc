package dto

import "github.com/feral-file/ff-metadata-registry/internal/domain"

// AttributeRequest represents one trait/value pair in a request body
type AttributeRequest struct {
	Trait string `json:"trait_type"`
	Value string `json:"value"`
}

// MetadataContentRequest holds the content fields shared by register and revise
type MetadataContentRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ImageURI    string             `json:"image_uri"`
	Attributes  []AttributeRequest `json:"attributes"`
}

func (r *MetadataContentRequest) toInput(tokenID domain.TokenID) domain.MetadataInput {
	var attributes []domain.Attribute
	if len(r.Attributes) > 0 {
		attributes = make([]domain.Attribute, len(r.Attributes))
		for i, a := range r.Attributes {
			attributes[i] = domain.Attribute{Trait: a.Trait, Value: a.Value}
		}
	}

	return domain.MetadataInput{
		TokenID:     tokenID,
		Name:        r.Name,
		Description: r.Description,
		ImageURI:    r.ImageURI,
		Attributes:  attributes,
	}
}

// RegisterMetadataRequest represents the request body for registering metadata
type RegisterMetadataRequest struct {
	TokenID domain.TokenID `json:"token_id"`
	MetadataContentRequest
}

// ToInput converts the request into a registry input.
// Field bounds are enforced by the registry so that errors carry the registry's kinds.
func (r *RegisterMetadataRequest) ToInput() domain.MetadataInput {
	return r.toInput(r.TokenID)
}

// ReviseMetadataRequest represents the request body for revising metadata. The token id comes from the path.
type ReviseMetadataRequest struct {
	MetadataContentRequest
}

// ToInput converts the request into a registry input for the given token id
func (r *ReviseMetadataRequest) ToInput(tokenID domain.TokenID) domain.MetadataInput {
	return r.toInput(tokenID)
}

// BulkRegisterMetadataRequest represents the request body for bulk registration.
// The batch bound is checked by the registry after the owner check.
type BulkRegisterMetadataRequest struct {
	Records []RegisterMetadataRequest `json:"records"`
}

// ToInputs converts the records into registry inputs, preserving order
func (r *BulkRegisterMetadataRequest) ToInputs() []domain.MetadataInput {
	inputs := make([]domain.MetadataInput, len(r.Records))
	for i := range r.Records {
		inputs[i] = r.Records[i].ToInput()
	}
	return inputs
}

// SetTokenURIRequest represents the request body for setting a token URI
type SetTokenURIRequest struct {
	URI string `json:"uri"`
}
