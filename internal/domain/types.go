package domain

import (
	"strconv"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// TokenID is the key of a metadata record. Only positive values are valid.
type TokenID int64

// String returns the decimal form of the token id
func (t TokenID) String() string {
	return strconv.FormatInt(int64(t), 10)
}

// ParseTokenID parses a decimal token id. It does not check positivity, see ValidateTokenID.
func ParseTokenID(s string) (TokenID, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return TokenID(id), nil
}

// Attribute is a single trait/value pair of a metadata record
type Attribute struct {
	Trait string `json:"trait_type"`
	Value string `json:"value"`
}

// MetadataInput carries the caller-supplied fields for register and revise
type MetadataInput struct {
	TokenID     TokenID     `json:"token_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ImageURI    string      `json:"image_uri"`
	Attributes  []Attribute `json:"attributes"`
}

// MetadataRecord is a stored metadata record.
// CreatedAt and UpdatedAt are sequence markers, not wall-clock times.
type MetadataRecord struct {
	TokenID     TokenID     `json:"token_id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	ImageURI    string      `json:"image_uri"`
	Attributes  []Attribute `json:"attributes"`
	ContentHash string      `json:"content_hash"`
	CreatedAt   uint64      `json:"created_at"`
	UpdatedAt   uint64      `json:"updated_at"`
}

// TokenURI is the canonical resource locator stored for a token id
type TokenURI struct {
	TokenID TokenID `json:"token_id"`
	URI     string  `json:"uri"`
}

// Address is a checksummed EVM address identifying a caller
type Address string

// String returns the address as a string
func (a Address) String() string {
	return string(a)
}

// NormalizeAddress validates a hex address and returns its checksummed form
func NormalizeAddress(s string) (Address, bool) {
	if !common.IsHexAddress(s) {
		return "", false
	}
	return Address(common.HexToAddress(s).Hex()), true
}

// IsZeroAddress reports whether the address is the zero address
func (a Address) IsZeroAddress() bool {
	return common.HexToAddress(string(a)) == (common.Address{})
}

// EventType represents the type of metadata change event
type EventType string

const (
	EventTypeMetadataRegistered EventType = "metadata.registered"
	EventTypeMetadataRevised    EventType = "metadata.revised"
	EventTypeTokenURISet        EventType = "token_uri.set"
)

// MetadataEvent is published after every successful mutation
type MetadataEvent struct {
	ID          string    `json:"id"`           // ULID
	EventType   EventType `json:"event_type"`   // metadata.registered, metadata.revised, token_uri.set
	TokenID     TokenID   `json:"token_id"`     // affected token id
	Sequence    uint64    `json:"sequence"`     // sequence marker at the time of the change (zero for token_uri.set)
	ContentHash string    `json:"content_hash"` // hash of the metadata content (empty for token_uri.set)
	URI         string    `json:"uri,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
