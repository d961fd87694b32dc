package domain

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func validInput() MetadataInput {
	return MetadataInput{
		TokenID:     1,
		Name:        "Untitled #1",
		Description: "A generative study in blue",
		ImageURI:    "ipfs://bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi",
		Attributes: []Attribute{
			{Trait: "palette", Value: "blue"},
		},
	}
}

func attrs(n int) []Attribute {
	out := make([]Attribute, n)
	for i := range out {
		out[i] = Attribute{Trait: "trait", Value: "value"}
	}
	return out
}

func TestValidateTokenID(t *testing.T) {
	tests := []struct {
		name     string
		id       TokenID
		expected error
	}{
		{name: "positive", id: 1, expected: nil},
		{name: "large", id: 1 << 62, expected: nil},
		{name: "zero", id: 0, expected: ErrInvalidTokenID},
		{name: "negative", id: -7, expected: ErrInvalidTokenID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTokenID(tt.id)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestValidateStringBounds(t *testing.T) {
	tests := []struct {
		name     string
		validate func(string) error
		input    string
		expected error
	}{
		{name: "name empty", validate: ValidateName, input: "", expected: ErrInvalidStringLength},
		{name: "name 1", validate: ValidateName, input: "a", expected: nil},
		{name: "name 256", validate: ValidateName, input: strings.Repeat("a", 256), expected: nil},
		{name: "name 257", validate: ValidateName, input: strings.Repeat("a", 257), expected: ErrInvalidStringLength},
		{name: "name 256 multibyte", validate: ValidateName, input: strings.Repeat("é", 256), expected: nil},
		{name: "description empty", validate: ValidateDescription, input: "", expected: ErrInvalidStringLength},
		{name: "description 1024", validate: ValidateDescription, input: strings.Repeat("d", 1024), expected: nil},
		{name: "description 1025", validate: ValidateDescription, input: strings.Repeat("d", 1025), expected: ErrInvalidStringLength},
		{name: "uri empty", validate: ValidateURI, input: "", expected: ErrInvalidURI},
		{name: "uri 256", validate: ValidateURI, input: strings.Repeat("u", 256), expected: nil},
		{name: "uri 257", validate: ValidateURI, input: strings.Repeat("u", 257), expected: ErrInvalidURI},
		{name: "uri 256 emoji", validate: ValidateURI, input: strings.Repeat("🖼", 256), expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.validate(tt.input)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestValidateAttributes(t *testing.T) {
	tests := []struct {
		name     string
		attrs    []Attribute
		expected error
	}{
		{name: "nil list", attrs: nil, expected: nil},
		{name: "20 entries", attrs: attrs(20), expected: nil},
		{name: "21 entries", attrs: attrs(21), expected: ErrInvalidAttributes},
		{name: "empty trait", attrs: []Attribute{{Trait: "", Value: "v"}}, expected: ErrInvalidAttributes},
		{name: "empty value", attrs: []Attribute{{Trait: "t", Value: ""}}, expected: ErrInvalidAttributes},
		{name: "64 char trait", attrs: []Attribute{{Trait: strings.Repeat("t", 64), Value: "v"}}, expected: nil},
		{name: "65 char value", attrs: []Attribute{{Trait: "t", Value: strings.Repeat("v", 65)}}, expected: ErrInvalidAttributes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAttributes(tt.attrs)
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestMetadataInput_Validate_Order(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*MetadataInput)
		expected error
	}{
		{
			name:     "valid input",
			mutate:   func(in *MetadataInput) {},
			expected: nil,
		},
		{
			name: "token id checked before everything",
			mutate: func(in *MetadataInput) {
				in.TokenID = 0
				in.ImageURI = ""
				in.Name = ""
			},
			expected: ErrInvalidTokenID,
		},
		{
			name: "image uri checked before name",
			mutate: func(in *MetadataInput) {
				in.ImageURI = ""
				in.Name = ""
			},
			expected: ErrInvalidURI,
		},
		{
			name: "name checked before attributes",
			mutate: func(in *MetadataInput) {
				in.Name = ""
				in.Attributes = attrs(21)
			},
			expected: ErrInvalidStringLength,
		},
		{
			name: "description checked before attributes",
			mutate: func(in *MetadataInput) {
				in.Description = strings.Repeat("d", 1025)
				in.Attributes = attrs(21)
			},
			expected: ErrInvalidStringLength,
		},
		{
			name: "attributes checked last",
			mutate: func(in *MetadataInput) {
				in.Attributes = attrs(21)
			},
			expected: ErrInvalidAttributes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			err := in.Validate()
			if tt.expected == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expected)
			}
		})
	}
}

func TestValidateName_Property(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		s := rapid.String().Draw(r, "name")
		n := utf8.RuneCountInString(s)
		err := ValidateName(s)
		if n >= 1 && n <= MAX_NAME_LENGTH {
			if err != nil {
				r.Fatalf("expected %q (%d code points) to be valid: %v", s, n, err)
			}
		} else if !errors.Is(err, ErrInvalidStringLength) {
			r.Fatalf("expected ErrInvalidStringLength for %d code points, got %v", n, err)
		}
	})
}

func TestValidateAttributes_Property(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		count := rapid.IntRange(0, MAX_ATTRIBUTES+5).Draw(r, "count")
		list := make([]Attribute, count)
		for i := range list {
			list[i] = Attribute{
				Trait: rapid.StringN(1, MAX_TRAIT_LENGTH, -1).Draw(r, "trait"),
				Value: rapid.StringN(1, MAX_TRAIT_LENGTH, -1).Draw(r, "value"),
			}
		}
		err := ValidateAttributes(list)
		if count <= MAX_ATTRIBUTES && err != nil {
			r.Fatalf("expected %d well-formed attributes to be valid: %v", count, err)
		}
		if count > MAX_ATTRIBUTES && !errors.Is(err, ErrInvalidAttributes) {
			r.Fatalf("expected ErrInvalidAttributes for %d attributes, got %v", count, err)
		}
	})
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "lowercase address", input: "0x396343362be2a4da1ce0c1c210945346fb82aa49", ok: true},
		{name: "uppercase address", input: "0x396343362BE2A4DA1CE0C1C210945346FB82AA49", ok: true},
		{name: "without prefix", input: "396343362be2a4da1ce0c1c210945346fb82aa49", ok: true},
		{name: "too short", input: "0x1234", ok: false},
		{name: "tezos address", input: "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, ok := NormalizeAddress(tt.input)
			assert.Equal(t, tt.ok, ok)
			if !tt.ok {
				assert.Empty(t, addr)
				return
			}
			assert.True(t, strings.EqualFold("0x396343362be2a4da1ce0c1c210945346fb82aa49", addr.String()))

			// Normalizing twice yields the same checksummed form
			again, ok := NormalizeAddress(addr.String())
			assert.True(t, ok)
			assert.Equal(t, addr, again)
		})
	}
}

func TestAddress_IsZeroAddress(t *testing.T) {
	assert.True(t, Address(ETHEREUM_ZERO_ADDRESS).IsZeroAddress())
	assert.False(t, Address("0x396343362be2A4dA1cE0C1C210945346fb82Aa49").IsZeroAddress())
}

func TestParseTokenID(t *testing.T) {
	id, err := ParseTokenID("42")
	assert.NoError(t, err)
	assert.Equal(t, TokenID(42), id)
	assert.Equal(t, "42", id.String())

	_, err = ParseTokenID("abc")
	assert.Error(t, err)
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(ValidateTokenID(0)))
	assert.True(t, IsValidationError(ErrBatchTooLarge))
	assert.False(t, IsValidationError(ErrNotOwner))
	assert.False(t, IsValidationError(ErrAlreadyExists))
	assert.False(t, IsValidationError(nil))
}
