package domain

import (
	"fmt"
	"unicode/utf8"
)

// ValidateTokenID checks that the token id is positive
func ValidateTokenID(id TokenID) error {
	if id <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTokenID, id)
	}
	return nil
}

// ValidateURI checks that a uri holds 1..MAX_URI_LENGTH code points
func ValidateURI(s string) error {
	if !withinLength(s, MAX_URI_LENGTH) {
		return fmt.Errorf("%w: length %d", ErrInvalidURI, utf8.RuneCountInString(s))
	}
	return nil
}

// ValidateName checks that a name holds 1..MAX_NAME_LENGTH code points
func ValidateName(s string) error {
	if !withinLength(s, MAX_NAME_LENGTH) {
		return fmt.Errorf("%w: name length %d", ErrInvalidStringLength, utf8.RuneCountInString(s))
	}
	return nil
}

// ValidateDescription checks that a description holds 1..MAX_DESCRIPTION_LENGTH code points
func ValidateDescription(s string) error {
	if !withinLength(s, MAX_DESCRIPTION_LENGTH) {
		return fmt.Errorf("%w: description length %d", ErrInvalidStringLength, utf8.RuneCountInString(s))
	}
	return nil
}

// ValidateAttributes checks the attribute count and the length of every trait and value
func ValidateAttributes(attrs []Attribute) error {
	if len(attrs) > MAX_ATTRIBUTES {
		return fmt.Errorf("%w: %d entries, maximum %d", ErrInvalidAttributes, len(attrs), MAX_ATTRIBUTES)
	}

	for i, attr := range attrs {
		if !withinLength(attr.Trait, MAX_TRAIT_LENGTH) {
			return fmt.Errorf("%w: trait of entry %d", ErrInvalidAttributes, i)
		}
		if !withinLength(attr.Value, MAX_TRAIT_LENGTH) {
			return fmt.Errorf("%w: value of entry %d", ErrInvalidAttributes, i)
		}
	}

	return nil
}

// Validate runs every field check in order: token id, image uri, name, description, attributes.
// The first failing check is returned.
func (in *MetadataInput) Validate() error {
	if err := ValidateTokenID(in.TokenID); err != nil {
		return err
	}
	if err := ValidateURI(in.ImageURI); err != nil {
		return err
	}
	if err := ValidateName(in.Name); err != nil {
		return err
	}
	if err := ValidateDescription(in.Description); err != nil {
		return err
	}
	return ValidateAttributes(in.Attributes)
}

func withinLength(s string, limit int) bool {
	n := utf8.RuneCountInString(s)
	return n >= 1 && n <= limit
}
