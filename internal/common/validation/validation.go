package validation

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	MaxNameLength        = 64
	MaxDescriptionLength = 1000
	MaxTitleLength       = 200
	MaxSlugLength        = 100

	MinAddressLength = 3
	MaxAddressLength = 128
)

// Wallet addresses arrive from several chains (hex 0x…, TON friendly base64url,
// raw workchain:hash), so the check is charset and length, not chain-specific.
var addressRegex = regexp.MustCompile(`^[A-Za-z0-9_\-:+/=]+$`)

var slugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// ValidateAddress checks a wallet address parameter.
func ValidateAddress(address string) error {
	if address == "" {
		return fmt.Errorf("address cannot be empty")
	}

	if len(address) < MinAddressLength || len(address) > MaxAddressLength {
		return fmt.Errorf("address must be between %d and %d characters", MinAddressLength, MaxAddressLength)
	}

	if !addressRegex.MatchString(address) {
		return fmt.Errorf("address contains invalid characters")
	}

	return nil
}

// ValidateName checks a user display name.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if len(name) > MaxNameLength {
		return fmt.Errorf("name cannot exceed %d characters", MaxNameLength)
	}

	return nil
}

// ValidateSlug checks a game or event slug.
func ValidateSlug(s string) error {
	if s == "" {
		return fmt.Errorf("slug cannot be empty")
	}

	if len(s) > MaxSlugLength {
		return fmt.Errorf("slug cannot exceed %d characters", MaxSlugLength)
	}

	if !slugRegex.MatchString(s) {
		return fmt.Errorf("slug must be lowercase alphanumeric with dashes")
	}

	return nil
}

// ValidateTitle checks an event title.
func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}

	if len(title) > MaxTitleLength {
		return fmt.Errorf("title cannot exceed %d characters", MaxTitleLength)
	}

	return nil
}
