package errors

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// ValidateOpacity validates an opacity value.
// Opacity must be a finite number in the closed interval [0, 1].
// Zero is legal and means fully transparent.
func ValidateOpacity(alpha float64) error {
	if math.IsNaN(alpha) {
		return New(ErrCodeInvalidOpacity, "opacity must be a number, got NaN")
	}
	if alpha < 0 || alpha > 1 {
		return New(ErrCodeInvalidOpacity, "opacity must be between 0 and 1, got %v", alpha)
	}
	return nil
}

// ValidateAngle validates a rotation angle in degrees.
// Any finite value is accepted; NaN and infinities are rejected.
func ValidateAngle(degrees float64) error {
	if math.IsNaN(degrees) || math.IsInf(degrees, 0) {
		return New(ErrCodeInvalidAngle, "rotation angle must be a finite number, got %v", degrees)
	}
	return nil
}

// ValidateTaxonName validates a taxonomic name before it is sent to the
// image service. The rules are intentionally conservative:
//   - No empty or whitespace-only names
//   - No control characters
//   - Maximum length of 256 characters
//
// Scientific names are free-form otherwise; the service decides what matches.
func ValidateTaxonName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "taxon name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidName, "taxon name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "taxon name contains invalid control characters")
		}
	}

	return nil
}

// ValidateImageUUID validates a PhyloPic image identifier.
// Identifiers are canonical RFC 4122 UUID strings.
func ValidateImageUUID(s string) error {
	if s == "" {
		return New(ErrCodeInvalidUUID, "image uuid cannot be empty")
	}

	if _, err := uuid.Parse(s); err != nil {
		return Wrap(ErrCodeInvalidUUID, err, "invalid image uuid: %q", s)
	}

	return nil
}

// hexColorRegex matches #RGB and #RRGGBB hex color notations.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a hex color string such as "#8a2be2" or "#fff".
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}

	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q (expected #RGB or #RRGGBB)", s)
	}

	return nil
}

// ValidateOutputPath validates a file path supplied for saving output.
// It rejects empty paths, null bytes, and control characters; both relative
// and absolute paths are allowed.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidConfig, "URL must use http or https scheme")
	}

	return nil
}
