package errors

import "regexp"

// hexColorRegex matches strict 3- or 6-digit hex colors, case-insensitive.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// IsHexColor reports whether s is a valid #rgb or #rrggbb color string.
func IsHexColor(s string) bool {
	return hexColorRegex.MatchString(s)
}

// ValidateHexColor validates a hex color string for use as a fill or label color.
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q (expected #rgb or #rrggbb)", s)
	}
	return nil
}

// ValidateLabelText validates a block label for rendering.
// Empty labels are allowed; the limit only guards against runaway input.
func ValidateLabelText(label string) error {
	const maxLabelLength = 256
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}
	return nil
}
