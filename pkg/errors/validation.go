package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateFontFileName validates a font file name for safety.
// Downloaded font names come straight from user configuration, so they must
// not be able to escape the font directory.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No path separators or parent-directory sequences
//   - Maximum length of 256 characters
func ValidateFontFileName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFont, "font file name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidFont, "font file name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFont, "font file name contains invalid control characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidFont, "font file name cannot contain path separators")
	}
	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidFont, "font file name cannot contain parent directory sequences")
	}

	return nil
}

// ValidateFontURL validates a font download URL.
// Only absolute http(s) URLs are accepted.
func ValidateFontURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidFont, "font URL cannot be empty")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidFont, err, "invalid font URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidFont, "font URL must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidFont, "font URL is missing a host")
	}

	return nil
}
