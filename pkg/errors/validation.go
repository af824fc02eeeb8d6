package errors

import (
	"strings"
	"unicode"
)

// MaxTopicLength bounds article titles accepted as a detail-mode topic.
const MaxTopicLength = 512

// ValidateTopic validates a detail-mode topic. Titles are matched against
// node labels verbatim, so only emptiness, length and control characters
// are checked.
func ValidateTopic(topic string) error {
	if strings.TrimSpace(topic) == "" {
		return New(ErrCodeInvalidTopic, "topic cannot be empty in detail mode")
	}
	if len(topic) > MaxTopicLength {
		return New(ErrCodeInvalidTopic, "topic too long (max %d characters)", MaxTopicLength)
	}
	for _, r := range topic {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidTopic, "topic contains invalid control characters")
		}
	}
	return nil
}

// ValidateNodeID validates an element id passed on the command line or in
// an API request (for example the --ego center).
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "node id cannot be empty")
	}
	if len(id) > 256 {
		return New(ErrCodeInvalidInput, "node id too long (max 256 characters)")
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "node id contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates a file path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL checks that rawURL uses one of the given schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}
	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidInput, "URL must use one of the schemes %v", schemes)
}
