// Package validation contains input validators for user-supplied fields.
// Validators return an error describing the first violated rule; handlers
// collect these into field-level message lists.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

const (
	usernameMinLen = 3
	usernameMaxLen = 30
	passwordMinLen = 6
	passwordMaxLen = 128
	fullNameMinLen = 3
	fullNameMaxLen = 100
	contentMaxLen  = 5000
	emailMaxLen    = 254
)

// ValidateUsername checks length and character set. Usernames are ASCII
// letters, digits and underscores, and must start and end with a letter or
// digit.
func ValidateUsername(username string) error {
	if len(username) < usernameMinLen || len(username) > usernameMaxLen {
		return fmt.Errorf("username must be between %d and %d characters", usernameMinLen, usernameMaxLen)
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return errors.New("username may only contain letters, digits and underscores")
		}
	}
	if username[0] == '_' || username[len(username)-1] == '_' {
		return errors.New("username must start and end with a letter or digit")
	}
	return nil
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	}
	return false
}

// ValidateEmail checks RFC 5322 address syntax and overall length.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if len(email) > emailMaxLen {
		return fmt.Errorf("email must be at most %d characters", emailMaxLen)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("email format is invalid")
	}
	if strings.HasSuffix(email, ".") {
		return errors.New("email format is invalid")
	}
	return nil
}

// ValidatePassword enforces the length bounds only; there is no character
// composition rule.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLen {
		return fmt.Errorf("password must be at least %d characters", passwordMinLen)
	}
	if len(password) > passwordMaxLen {
		return fmt.Errorf("password must be at most %d characters", passwordMaxLen)
	}
	return nil
}

// ValidateFullName checks display-name length after trimming.
func ValidateFullName(fullName string) error {
	trimmed := strings.TrimSpace(fullName)
	if len(trimmed) < fullNameMinLen || len(trimmed) > fullNameMaxLen {
		return fmt.Errorf("full_name must be between %d and %d characters", fullNameMinLen, fullNameMaxLen)
	}
	return nil
}

// ValidatePostContent requires that a post carries text and/or a media
// reference, and bounds the text length.
func ValidatePostContent(content, mediaURL string) error {
	if strings.TrimSpace(content) == "" && strings.TrimSpace(mediaURL) == "" {
		return errors.New("content or media_url is required")
	}
	if len(content) > contentMaxLen {
		return fmt.Errorf("content must be at most %d characters", contentMaxLen)
	}
	return nil
}

// ValidateCommentContent requires non-empty comment text within bounds.
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.New("content is required")
	}
	if len(content) > contentMaxLen {
		return fmt.Errorf("content must be at most %d characters", contentMaxLen)
	}
	return nil
}
