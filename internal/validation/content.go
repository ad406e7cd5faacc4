package validation

import (
	"errors"
	"strings"
	"unicode/utf8"
)

const (
	// TitleMaxLen caps post titles.
	TitleMaxLen = 100
	// CategoryNameMaxLen caps category names.
	CategoryNameMaxLen = 50
	// CommentMaxLen caps comment bodies.
	CommentMaxLen = 500
)

// ValidateTitle checks a post title that is already known to be present.
// Caps count characters, not bytes.
func ValidateTitle(title string) error {
	if utf8.RuneCountInString(title) > TitleMaxLen {
		return errors.New("Title cannot be more than 100 characters")
	}
	return nil
}

// ValidateCategoryName checks a category name for presence and length.
func ValidateCategoryName(name string) error {
	if name == "" {
		return errors.New("Category name is required")
	}
	if utf8.RuneCountInString(name) > CategoryNameMaxLen {
		return errors.New("Category name cannot be more than 50 characters")
	}
	return nil
}

// ValidateComment checks a comment body.
func ValidateComment(content string) error {
	if content == "" {
		return errors.New("Please provide comment content")
	}
	if utf8.RuneCountInString(content) > CommentMaxLen {
		return errors.New("Comment cannot be more than 500 characters")
	}
	return nil
}

// NormalizeTags trims each tag and drops empties, preserving order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}
