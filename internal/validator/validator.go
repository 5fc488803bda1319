// Package validator checks candidate post input before it becomes a Post.
package validator

import "unicode/utf8"

const (
	MinTitleLength   = 3
	MinContentLength = 10
)

// Reason is the user-facing text of a validation failure.
type Reason string

const (
	MissingTitle    Reason = "Please enter a title"
	MissingContent  Reason = "Please enter some content"
	TitleTooShort   Reason = "Title must be at least 3 characters"
	ContentTooShort Reason = "Content must be at least 10 characters"
)

// ValidationError is returned for input that breaks one of the post rules.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return string(e.Reason)
}

// Validate applies the rules in order and stops at the first failure.
// Lengths are counted in code points; whitespace is not trimmed.
func Validate(title, content string) error {
	switch {
	case title == "":
		return &ValidationError{Reason: MissingTitle}
	case content == "":
		return &ValidationError{Reason: MissingContent}
	case utf8.RuneCountInString(title) < MinTitleLength:
		return &ValidationError{Reason: TitleTooShort}
	case utf8.RuneCountInString(content) < MinContentLength:
		return &ValidationError{Reason: ContentTooShort}
	}
	return nil
}
