package domain

import "errors"

var (
	// ErrUnsupportedLanguage means no parser is registered for a file extension.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrUnreadableFile wraps I/O failures while reading a source file.
	ErrUnreadableFile = errors.New("unreadable file")
	// ErrParseFailure wraps parser rejections.
	ErrParseFailure = errors.New("parse failure")
	// ErrInvalidConfig is returned before scanning when options are malformed.
	ErrInvalidConfig = errors.New("invalid configuration")
)
