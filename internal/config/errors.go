package config

import (
	"errors"
	"fmt"
)

var (
	// ErrParse is matched by every *ParseError.
	ErrParse = errors.New("invalid style configuration")
	// ErrCollision reports an atom or shorthand that shares its name with a
	// breakpoint, media query or modifier.
	ErrCollision = errors.New("configuration name collision")
)

// ParseError describes a document that could not be decoded into the
// expected shape. Path is the dotted location of the offending section.
type ParseError struct {
	Path string
	Line int
	Msg  string
	Err  error
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("config: %s (line %d): %s", e.Path, e.Line, msg)
	case e.Path != "":
		return fmt.Sprintf("config: %s: %s", e.Path, msg)
	default:
		return "config: " + msg
	}
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
