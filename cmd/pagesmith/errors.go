package main

import (
	"errors"
	"fmt"

	"github.com/alexisbeaulieu97/pagesmith/internal/app/session"
	"github.com/alexisbeaulieu97/pagesmith/internal/builder"
	"github.com/alexisbeaulieu97/pagesmith/internal/domain/page"
	"github.com/alexisbeaulieu97/pagesmith/internal/templates"
	pserrors "github.com/alexisbeaulieu97/pagesmith/pkg/errors"
)

func newCommandError(operation, context string, cause error, suggestion string) error {
	return &commandError{operation: operation, context: context, cause: cause, suggestion: suggestion}
}

type commandError struct {
	operation  string
	context    string
	cause      error
	suggestion string
}

func (e *commandError) Error() string {
	if e.suggestion == "" {
		return fmt.Sprintf("Failed to %s: %s\n\nError: %v", e.operation, e.context, e.cause)
	}
	return fmt.Sprintf("Failed to %s: %s\n\nError: %v\n\nSuggestion: %s", e.operation, e.context, e.cause, e.suggestion)
}

func (e *commandError) Unwrap() error { return e.cause }

// suggestFor picks a follow-up hint for common editing failures.
func suggestFor(err error) string {
	var unknownType *page.UnknownTypeError
	var invalid *pserrors.ValidationError
	switch {
	case errors.Is(err, session.ErrUnresolved), errors.Is(err, builder.ErrIndexOutOfRange):
		return "Run 'pagesmith page show' to list block ids and positions."
	case errors.As(err, &unknownType):
		return "Run 'pagesmith blocks' to list the available block types."
	case errors.Is(err, templates.ErrUnknownTemplate):
		return "Run 'pagesmith templates' to list the starter templates."
	case errors.As(err, &invalid):
		return "Run 'pagesmith blocks --json' to see each block's fields and defaults."
	default:
		return ""
	}
}
