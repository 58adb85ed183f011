package commands

import (
	"context"
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"

	schemavalidation "github.com/goliatone/go-cms-bootstrap/internal/validation"
)

// Text codes attached to wrapped command errors.
const (
	CodeValidation     = "BOOTSTRAP_COMMAND_INVALID"
	CodeCanceled       = "BOOTSTRAP_COMMAND_CANCELED"
	CodeTimeout        = "BOOTSTRAP_COMMAND_TIMEOUT"
	CodeContext        = "BOOTSTRAP_COMMAND_CONTEXT"
	CodeExecution      = "BOOTSTRAP_COMMAND_FAILED"
	CodeDomainRejected = "BOOTSTRAP_COMMAND_REJECTED"
)

func wrapValidationError(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(CodeValidation)
}

func wrapContextError(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	switch {
	case errors.Is(err, context.Canceled):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution cancelled").
			WithTextCode(CodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution deadline exceeded").
			WithTextCode(CodeTimeout)
	default:
		return goerrors.Wrap(err, goerrors.CategoryCommand, "command context error").
			WithTextCode(CodeContext)
	}
}

// wrapExecuteError keeps domain validation failures in the validation
// category so callers can tell bad input from broken execution.
func wrapExecuteError(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	if isDomainValidation(err) {
		return goerrors.Wrap(err, goerrors.CategoryValidation, "command input rejected").
			WithTextCode(CodeDomainRejected)
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "command execution failed").
		WithTextCode(CodeExecution)
}

func isDomainValidation(err error) bool {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return true
	}
	var payloadErr *schemavalidation.PayloadError
	return errors.As(err, &payloadErr)
}
