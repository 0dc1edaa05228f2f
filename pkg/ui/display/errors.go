package display

import (
	stderrors "errors"

	"github.com/arthur-debert/crules/pkg/errors"
)

// ErrorText returns the user-facing text of err, without the error code
func ErrorText(err error) string {
	var ce *errors.CrulesError
	if !stderrors.As(err, &ce) {
		return err.Error()
	}
	if ce.Wrapped != nil {
		return ce.Message + ": " + ErrorText(ce.Wrapped)
	}
	return ce.Message
}

// MissingFiles returns the paths a not-found error reports as missing
func MissingFiles(err error) []string {
	if !errors.IsErrorCode(err, errors.ErrNotFound) {
		return nil
	}
	missing, _ := errors.GetErrorDetails(err)["missing"].([]string)
	return missing
}

// Suggestion returns the follow-up hint attached to err, if any
func Suggestion(err error) string {
	suggestion, _ := errors.GetErrorDetails(err)["suggestion"].(string)
	return suggestion
}
