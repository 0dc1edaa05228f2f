package paths

import (
	"strings"

	"github.com/arthur-debert/crules/pkg/errors"
)

// ValidateIdentifier checks that a rule identifier can be used as a file name
// component. Identifiers end up in cursor.<id> and <id>.mdc so they must not
// escape the directory they are joined to.
func ValidateIdentifier(id string) error {
	if id == "" {
		return errors.New(errors.ErrInvalidInput, "rule identifier cannot be empty")
	}

	if strings.ContainsAny(id, "/\\") {
		return errors.Newf(errors.ErrInvalidInput, "rule identifier cannot contain path separators: %q", id)
	}

	if id == "." || id == ".." {
		return errors.New(errors.ErrInvalidInput, "rule identifier cannot be '.' or '..'")
	}

	invalidChars := ":*?\"<>|"
	if strings.ContainsAny(id, invalidChars) {
		return errors.Newf(errors.ErrInvalidInput,
			"rule identifier %q contains invalid characters: %s", id, invalidChars)
	}

	for _, r := range id {
		if r < 32 {
			return errors.Newf(errors.ErrInvalidInput,
				"rule identifier %q contains control characters", id)
		}
	}

	return nil
}

// ValidateIdentifiers validates every identifier, returning the first error
func ValidateIdentifiers(ids []string) error {
	for _, id := range ids {
		if err := ValidateIdentifier(id); err != nil {
			return err
		}
	}
	return nil
}
