package rules

import "github.com/arthur-debert/crules/pkg/logging"

// Decision is the outcome of an overwrite check
type Decision int

const (
	// Continue means the caller may write its output
	Continue Decision = iota
	// Abort means the user declined; it is not an error
	Abort
)

func (d Decision) String() string {
	if d == Abort {
		return "abort"
	}
	return "continue"
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) (bool, error)
}

// confirmOverwrite asks c before target is replaced. Without a confirmer
// the answer is no, so non-interactive callers must opt in with force.
func confirmOverwrite(c Confirmer, sink logging.Sink, target, prompt string) (bool, error) {
	if c == nil {
		sink.Warnf("%s already exists; use force to overwrite it", target)
		return false, nil
	}
	return c.Confirm(prompt)
}
