package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoRepository indicates the working directory is outside any git
// repository. Hosts that require a repository surface it; listing treats
// the condition as an empty result instead.
var ErrNoRepository = errors.New("not a git repository")

// SubprocessError reports a helper command that could not be started or
// exited abnormally. Output holds whatever merged stdout/stderr was
// captured before the failure, trimmed.
type SubprocessError struct {
	Args   []string
	Dir    string
	Output string
	Err    error
}

func (e *SubprocessError) Error() string {
	cmd := strings.Join(e.Args, " ")
	if e.Output != "" {
		return fmt.Sprintf("%s: %v: %s", cmd, e.Err, e.Output)
	}
	return fmt.Sprintf("%s: %v", cmd, e.Err)
}

func (e *SubprocessError) Unwrap() error { return e.Err }

// MalformedLineError reports a porcelain status line that does not match
// the two-code, space, path shape or carries a status code outside the
// known alphabet. One malformed line fails the whole listing, since it
// means the porcelain contract itself is broken.
type MalformedLineError struct {
	Line   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed status line %q: %s", e.Line, e.Reason)
}
