package app

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad flags, bad input files, invalid binning parameters
	ExitRuntime  = 3 // output or internal failures
	ExitCanceled = 130
)

// exitError carries a process exit status through cobra's error return.
// A nil err means the status is reported without a message.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error   { return &exitError{code: ExitUsage, err: err} }
func runtimeError(err error) error { return &exitError{code: ExitRuntime, err: err} }
func exitWith(code int) error      { return &exitError{code: code} }
