package cli

import "errors"

// ErrUsage marks errors caused by invalid command-line input.
var ErrUsage = errors.New("usage error")

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}
