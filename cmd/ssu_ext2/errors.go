package main

import "fmt"

// kind classifies a command-time failure. The REPL reports every kind the
// same way: the message goes to the error stream and the prompt resumes.
type kind int

const (
	kindUsage kind = iota
	kindNotFound
	kindWrongType
	kindBadArgument
	kindDataRead
)

// cmdError is a non-fatal command failure: the REPL always resumes the
// prompt after reporting one, in contrast to a startup error which
// terminates the program.
type cmdError struct {
	k   kind
	msg string
}

func (e *cmdError) Error() string { return e.msg }

func usageError(format string, args ...any) *cmdError {
	return &cmdError{k: kindUsage, msg: fmt.Sprintf(format, args...)}
}

func notFoundError(format string, args ...any) *cmdError {
	return &cmdError{k: kindNotFound, msg: fmt.Sprintf(format, args...)}
}

func wrongTypeError(format string, args ...any) *cmdError {
	return &cmdError{k: kindWrongType, msg: fmt.Sprintf(format, args...)}
}

func badArgumentError(format string, args ...any) *cmdError {
	return &cmdError{k: kindBadArgument, msg: fmt.Sprintf(format, args...)}
}

func dataReadError(format string, args ...any) *cmdError {
	return &cmdError{k: kindDataRead, msg: fmt.Sprintf(format, args...)}
}
