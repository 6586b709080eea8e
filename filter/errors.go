package filter

import "fmt"

// ErrorKind is the §7 error taxonomy.
type ErrorKind int

const (
	InvalidParam ErrorKind = iota
	AppError
	InvalidTimeCondition
	OOM
	UnsupportedType
)

var kindStr = map[ErrorKind]string{
	InvalidParam:         "invalid param",
	AppError:             "app error",
	InvalidTimeCondition: "invalid time condition",
	OOM:                  "out of memory",
	UnsupportedType:      "unsupported type",
}

// Error is this module's sole error type, grounded on the teacher's
// parser.ParseError{Pos, Message} shape (one concrete struct implementing
// error via fmt.Sprintf, no wrapping library).
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("tscolfilter: %s: %s", kindStr[e.Kind], e.Message)
}

func errf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}
