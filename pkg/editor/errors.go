package editor

import "fmt"

// Error codes surfaced to the tool layer. The transport reports every failure
// as a structured {code, message} pair rather than a raw error string.
const (
	// CodeWhitelistViolation: write attempted on an existing file the session
	// has not read, or whose content drifted since it was last observed.
	CodeWhitelistViolation = "whitelist_violation"
	// CodeParseError: malformed or absent search/replace block structure.
	CodeParseError = "parse_error"
	// CodeApplyNotFound: a search block's target occurrence does not exist.
	CodeApplyNotFound = "apply_not_found"
	// CodeApplyOverlap: two search blocks target overlapping spans.
	CodeApplyOverlap = "apply_overlap"
	// CodeFileTooLarge: the target exceeds the configured size limit.
	CodeFileTooLarge = "file_too_large"
	// CodeIO: filesystem failure during read or write.
	CodeIO = "io_error"
)

// Error is a structured engine failure. It wraps the underlying cause, when
// one exists, so callers can still use errors.Is/As against parse and apply
// error types.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

func ioErr(err error) *Error {
	return &Error{Code: CodeIO, Message: err.Error(), Err: err}
}
