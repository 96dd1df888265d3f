package classifier

import (
	"fmt"

	"github.com/okian/emodetect/internal/domain/emotion"
)

const maxErrorBody = 512

// Error describes a failed call to the remote classifier. Kind is one of
// emotion.ErrInvalidInput or emotion.ErrClassifierUnavailable.
type Error struct {
	Kind       error
	StatusCode int
	Body       string
	Cause      error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s: status %d", msg, e.StatusCode)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Is matches the error kind so callers can use errors.Is with emotion sentinels.
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func unavailable(status int, body []byte, cause error) *Error {
	return &Error{Kind: emotion.ErrClassifierUnavailable, StatusCode: status, Body: truncate(body), Cause: cause}
}

func invalid(status int, body []byte, cause error) *Error {
	return &Error{Kind: emotion.ErrInvalidInput, StatusCode: status, Body: truncate(body), Cause: cause}
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
