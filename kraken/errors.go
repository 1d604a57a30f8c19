package kraken

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/pkg/errors"
)

// Error kinds. Every error returned by this package matches exactly one of
// them with errors.Is.
var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
	ErrTransport     = errors.New("transport error")
	ErrExchange      = errors.New("exchange error")
)

// Error attaches a kind and the failing operation to a cause.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("kraken: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("kraken: %s: %s: %s", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == e.Kind }

func configError(op string, err error) error {
	return &Error{Kind: ErrConfiguration, Op: op, Err: err}
}

func validationError(op, format string, args ...interface{}) error {
	return &Error{Kind: ErrValidation, Op: op, Err: errors.Errorf(format, args...)}
}

func transportError(op string, err error) error {
	return &Error{Kind: ErrTransport, Op: op, Err: err}
}

// APIError is an exchange reported failure: a non-2xx status, or a non-empty
// error array in the response envelope.
type APIError struct {
	StatusCode int
	Messages   []string
}

func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("kraken api error: http status %d", e.StatusCode)
	}
	return fmt.Sprintf("kraken api error: %s", strings.Join(e.Messages, "; "))
}

func (e *APIError) Is(target error) bool { return target == ErrExchange }

// Has reports whether one of the messages equals msg, e.g. "EAPI:Invalid nonce".
func (e *APIError) Has(msg string) bool {
	for _, m := range e.Messages {
		if m == msg {
			return true
		}
	}
	return false
}

// Categories returns the severity/category prefixes of the messages, "EAPI"
// for "EAPI:Invalid nonce".
func (e *APIError) Categories() []string {
	var cats []string
	for _, m := range e.Messages {
		if i := strings.IndexByte(m, ':'); i > 0 {
			cats = append(cats, m[:i])
		}
	}
	return cats
}

// Exchange error messages worth branching on.
const (
	MsgInvalidNonce      = "EAPI:Invalid nonce"
	MsgInvalidKey        = "EAPI:Invalid key"
	MsgInvalidSignature  = "EAPI:Invalid signature"
	MsgRateLimitExceeded = "EAPI:Rate limit exceeded"
	MsgInsufficientFunds = "EOrder:Insufficient funds"
	MsgUnknownOrder      = "EOrder:Unknown order"
	MsgUnknownAssetPair  = "EQuery:Unknown asset pair"
)

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return nil, false
	}
	return apiErr, true
}

// IsAPIError reports whether err is an exchange error carrying msg.
func IsAPIError(err error, msg string) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Has(msg)
}

// IsTimeout reports whether err is a transport failure caused by a timeout.
func IsTimeout(err error) bool {
	if !errors.Is(err, ErrTransport) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// IsCanceled reports whether err is a transport failure caused by context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrTransport) && errors.Is(err, context.Canceled)
}
