package kraken

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/pkg/errors"
)

type envelope struct {
	Error  []string        `json:"error"`
	Result json.RawMessage `json:"result"`
}

// Result wraps a completed response. It does not interpret the payload;
// Err and Decode are there for callers that want to.
type Result struct {
	StatusCode int
	Header     http.Header
	Body       []byte

	once     sync.Once
	envelope envelope
	parseErr error
}

func newResult(resp *Response) *Result {
	return &Result{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       resp.Body,
	}
}

func (r *Result) parse() {
	r.once.Do(func() {
		if len(r.Body) == 0 {
			r.parseErr = errors.New("empty response body")
			return
		}
		if err := json.Unmarshal(r.Body, &r.envelope); err != nil {
			r.parseErr = errors.Wrap(err, "decode response envelope")
		}
	})
}

// OK reports a 2xx status.
func (r *Result) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Errors returns the error array reported by the exchange, if any.
func (r *Result) Errors() []string {
	r.parse()
	return r.envelope.Error
}

// Err returns an ExchangeError when the status is not 2xx or the exchange
// reported errors, nil otherwise.
func (r *Result) Err() error {
	msgs := r.Errors()
	if !r.OK() || len(msgs) > 0 {
		return &APIError{StatusCode: r.StatusCode, Messages: msgs}
	}
	return nil
}

// Raw returns the undecoded result member.
func (r *Result) Raw() json.RawMessage {
	r.parse()
	return r.envelope.Result
}

// Decode checks Err and unmarshals the result member into v.
func (r *Result) Decode(v interface{}) error {
	if err := r.Err(); err != nil {
		return err
	}
	if r.parseErr != nil {
		return &Error{Kind: ErrExchange, Op: "decode", Err: r.parseErr}
	}
	raw := r.envelope.Result
	if len(raw) == 0 {
		raw = json.RawMessage("null")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return &Error{Kind: ErrExchange, Op: "decode", Err: errors.Wrapf(err, "raw response: %s", string(r.Body))}
	}
	return nil
}

func (r *Result) String() string {
	return string(r.Body)
}
