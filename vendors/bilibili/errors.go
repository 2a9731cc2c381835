package bilibili

import (
	"errors"
	"fmt"
)

var (
	ErrMissingCSRF      = errors.New("bilibili: missing csrf")
	ErrMissingWbiKeys   = errors.New("bilibili: missing wbi keys")
	ErrMissingAccessKey = errors.New("bilibili: missing access key")
	ErrMissingVideoID   = errors.New("bilibili: missing aid or bvid")
	ErrInvalidMultiply  = errors.New("bilibili: coin multiply must be 1 or 2")
	ErrNoQRCode         = errors.New("bilibili: no qrcode available")
	ErrEmptyBuvid       = errors.New("bilibili: empty buvid")
	ErrEmptyTicket      = errors.New("bilibili: empty ticket")
	// ErrCorruptRecord is reported by a KV medium whose stored value cannot
	// be decoded. The store treats it as an absent record.
	ErrCorruptRecord = errors.New("bilibili: corrupt record")
)

// TransportError is a network failure (StatusCode 0) or a non-2xx response.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		if e.StatusCode != 0 {
			return fmt.Sprintf("bilibili: http status %d: %v", e.StatusCode, e.Err)
		}
		return fmt.Sprintf("bilibili: transport: %v", e.Err)
	}
	return fmt.Sprintf("bilibili: http status %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// APIError is a non-zero application code inside an otherwise valid response.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("bilibili: api code %d: %s", e.Code, e.Message)
}

// HTTPStatus returns the status carried by a TransportError, or 0.
func HTTPStatus(err error) int {
	var te *TransportError
	if errors.As(err, &te) {
		return te.StatusCode
	}
	return 0
}
