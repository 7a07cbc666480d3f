package error

import (
	"fmt"
	"net/http"
	"strings"
)

// InboundPayloadError reports a gateway webhook payload that lacks fields the
// parser cannot do without.
type InboundPayloadError struct {
	Missing []string
}

func (err *InboundPayloadError) Error() string {
	return fmt.Sprintf("malformed inbound payload: missing %s", strings.Join(err.Missing, ", "))
}

func (err *InboundPayloadError) ErrCode() string {
	return "MALFORMED_INBOUND_PAYLOAD"
}

func (err *InboundPayloadError) StatusCode() int {
	return http.StatusBadRequest
}
