package ultramsg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
)

// OutboundRequest describes a single call against the gateway. It is built
// per call and never retained.
type OutboundRequest struct {
	Endpoint string
	Method   string
	Query    url.Values
	Body     map[string]any
	// Form sends Body urlencoded instead of JSON.
	Form    bool
	Headers map[string]string
	// FullURL marks Endpoint as absolute; otherwise it is joined to the API URL.
	FullURL bool
}

// Send executes req and normalizes the outcome. It never returns a Go error:
// transport and HTTP failures come back as {"error": ...}.
func (c *Client) Send(ctx context.Context, req OutboundRequest) domain.GatewayResponse {
	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodPost
	}

	target := req.Endpoint
	if !req.FullURL {
		target = c.apiURL + "/" + strings.TrimLeft(req.Endpoint, "/")
	}

	query := url.Values{}
	for k, v := range req.Query {
		query[k] = append([]string(nil), v...)
	}

	var body io.Reader
	contentType := "application/json"
	switch {
	case method == http.MethodGet || method == http.MethodHead:
		// Ultramsg reads GET parameters, token included, from the query string.
		for k, v := range req.Body {
			query.Set(k, formValue(v))
		}
	case req.Form:
		form := url.Values{}
		for k, v := range req.Body {
			form.Set(k, formValue(v))
		}
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.Body != nil:
		payload, err := json.Marshal(req.Body)
		if err != nil {
			c.log.WithError(err).Error("[ULTRAMSG] failed to encode request body")
			return domain.GatewayResponse{"error": err.Error()}
		}
		body = bytes.NewReader(payload)
	}

	if len(query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + query.Encode()
	}

	parent := ctx
	ctx, cancel := context.WithTimeout(parent, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		c.log.WithError(err).Errorf("[ULTRAMSG] invalid request for %s", req.Endpoint)
		return domain.GatewayResponse{"error": err.Error()}
	}
	if req.Headers == nil {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// the caller's own deadline or cancellation is not a client timeout
		if parentErr := parent.Err(); parentErr != nil {
			c.log.WithError(parentErr).Warnf("[ULTRAMSG] request to %s abandoned by caller", req.Endpoint)
			return domain.GatewayResponse{"error": parentErr.Error()}
		}
		if isTimeout(err) {
			c.log.WithError(err).Errorf("[ULTRAMSG] request to %s timed out after %s seconds", req.Endpoint, c.timeoutSeconds())
			return domain.GatewayResponse{"error": fmt.Sprintf("Timeout after %s seconds", c.timeoutSeconds())}
		}
		c.log.WithError(err).Errorf("[ULTRAMSG] request to %s failed", req.Endpoint)
		return domain.GatewayResponse{"error": err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.WithError(err).Errorf("[ULTRAMSG] failed reading response from %s", req.Endpoint)
		return domain.GatewayResponse{"error": err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := fmt.Sprintf("Request failed with status code %d, response: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
		c.log.WithField("status", resp.StatusCode).Errorf("[ULTRAMSG] %s: %s", req.Endpoint, msg)
		out := domain.GatewayResponse{"error": msg}
		var details any
		if len(bytes.TrimSpace(raw)) > 0 && json.Unmarshal(raw, &details) == nil {
			out["details"] = details
		}
		return out
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return domain.GatewayResponse{}
	}

	var result domain.GatewayResponse
	if err := json.Unmarshal(raw, &result); err != nil {
		c.log.WithError(err).Errorf("[ULTRAMSG] %s returned a non JSON object body", req.Endpoint)
		return domain.GatewayResponse{"error": fmt.Sprintf("invalid JSON response: %v", err)}
	}
	if result == nil {
		result = domain.GatewayResponse{}
	}
	if gwErr := result.Err(); gwErr != "" {
		c.log.WithField("endpoint", req.Endpoint).Warnf("[ULTRAMSG] gateway reported error: %s", gwErr)
	}
	return result
}

func (c *Client) timeoutSeconds() string {
	return strconv.FormatFloat(c.timeout.Seconds(), 'f', -1, 64)
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func formValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}
