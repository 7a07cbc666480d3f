package usecase

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	pkgError "github.com/TrueSelph/ultramsg-action/pkg/error"
	pkgUtils "github.com/TrueSelph/ultramsg-action/pkg/utils"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// hostForwarder delivers normalized inbound messages to the host platform.
type hostForwarder struct {
	urls   []string
	secret string
	client *http.Client
}

func newHostForwarder(urls []string, secret string, insecureSkipVerify bool) *hostForwarder {
	return &hostForwarder{
		urls:   urls,
		secret: secret,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: insecureSkipVerify},
			},
		},
	}
}

// forward posts payload to every configured URL. It only returns an error
// when all deliveries fail; partial failures are logged.
func (f *hostForwarder) forward(ctx context.Context, payload map[string]any, eventName string) (int, error) {
	total := len(f.urls)
	if total == 0 {
		logrus.WithField("event", eventName).Debug("[WEBHOOK] No host callback configured; skipping dispatch")
		return 0, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return 0, pkgError.WebhookError(fmt.Sprintf("failed to marshal body: %v", err))
	}

	var failed []string
	successes := 0
	for _, url := range f.urls {
		if err := f.submit(ctx, body, url, eventName); err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", url, err))
			logrus.Warnf("[WEBHOOK] Failed forwarding %s to %s: %v", eventName, url, err)
			continue
		}
		successes++
	}

	if len(failed) == total {
		return 0, pkgError.WebhookError(fmt.Sprintf("all host callbacks failed for %s: %s", eventName, strings.Join(failed, "; ")))
	}
	if len(failed) > 0 {
		logrus.Warnf("[WEBHOOK] Some host callbacks failed for %s (succeeded: %d/%d): %s", eventName, successes, total, strings.Join(failed, "; "))
	}
	return successes, nil
}

func (f *hostForwarder) submit(ctx context.Context, body []byte, url, eventName string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-ID", uuid.NewString())
	req.Header.Set("X-Event-Type", eventName)
	if f.secret != "" {
		signature, err := pkgUtils.GetMessageDigestOrSignature(body, []byte(f.secret))
		if err != nil {
			return fmt.Errorf("create signature: %w", err)
		}
		req.Header.Set("X-Hub-Signature-256", "sha256="+signature)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("host returned status %d", resp.StatusCode)
	}
	return nil
}
