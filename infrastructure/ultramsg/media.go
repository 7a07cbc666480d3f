package ultramsg

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	domain "github.com/TrueSelph/ultramsg-action/domains/ultramsg"
	"github.com/TrueSelph/ultramsg-action/pkg/mediatype"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// DownloadMedia fetches mediaURL. With a filename the bytes are written to
// that path and the result reports the stored size; without one the bytes
// are returned in memory together with the sniffed MIME type.
func (c *Client) DownloadMedia(ctx context.Context, mediaURL, filename string) (*domain.MediaDownload, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).Errorf("[MEDIA] download of %s failed", mediaURL)
		return nil, fmt.Errorf("download media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithField("status", resp.StatusCode).Errorf("[MEDIA] download of %s rejected", mediaURL)
		return nil, fmt.Errorf("download media: status code %d", resp.StatusCode)
	}

	if resp.ContentLength > c.maxMedia {
		return nil, fmt.Errorf("download media: %s exceeds limit of %s", humanize.Bytes(uint64(resp.ContentLength)), humanize.Bytes(uint64(c.maxMedia)))
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxMedia+1))
	if err != nil {
		return nil, fmt.Errorf("read media body: %w", err)
	}
	if int64(len(data)) > c.maxMedia {
		c.log.Warnf("[MEDIA] download of %s exceeds %s", mediaURL, humanize.Bytes(uint64(c.maxMedia)))
		return nil, fmt.Errorf("download media: body exceeds limit of %s", humanize.Bytes(uint64(c.maxMedia)))
	}

	detected := mediatype.Normalize(mimetype.Detect(data).String())
	if mediatype.IsGeneric(detected) {
		if ct := mediatype.Normalize(resp.Header.Get("Content-Type")); !mediatype.IsGeneric(ct) {
			detected = ct
		}
	}

	result := &domain.MediaDownload{MIME: detected, Size: int64(len(data))}
	c.log.Debugf("[MEDIA] downloaded %s (%s, %s)", mediaURL, humanize.Bytes(uint64(len(data))), detected)

	if filename == "" {
		result.Data = data
		return result, nil
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create media folder: %w", err)
		}
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		c.log.WithError(err).Errorf("[MEDIA] failed to store %s", filename)
		return nil, fmt.Errorf("store media: %w", err)
	}
	info, err := os.Stat(filename)
	if err != nil {
		return nil, fmt.Errorf("media not found after write: %w", err)
	}
	result.Path = filename
	result.Size = info.Size()
	return result, nil
}

// FileURLToBase64 downloads fileURL and returns its contents base64 encoded.
// Nothing is written to disk.
func (c *Client) FileURLToBase64(ctx context.Context, fileURL string) (string, error) {
	media, err := c.DownloadMedia(ctx, fileURL, "")
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(media.Data), nil
}

// GetFileType detects the MIME type from, in priority order, the file path
// extension, a HEAD probe of the URL, or the MIME hint, then classifies it.
// Generic or missing types fall back to the extension of the path or URL.
func (c *Client) GetFileType(ctx context.Context, query domain.FileTypeQuery) domain.Classification {
	var detected string

	switch {
	case query.FilePath != "":
		detected = mediatype.FromExtension(query.FilePath)
	case query.URL != "":
		detected = c.probeContentType(ctx, query.URL)
	default:
		detected = query.MIME
	}

	if mediatype.IsGeneric(detected) {
		source := query.FilePath
		if source == "" && query.URL != "" {
			source = query.URL
			if u, err := url.Parse(query.URL); err == nil {
				source = u.Path
			}
		}
		detected = mediatype.FromExtension(source)
		if detected == "" {
			detected = mediatype.UnknownMIME
		}
	}

	return mediatype.Classify(detected)
}

func (c *Client) probeContentType(ctx context.Context, target string) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		c.log.WithError(err).Error("[MEDIA] invalid HEAD request")
		return ""
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.WithError(err).Errorf("[MEDIA] HEAD request to %s failed", target)
		return ""
	}
	defer resp.Body.Close()
	return resp.Header.Get("Content-Type")
}
