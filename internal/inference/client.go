package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// MaxImageBytes is the default upload ceiling enforced before anything is relayed.
const MaxImageBytes = 5 << 20

var (
	// ErrUnavailable: the service could not be reached at all (connection
	// failure or timeout). Maps to 503.
	ErrUnavailable = errors.New("prediction service unavailable")

	// Local pre-checks, rejected without contacting the service.
	ErrNotAnImage    = errors.New("only image files are allowed")
	ErrImageTooLarge = errors.New("image file too large")
)

// StatusError: the service was reachable but answered with a non-2xx status.
// The status and body are propagated to the caller as-is.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("prediction service returned status %d", e.Code)
}

// Detail returns the upstream body decoded as JSON when possible, the raw
// string otherwise.
func (e *StatusError) Detail() any {
	var v any
	if err := json.Unmarshal(e.Body, &v); err == nil {
		return v
	}
	return string(e.Body)
}

// Result is the classification outcome mapped from the service response.
type Result struct {
	Prediction  string  `json:"prediction"`
	Probability float64 `json:"probability"`
}

// Client relays uploaded images to the external classification service.
// One request per classification, no retries; resubmission is the caller's
// decision.
type Client struct {
	baseURL  string
	maxBytes int64
	http     *http.Client
	logger   *logrus.Logger
}

// NewClient builds a relay client. maxBytes <= 0 falls back to MaxImageBytes.
func NewClient(baseURL string, timeout time.Duration, maxBytes int64, logger *logrus.Logger) *Client {
	if maxBytes <= 0 {
		maxBytes = MaxImageBytes
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Classify validates the upload locally, then posts it as a multipart form
// (field "image") to the service's /predict endpoint.
func (c *Client) Classify(ctx context.Context, image []byte, filename, contentType string) (*Result, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}
	if int64(len(image)) > c.maxBytes {
		return nil, ErrImageTooLarge
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(image); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"bytes":        len(image),
			"content_type": contentType,
			"filename":     filename,
		}).Debug("relaying image to prediction service")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Code: resp.StatusCode, Body: b}
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("decode prediction response: %w", err)
	}
	return &res, nil
}

// Health probes the service's /health endpoint and returns its decoded body.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return nil, &StatusError{Code: resp.StatusCode, Body: b}
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
