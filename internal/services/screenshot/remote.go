package screenshot

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"

	"webmark/internal/logging"
	"webmark/internal/services"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// remoteService asks a Jina-style rendering endpoint for a page screenshot:
// GET {base}/{url} with X-Return-Format set to screenshot returns the PNG.
type remoteService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func (s *remoteService) Capture(ctx context.Context, rawURL string) ([]byte, error) {
	if rawURL == "" {
		return nil, services.Wrap(services.ErrValidation, "screenshot", "capture", "url required", nil)
	}
	if s.apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "screenshot", "capture", "api key required", nil)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/"+rawURL, nil)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "screenshot", "capture", "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("X-Return-Format", "screenshot")
	req.Header.Set("Accept", "image/png")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, services.Wrap(services.ErrCancelled, "screenshot", "capture", "request aborted", err)
		}
		return nil, services.Wrap(services.ErrUnavailable, "screenshot", "capture", "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, services.Wrap(services.ErrUnavailable, "screenshot", "capture", "read response", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, statusFailure(resp, body)
	}
	if !bytes.HasPrefix(body, pngMagic) {
		s.logger.WarnContext(ctx, "rendering service returned a non-png body",
			logging.String(logging.FieldURL, rawURL),
			logging.String("snippet", services.SummarizeBody(string(body))))
		return nil, services.Wrap(services.ErrUnexpectedStatus, "screenshot", "capture", "response is not a png image", nil)
	}
	return body, nil
}

func statusFailure(resp *http.Response, body []byte) error {
	retryAfter, _ := services.ParseRetryAfter(resp.Header.Get("Retry-After"))
	cause := &services.StatusError{
		StatusCode: resp.StatusCode,
		Body:       services.SummarizeBody(string(body)),
		RetryAfter: retryAfter,
	}
	marker := services.ErrUnexpectedStatus
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		marker = services.ErrAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		marker = services.ErrRateLimited
	case resp.StatusCode >= http.StatusInternalServerError:
		marker = services.ErrUnavailable
	}
	return services.Wrap(marker, "screenshot", "capture", "", cause)
}
