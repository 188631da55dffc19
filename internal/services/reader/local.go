package reader

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	readability "github.com/go-shiori/go-readability"
	"github.com/microcosm-cc/bluemonday"

	"webmark/internal/logging"
	"webmark/internal/services"
)

const localUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// localClient fetches pages directly and extracts readable content
// in-process. Related search has no local analog, so it delegates to the
// remote search endpoint, which degrades to "" without a key.
type localClient struct {
	httpClient *http.Client
	search     *remoteClient
	logger     *slog.Logger
}

func (c *localClient) ExtractContent(ctx context.Context, rawURL string) (string, error) {
	if err := ValidateURL(rawURL); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "reader", "extract", "build request", err)
	}
	req.Header.Set("User-Agent", localUserAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", services.Wrap(services.ErrCancelled, "reader", "extract", "request aborted", err)
		}
		return "", services.Wrap(services.ErrUnavailable, "reader", "extract", "fetch page", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return "", statusFailure(resp, body, "extract")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "reader", "extract", "parse url", err)
	}
	article, err := readability.FromReader(io.LimitReader(resp.Body, maxBodyBytes), parsed)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "reader", "extract", "extract readable content", err)
	}

	sanitized := bluemonday.UGCPolicy().Sanitize(article.Content)
	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(sanitized)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "reader", "extract", "convert to markdown", err)
	}
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		c.logger.WarnContext(ctx, "extraction returned empty content", logging.String(logging.FieldURL, rawURL))
		return "", nil
	}
	return markdown, nil
}

func (c *localClient) SearchRelated(ctx context.Context, rawURL string) string {
	return c.search.SearchRelated(ctx, rawURL)
}
