package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/example/reaper-luadoc/internal/generator"
)

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

var defaultHTTPClient HTTPClient = http.DefaultClient

// isURL reports whether input names a web page rather than a local file
func isURL(input string) bool {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func readSourceWithClient(ctx context.Context, input string, timeout time.Duration, logger *slog.Logger, client HTTPClient) ([]byte, error) {
	if !isURL(input) {
		logger.Info("Reading content from file", slog.String("path", input))
		data, err := os.ReadFile(filepath.Clean(input)) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", input, err)
		}
		return data, nil
	}

	logger.Info("Fetching content from URL", slog.String("url", input))
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", input, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: HTTP status %d", input, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", input, err)
	}
	return data, nil
}

// extractSource loads input and pulls every function block out of it
func extractSource(ctx context.Context, input string, timeout time.Duration, logger *slog.Logger, client HTTPClient) (*generator.Extraction, error) {
	data, err := readSourceWithClient(ctx, input, timeout, logger, client)
	if err != nil {
		return nil, err
	}

	extraction, err := generator.NewExtractor(generator.DefaultConventions(), logger).ExtractHTML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", input, err)
	}
	return extraction, nil
}
