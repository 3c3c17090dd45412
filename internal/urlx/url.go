// Package urlx contains helpers for working with server-issued download URLs.
package urlx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/deckpilot/deckpilot/internal/common"
)

// AppendToken returns rawURL with the bearer token attached as a "token"
// query parameter. Download links are opened with a plain GET that cannot
// carry an Authorization header, so the server accepts the token this way.
//
// The result contains exactly one "token" parameter; any existing query
// string is preserved.
func AppendToken(rawURL, token string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", rawURL, err)
	}

	q := u.Query()
	q.Set(common.TokenQueryParam, token)
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Resolve joins a possibly relative download path with the API base URL.
// Absolute URLs are returned unchanged.
func Resolve(baseURL, downloadURL string) string {
	if strings.HasPrefix(downloadURL, "http://") || strings.HasPrefix(downloadURL, "https://") {
		return downloadURL
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(downloadURL, "/")
}

// Download fetches a server-issued download URL into destPath using the
// token query parameter for authentication.
func Download(ctx context.Context, rawURL, token, destPath string) error {
	full, err := AppendToken(rawURL, token)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return nil
}
