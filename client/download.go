package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// Download fetches a file from upn's drive root by path and streams it to
// dest through a fixed-size buffer. dest is only created once the response
// status is 200. The timeout is an idle timeout: it is re-armed after every
// chunk so large files are not cut off.
func (c *Client) Download(ctx context.Context, token *Token, upn, drivePath, dest string) (int64, error) {
	if token == nil || token.AccessToken == "" {
		return 0, fmt.Errorf("%w: no access token", ErrTransfer)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	idle := time.AfterFunc(c.downloadTimeout, cancel)
	defer idle.Stop()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentURL(upn, drivePath), http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("%w: creating request: %w", ErrTransfer, err)
	}
	c.setCommonHeaders(req)
	// Must stay a request header: http.Client strips it when Graph redirects
	// to the pre-authenticated download host.
	(&oauth2.Token{AccessToken: token.AccessToken, TokenType: "Bearer"}).SetAuthHeader(req)

	httpClient := &http.Client{Transport: c.transport()}
	if c.HTTPClient != nil {
		httpClient.CheckRedirect = c.HTTPClient.CheckRedirect
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransfer, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return 0, fmt.Errorf("%w: %w", ErrTransfer, parseAPIError(resp.StatusCode, body, maxErrorExcerpt))
	}
	idle.Reset(c.downloadTimeout)

	if dir := filepath.Dir(dest); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("%w: creating output directory: %w", ErrTransfer, err)
		}
	}
	f, err := os.Create(dest)
	if err != nil {
		return 0, fmt.Errorf("%w: creating output file: %w", ErrTransfer, err)
	}

	written, err := c.copyChunks(f, resp.Body, func() { idle.Reset(c.downloadTimeout) })
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = closeErr
	}
	if err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			err = fmt.Errorf("no data received for %s: %w", c.downloadTimeout, err)
		}
		return written, fmt.Errorf("%w: %w", ErrTransfer, &PartialDownloadError{Path: dest, Written: written, Err: err})
	}
	return written, nil
}

// copyChunks copies src to dst one buffer at a time, calling progress after
// each chunk.
func (c *Client) copyChunks(dst io.Writer, src io.Reader, progress func()) (int64, error) {
	size := c.chunkSize
	if size <= 0 {
		size = defaultChunkSize
	}
	buf := make([]byte, size)

	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			m, writeErr := dst.Write(buf[:n])
			written += int64(m)
			if writeErr != nil {
				return written, fmt.Errorf("writing: %w", writeErr)
			}
			if m != n {
				return written, fmt.Errorf("writing: %w", io.ErrShortWrite)
			}
			progress()
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, fmt.Errorf("reading response: %w", readErr)
		}
	}
}
