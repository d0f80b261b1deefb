// Package fetch downloads a project template archive over HTTP into a
// temporary file. There is no retry or resume logic: a failed download is
// fatal and the caller reports it and exits.
package fetch

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"time"

	"esp-create-project/internal/logger"
)

// ErrDownload is returned for any download failure: connection error,
// timeout, or a non-success HTTP status.
var ErrDownload = errors.New("template download failed")

// DefaultTimeout bounds the whole download when the caller does not
// configure one.
const DefaultTimeout = 60 * time.Second

// archiveSuffixes are the archive extensions the materializer can extract.
// The temporary file keeps the template URL's suffix so extraction can be
// routed by filename, the same way the extractor routes.
var archiveSuffixes = []string{
	".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".tar", ".zip", ".7z",
}

// Download fetches the archive at rawURL into a temporary file and returns
// the file's path. The caller owns the file and should remove it when done.
func Download(rawURL string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger.Info("🌐 Downloading template...\n")
	logger.Debug("[DEBUG] Fetching template from URL: %s (timeout %s)\n", rawURL, timeout)

	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: GET %s: %v", ErrDownload, rawURL, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: GET %s: HTTP status %d", ErrDownload, rawURL, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "esp-template-*"+archiveSuffix(rawURL))
	if err != nil {
		return "", fmt.Errorf("failed to create temp file for template: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("%w: writing %s: %v", ErrDownload, tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp file %s: %w", tmp.Name(), err)
	}

	logger.Info("✔ Template downloaded\n")
	logger.Debug("[DEBUG] Template stored at %s\n", tmp.Name())
	return tmp.Name(), nil
}

// archiveSuffix returns the archive extension of the template URL
// (".zip", ".tar.gz", ...). Unknown or missing extensions fall back to
// ".zip", which is what the built-in GitHub templates use.
func archiveSuffix(rawURL string) string {
	name := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		name = path.Base(u.Path)
	}
	for _, suffix := range archiveSuffixes {
		if strings.HasSuffix(name, suffix) {
			return suffix
		}
	}
	return ".zip"
}
