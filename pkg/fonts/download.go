package fonts

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/holgern/piltext/pkg/errors"
	"github.com/holgern/piltext/pkg/httputil"
)

// googleFontsBase is the raw-content root of the Google Fonts repository.
// Fonts are addressed as <license>/<family>/<file>, e.g.
// ofl/roboto/Roboto-Regular.ttf.
const googleFontsBase = "https://raw.githubusercontent.com/google/fonts/main"

// downloadTTL controls how long raw download responses stay in the byte
// cache. Font releases are effectively immutable, so the TTL is generous.
const downloadTTL = 30 * 24 * time.Hour

// DownloadURL fetches a font file and stores it in the managed directory.
// Responses are cached, so re-downloading after DeleteAll does not hit the
// network. Returns the path of the written font file.
func (m *Manager) DownloadURL(ctx context.Context, rawURL string) (string, error) {
	if err := errors.ValidateFontURL(rawURL); err != nil {
		return "", err
	}

	fileName := path.Base(mustPath(rawURL))
	if err := errors.ValidateFontFileName(fileName); err != nil {
		return "", err
	}
	if !fontExtensions[filepath.Ext(fileName)] {
		return "", errors.New(errors.ErrCodeInvalidFont, "URL %s does not point to a .ttf or .otf file", rawURL)
	}

	return m.download(ctx, rawURL, fileName)
}

// DownloadGoogleFont fetches a font from the Google Fonts repository.
// license is the license directory ("ofl", "apache", "ufl"), family the
// lower-case family directory, fileName the font file inside it.
func (m *Manager) DownloadGoogleFont(ctx context.Context, license, family, fileName string) (string, error) {
	if license == "" || family == "" {
		return "", errors.New(errors.ErrCodeInvalidFont, "google font needs a license and family directory, got %q/%q", license, family)
	}
	if err := errors.ValidateFontFileName(fileName); err != nil {
		return "", err
	}

	u := googleFontsBase + "/" + url.PathEscape(license) + "/" + url.PathEscape(family) + "/" + url.PathEscape(fileName)
	return m.download(ctx, u, fileName)
}

// download fetches (or recalls from cache) the font bytes and writes them
// into the managed directory.
func (m *Manager) download(ctx context.Context, rawURL, fileName string) (string, error) {
	if len(m.dirs) == 0 {
		return "", errors.New(errors.ErrCodeInternal, "font manager has no managed directory")
	}
	dir := m.dirs[0]
	target := filepath.Join(dir, fileName)

	// Already present: nothing to do.
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return target, nil
	}

	data, hit, err := m.cache.Get(ctx, rawURL)
	if err != nil || !hit {
		data, err = httputil.GetWithRetry(ctx, http.DefaultClient, rawURL)
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeNetwork, err, "download %s", rawURL)
		}
		_ = m.cache.Set(ctx, rawURL, data, downloadTTL)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", err
	}
	return target, nil
}

// mustPath extracts the path component of a URL already validated by
// ValidateFontURL.
func mustPath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Path
}
