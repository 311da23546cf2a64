package importer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/conneroisu/branddna/internal/errors"
	"github.com/conneroisu/branddna/internal/logging"
	"github.com/conneroisu/branddna/internal/serializer"
	"github.com/conneroisu/branddna/internal/validation"
)

// LinkParam is the query parameter that carries a share token in a
// share URL.
const LinkParam = "brand"

var allowedExtensions = []string{".json"}

// ImportReader imports a document named name from r. The name must end
// in .json and the content must be UTF-8 within the size limit.
func (i *Importer) ImportReader(name string, r io.Reader) (result Result) {
	source := "file:" + name
	defer i.recoverInto(&result, source)

	if err := validation.ValidateFileExtension(name, allowedExtensions); err != nil {
		return failure(source, "file", errors.CodeInvalidFile, "only .json files can be imported")
	}

	data, err := i.readLimited(r)
	if err != nil {
		return failure(source, "file", errors.CodeInvalidFile, "%s", err.Error())
	}
	if !utf8.Valid(data) {
		return failure(source, "file", errors.CodeInvalidFile, "file is not valid UTF-8 text")
	}

	return i.importBytes(context.Background(), source, data)
}

// ImportFile imports the document at path.
func (i *Importer) ImportFile(path string) (result Result) {
	source := "file:" + path
	defer i.recoverInto(&result, source)

	if err := validation.ValidatePath(path); err != nil {
		if errors.IsSecurityError(err) {
			logging.LogSecurityEvent(i.logger, context.Background(), "path_rejected", errors.GetErrorContext(err))
		}

		return failure(source, "file", errors.CodeInvalidFile, "%s", err.Error())
	}

	f, err := os.Open(path)
	if err != nil {
		return failure(source, "file", errors.CodeInvalidFile, "cannot open file: %s", err.Error())
	}
	defer f.Close()

	res := i.ImportReader(filepath.Base(path), f)
	res.Source = source

	return res
}

// ImportURL fetches a document with an HTTP GET and imports it. The
// context bounds the request.
func (i *Importer) ImportURL(ctx context.Context, rawURL string) (result Result) {
	source := "url:" + rawURL
	defer i.recoverInto(&result, source)

	if err := validation.ValidateURL(rawURL); err != nil {
		return failure(source, "url", errors.CodeFetchFailed, "%s", err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return failure(source, "url", errors.CodeFetchFailed, "%s", err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		i.logger.Warn(ctx, errors.NewNetworkError(errors.ErrCodeFetchFailed, "fetch failed", err), "Fetch failed",
			"url", rawURL)

		return failure(source, "url", errors.CodeFetchFailed, "request failed: %s", err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		i.logger.Warn(ctx, errors.NewNetworkError(errors.ErrCodeFetchFailed, "unexpected status "+resp.Status, nil),
			"Fetch failed", "url", rawURL, "status", resp.StatusCode)

		return failure(source, "url", errors.CodeFetchFailed, "server responded with %s", resp.Status)
	}

	data, err := i.readLimited(resp.Body)
	if err != nil {
		return failure(source, "url", errors.CodeFetchFailed, "%s", err.Error())
	}

	return i.importBytes(ctx, source, data)
}

// ImportShareableLink imports a share token. A token that cannot be
// decoded yields a single INVALID_LINK error.
func (i *Importer) ImportShareableLink(token string) (result Result) {
	source := "link"
	defer i.recoverInto(&result, source)

	data, err := serializer.DecodeShareableLink(ExtractToken(token))
	if err != nil {
		i.logger.Debug(context.Background(), "Share link rejected", "error", err.Error())

		return failure(source, "link", errors.CodeInvalidLink, "link is invalid or corrupted")
	}

	return i.importBytes(context.Background(), source, data)
}

// ExtractToken returns the share token carried by a share URL, or s
// itself when it is not one.
func ExtractToken(s string) string {
	s = strings.TrimSpace(s)
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return s
	}
	if token := u.Query().Get(LinkParam); token != "" {
		return token
	}

	return s
}

// SourceKind classifies an import argument.
type SourceKind int

const (
	SourceFile SourceKind = iota
	SourceURL
	SourceLink
)

// String returns the kind name.
func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "file"
	case SourceURL:
		return "url"
	case SourceLink:
		return "link"
	default:
		return "unknown"
	}
}

// DetectSource classifies s: share URLs and bare tokens are links, other
// http(s) URLs are fetched, anything else is a file path.
func DetectSource(s string) SourceKind {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		if ExtractToken(s) != s {
			return SourceLink
		}

		return SourceURL
	}
	if _, err := os.Stat(s); err == nil {
		return SourceFile
	}
	if strings.HasSuffix(lower, ".json") || (strings.ContainsAny(s, `/\`) && !isBase64ish(s)) {
		return SourceFile
	}

	return SourceLink
}

func isBase64ish(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '+', r == '/', r == '=', r == '-', r == '_':
		default:
			return false
		}
	}

	return len(s) >= 16
}

// Import dispatches s to the matching source.
func (i *Importer) Import(ctx context.Context, s string) Result {
	switch DetectSource(s) {
	case SourceURL:
		return i.ImportURL(ctx, strings.TrimSpace(s))
	case SourceLink:
		return i.ImportShareableLink(s)
	default:
		return i.ImportFile(strings.TrimSpace(s))
	}
}

func (i *Importer) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, i.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}
	if int64(len(data)) > i.maxBytes {
		return nil, fmt.Errorf("document exceeds the %d byte limit", i.maxBytes)
	}

	return data, nil
}
