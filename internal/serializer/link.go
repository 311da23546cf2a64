package serializer

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/conneroisu/branddna/internal/brand"
)

// ErrInvalidLink is returned for any token that does not decode to a JSON
// object.
var ErrInvalidLink = errors.New("invalid share link")

var linkEncodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.URLEncoding,
	base64.RawStdEncoding,
	base64.RawURLEncoding,
}

// ToShareableLink encodes b as base64 of the URL-escaped compact JSON form.
func ToShareableLink(b brand.BrandDNA) (string, error) {
	data, err := ToCompactJSON(b)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString([]byte(url.QueryEscape(string(data)))), nil
}

// DecodeShareableLink reverses ToShareableLink and returns the JSON text.
// Padded, unpadded and URL-safe base64 are accepted.
func DecodeShareableLink(token string) ([]byte, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidLink)
	}

	var raw []byte
	var err error
	for _, enc := range linkEncodings {
		if raw, err = enc.DecodeString(token); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}

	text, err := url.QueryUnescape(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}

	data := []byte(text)
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil || probe == nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrInvalidLink)
	}

	return data, nil
}

// FromShareableLink decodes a token straight into a BrandDNA without
// sanitizing or validation.
func FromShareableLink(token string) (brand.BrandDNA, error) {
	data, err := DecodeShareableLink(token)
	if err != nil {
		return brand.BrandDNA{}, err
	}

	b, err := FromJSON(data)
	if err != nil {
		return brand.BrandDNA{}, fmt.Errorf("%w: %v", ErrInvalidLink, err)
	}

	return b, nil
}
