// Package dataurl decodes and encodes RFC 2397 data: URIs, the form in which
// pasted images arrive inside note markup before they are externalized.
package dataurl

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/url"
	"strings"
)

// ErrNotDataURL is returned for sources that are not data: URIs.
var ErrNotDataURL = errors.New("not a data URL")

// DataURL is a decoded data: URI.
type DataURL struct {
	MimeType string
	Params   map[string]string
	Data     []byte
}

// IsDataURL reports whether s looks like a data: URI.
func IsDataURL(s string) bool {
	return len(s) >= 5 && strings.EqualFold(s[:5], "data:")
}

// Decode parses a data: URI. A missing media type defaults to
// text/plain;charset=US-ASCII as RFC 2397 says.
func Decode(s string) (*DataURL, error) {
	if !IsDataURL(s) {
		return nil, ErrNotDataURL
	}
	header, payload, ok := strings.Cut(s[5:], ",")
	if !ok {
		return nil, fmt.Errorf("data URL has no payload separator")
	}

	isBase64 := false
	if h, found := strings.CutSuffix(header, ";base64"); found {
		header = h
		isBase64 = true
	}

	d := &DataURL{MimeType: "text/plain", Params: map[string]string{"charset": "US-ASCII"}}
	if header != "" {
		mt, params, err := mime.ParseMediaType(header)
		if err != nil {
			return nil, fmt.Errorf("parsing media type %q: %w", header, err)
		}
		d.MimeType = mt
		d.Params = params
	}

	if isBase64 {
		data, err := decodeBase64(payload)
		if err != nil {
			return nil, fmt.Errorf("decoding base64 payload: %w", err)
		}
		d.Data = data
		return d, nil
	}

	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("unescaping payload: %w", err)
	}
	d.Data = []byte(data)
	return d, nil
}

// decodeBase64 accepts padded and unpadded payloads and ignores whitespace
// that editors sometimes insert into long lines.
func decodeBase64(payload string) ([]byte, error) {
	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, payload)
	if unescaped, err := url.PathUnescape(payload); err == nil {
		payload = unescaped
	}
	if strings.HasSuffix(payload, "=") {
		return base64.StdEncoding.DecodeString(payload)
	}
	return base64.RawStdEncoding.DecodeString(payload)
}

// Encode builds a base64 data: URI.
func Encode(mimeType string, data []byte) string {
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
