package transport

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
)

// Transport wraps an http.RoundTripper to stamp every request with the
// configured User-Agent and the current bearer token, and to transparently
// decompress gzip, brotli and zstd response bodies.
type Transport struct {
	base      http.RoundTripper
	userAgent string
	token     func() string
}

// New creates a Transport over base. token is consulted per request; while it
// returns an empty string no Authorization header is sent.
func New(base http.RoundTripper, userAgent string, token func() string) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &Transport{base: base, userAgent: userAgent, token: token}
}

// RoundTrip executes a single HTTP transaction.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone the request to avoid modifying the original
	req = cloneRequest(req)

	if t.userAgent != "" && req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", t.userAgent)
	}
	if t.token != nil {
		if token := t.token(); token != "" && req.Header.Get("Authorization") == "" {
			req.Header.Set("Authorization", token)
		}
	}
	if req.Header.Get("Accept-Encoding") == "" {
		req.Header.Set("Accept-Encoding", "gzip, br, zstd")
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Nothing to decompress for HEAD, 204 and 304 responses
	if resp.Body == nil || resp.Body == http.NoBody {
		return resp, nil
	}

	var reader io.ReadCloser
	switch contentEncoding(resp.Header) {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
	case "br":
		reader = io.NopCloser(brotli.NewReader(resp.Body))
	case "zstd":
		zr, err := zstd.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, err
		}
		reader = zr.IOReadCloser()
	default:
		// Identity or unknown encoding, return response as-is
		return resp, nil
	}

	resp.Body = &decompressedBody{reader: reader, original: resp.Body}

	// The decoded body no longer matches these headers
	resp.Header.Del("Content-Encoding")
	resp.Header.Del("Content-Length")
	resp.ContentLength = -1

	return resp, nil
}

// decompressedBody closes both the decompressor and the original body.
type decompressedBody struct {
	reader   io.ReadCloser
	original io.ReadCloser
}

func (d *decompressedBody) Read(p []byte) (int, error) {
	return d.reader.Read(p)
}

func (d *decompressedBody) Close() error {
	readerErr := d.reader.Close()
	if bodyErr := d.original.Close(); readerErr == nil {
		return bodyErr
	}
	return readerErr
}

// cloneRequest creates a shallow copy of the request with its own headers.
func cloneRequest(req *http.Request) *http.Request {
	r := new(http.Request)
	*r = *req

	r.Header = make(http.Header, len(req.Header))
	for k, v := range req.Header {
		r.Header[k] = append([]string(nil), v...)
	}

	return r
}

// contentEncoding returns the outermost encoding of the response body,
// normalized to lowercase. Comma-separated lists apply encodings in order,
// so the last entry must be undone first.
func contentEncoding(header http.Header) string {
	value := strings.TrimSpace(header.Get("Content-Encoding"))
	if value == "" {
		return ""
	}
	parts := strings.Split(value, ",")
	return strings.ToLower(strings.TrimSpace(parts[len(parts)-1]))
}
