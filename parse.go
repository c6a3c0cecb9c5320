package hemit

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// ParsedResponse is a response read back from captured output.
type ParsedResponse struct {
	Response

	Proto      string
	StatusText string
	// Trailing holds whatever followed the Content-Length bytes of the body.
	Trailing []byte
}

// ParseResponse reads a framed response from data. Lines may end in LF or
// CRLF. Without a Content-Length header the body runs to the end of data.
func ParseResponse(data []byte) (*ParsedResponse, error) {
	line, rest, ok := cutLine(data)
	if !ok {
		return nil, fmt.Errorf("%w: missing status line", ErrMalformedResponse)
	}

	proto, code, text, err := parseStatusLine(line)
	if err != nil {
		return nil, err
	}

	resp := &ParsedResponse{
		Response:   Response{StatusCode: code},
		Proto:      proto,
		StatusText: text,
	}

	for {
		line, rest, ok = cutLine(rest)
		if !ok {
			return nil, fmt.Errorf("%w: missing blank line after headers", ErrMalformedResponse)
		}

		if line == "" {
			break
		}

		name, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("%w: malformed header line %q", ErrMalformedResponse, line)
		}

		resp.Headers = append(resp.Headers, Header{Name: name, Value: strings.TrimSpace(value)})
	}

	raw, ok := resp.Header(HeaderContentLength)
	if !ok {
		resp.Body = rest

		return resp, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: invalid content-length %q", ErrMalformedResponse, raw)
	}

	if n > len(rest) {
		return nil, fmt.Errorf("%w: body shorter than content-length: want %d, got %d", ErrMalformedResponse, n, len(rest))
	}

	resp.Body = rest[:n]
	resp.Trailing = rest[n:]

	return resp, nil
}

func cutLine(b []byte) (string, []byte, bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return "", b, false
	}

	return string(bytes.TrimSuffix(b[:i], []byte("\r"))), b[i+1:], true
}

func parseStatusLine(line string) (string, int, string, error) {
	proto, rest, ok := strings.Cut(line, " ")
	if !ok || !strings.HasPrefix(proto, "HTTP/") {
		return "", 0, "", fmt.Errorf("%w: bad status line %q", ErrMalformedResponse, line)
	}

	rawCode, text, _ := strings.Cut(rest, " ")

	code, err := strconv.Atoi(rawCode)
	if err != nil || len(rawCode) != 3 {
		return "", 0, "", fmt.Errorf("%w: bad status code %q", ErrMalformedResponse, rawCode)
	}

	return proto, code, text, nil
}
