package hemit

import (
	"errors"
	"testing"
)

func TestParseResponseRoundTrip(t *testing.T) {
	for _, eol := range []LineEnding{LineEndingLF, LineEndingCRLF} {
		t.Run(string(eol), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.LineEnding = eol

			emitter, err := NewEmitter(cfg)
			if err != nil {
				t.Fatalf("new emitter: %v", err)
			}
			out, err := emitter.Render()
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			body, err := NewPayload(cfg).Encode()
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			resp, err := ParseResponse(out)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			if resp.Proto != HTTPVersion || resp.StatusCode != 200 || resp.StatusText != "OK" {
				t.Fatalf("status line = %s %d %s", resp.Proto, resp.StatusCode, resp.StatusText)
			}
			if len(resp.Headers) != 3 {
				t.Fatalf("headers = %v", resp.Headers)
			}
			if string(resp.Body) != string(body) {
				t.Fatalf("body = %q, want %q", resp.Body, body)
			}
			if string(resp.Trailing) != eol.String() {
				t.Fatalf("trailing = %q, want %q", resp.Trailing, eol.String())
			}
		})
	}
}

func TestParseResponseWithoutContentLength(t *testing.T) {
	resp, err := ParseResponse([]byte("HTTP/1.1 200 OK\nContent-Type: text/plain\n\nrest of stream"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if string(resp.Body) != "rest of stream" {
		t.Fatalf("body = %q", resp.Body)
	}
	if len(resp.Trailing) != 0 {
		t.Fatalf("trailing = %q", resp.Trailing)
	}
}

func TestParseResponseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty", data: ""},
		{name: "no protocol", data: "200 OK\n\n"},
		{name: "bad code", data: "HTTP/1.1 2x0 OK\n\n"},
		{name: "short code", data: "HTTP/1.1 20 OK\n\n"},
		{name: "no blank line", data: "HTTP/1.1 200 OK\nConnection: close\n"},
		{name: "header without colon", data: "HTTP/1.1 200 OK\nbroken\n\n"},
		{name: "empty header name", data: "HTTP/1.1 200 OK\n: value\n\n"},
		{name: "bad content length", data: "HTTP/1.1 200 OK\nContent-Length: ten\n\n"},
		{name: "negative content length", data: "HTTP/1.1 200 OK\nContent-Length: -1\n\n"},
		{name: "short body", data: "HTTP/1.1 200 OK\nContent-Length: 10\n\nabc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseResponse([]byte(tt.data))
			if !errors.Is(err, ErrMalformedResponse) {
				t.Fatalf("expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}
