package hemit

import (
	"errors"
	"strings"
	"testing"
)

func renderStock(t *testing.T) []byte {
	t.Helper()
	emitter, err := NewEmitter(DefaultConfig())
	if err != nil {
		t.Fatalf("new emitter: %v", err)
	}
	out, err := emitter.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func TestVerifyStockResponse(t *testing.T) {
	resp, err := ParseResponse(renderStock(t))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if err := Verify(resp, ExpectationFor(DefaultConfig())); err != nil {
		t.Fatalf("verify: %v", err)
	}
}

func TestVerifyMismatches(t *testing.T) {
	stock := string(renderStock(t))
	body := stock[strings.Index(stock, "{"):]

	tests := []struct {
		name    string
		data    string
		wantMsg string
	}{
		{
			name:    "wrong status",
			data:    strings.Replace(stock, "200 OK", "500 Internal Server Error", 1),
			wantMsg: "status 500",
		},
		{
			name:    "wrong protocol",
			data:    strings.Replace(stock, "HTTP/1.1", "HTTP/1.0", 1),
			wantMsg: "protocol",
		},
		{
			name: "header order",
			data: strings.Replace(stock,
				"Content-Type: application/json\nContent-Length",
				"Content-Length", 1),
			wantMsg: "headers [",
		},
		{
			name:    "header value",
			data:    strings.Replace(stock, "Connection: close", "Connection: keep-alive", 1),
			wantMsg: "header Connection",
		},
		{
			name: "content length undercounts",
			data: "HTTP/1.1 200 OK\nContent-Type: application/json\nContent-Length: 10\nConnection: close\n\n" +
				body,
			wantMsg: "does not match body length",
		},
		{
			name:    "wrong message",
			data:    strings.Replace(stock, "integration_test", "integration_tst", 1),
			wantMsg: "does not match body length",
		},
		{
			name: "extra body key",
			data: "HTTP/1.1 200 OK\nContent-Type: application/json\nContent-Length: 40\nConnection: close\n\n" +
				`{"status":"success","message":"x","a":1}` + "\n",
			wantMsg: "body does not match schema",
		},
		{
			name: "message differs",
			data: "HTTP/1.1 200 OK\nContent-Type: application/json\nContent-Length: 33\nConnection: close\n\n" +
				`{"status":"failed","message":"x"}` + "\n",
			wantMsg: "body message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := ParseResponse([]byte(tt.data))
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			err = Verify(resp, ExpectationFor(DefaultConfig()))
			if !errors.Is(err, ErrVerification) {
				t.Fatalf("expected ErrVerification, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("error %q does not contain %q", err, tt.wantMsg)
			}
		})
	}
}

func TestVerifyCapture(t *testing.T) {
	stock := renderStock(t)
	exp := ExpectationFor(DefaultConfig())

	t.Run("pipes", func(t *testing.T) {
		c := Capture{Stdout: stock, Stderr: []byte(DefaultDiagnostic)}
		if err := VerifyCapture(c, exp); err != nil {
			t.Fatalf("verify capture: %v", err)
		}
	})

	t.Run("wrong diagnostic", func(t *testing.T) {
		c := Capture{Stdout: stock, Stderr: []byte("test error\n")}
		err := VerifyCapture(c, exp)
		if !errors.Is(err, ErrVerification) || !strings.Contains(err.Error(), "diagnostic") {
			t.Fatalf("expected diagnostic mismatch, got %v", err)
		}
	})

	t.Run("skip diagnostic", func(t *testing.T) {
		skip := exp
		skip.SkipDiagnostic = true
		c := Capture{Stdout: stock, Stderr: []byte("anything")}
		if err := VerifyCapture(c, skip); err != nil {
			t.Fatalf("verify capture: %v", err)
		}
	})

	t.Run("tty merged", func(t *testing.T) {
		merged := append(append([]byte(nil), stock...), DefaultDiagnostic...)
		c := Capture{Stdout: merged, TTY: true}
		if err := VerifyCapture(c, exp); err != nil {
			t.Fatalf("verify capture: %v", err)
		}
	})

	t.Run("malformed stdout", func(t *testing.T) {
		c := Capture{Stdout: []byte("garbage"), Stderr: []byte(DefaultDiagnostic)}
		if err := VerifyCapture(c, exp); !errors.Is(err, ErrMalformedResponse) {
			t.Fatalf("expected ErrMalformedResponse, got %v", err)
		}
	})
}
