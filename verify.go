package hemit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// DefaultBodySchema accepts exactly the fixture payload shape.
const DefaultBodySchema = `{
  "type": "object",
  "properties": {
    "status": {"type": "string"},
    "message": {"type": "string"}
  },
  "required": ["status", "message"],
  "additionalProperties": false
}`

// Expectation describes what a harness accepts from a fixture.
type Expectation struct {
	StatusCode int
	// Headers lists expected headers in order. An empty Value matches any value.
	Headers    []Header
	BodySchema string
	Status     string
	Message    string
	Diagnostic string
	// SkipDiagnostic disables the error sink comparison.
	SkipDiagnostic bool
}

// ExpectationFor returns the expectation matching an Emitter built from cfg.
func ExpectationFor(cfg Config) Expectation {
	return Expectation{
		StatusCode: http.StatusOK,
		Headers: []Header{
			{Name: HeaderContentType, Value: ContentTypeJSON},
			{Name: HeaderContentLength},
			{Name: HeaderConnection, Value: ConnectionClose},
		},
		BodySchema: DefaultBodySchema,
		Status:     StatusSuccess,
		Message:    NewPayload(cfg).Message,
		Diagnostic: cfg.Diagnostic,
	}
}

// Verify checks resp against exp and returns every mismatch joined.
func Verify(resp *ParsedResponse, exp Expectation) error {
	var errs []error

	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrVerification, fmt.Sprintf(format, args...)))
	}

	if resp.Proto != HTTPVersion {
		fail("protocol %q, want %q", resp.Proto, HTTPVersion)
	}

	if resp.StatusCode != exp.StatusCode {
		fail("status %d, want %d", resp.StatusCode, exp.StatusCode)
	}

	want := make([]string, 0, len(exp.Headers))
	for _, h := range exp.Headers {
		want = append(want, h.Name)
	}

	if got := resp.HeaderNames(); !slices.Equal(got, want) {
		fail("headers [%s], want [%s]", strings.Join(got, ", "), strings.Join(want, ", "))
	}

	for _, h := range exp.Headers {
		if h.Value == "" {
			continue
		}

		if got, _ := resp.Header(h.Name); got != h.Value {
			fail("header %s is %q, want %q", h.Name, got, h.Value)
		}
	}

	body := writtenBody(resp)

	if raw, ok := resp.Header(HeaderContentLength); !ok {
		fail("missing %s", HeaderContentLength)
	} else if raw != strconv.Itoa(len(body)) {
		fail("%s %s does not match body length %d", HeaderContentLength, raw, len(body))
	}

	if err := validateBody(exp.BodySchema, body); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrVerification, err))

		return errors.Join(errs...)
	}

	var payload Payload
	if err := json.Unmarshal(body, &payload); err != nil {
		fail("decode body: %v", err)

		return errors.Join(errs...)
	}

	if payload.Status != exp.Status {
		fail("body status %q, want %q", payload.Status, exp.Status)
	}

	if payload.Message != exp.Message {
		fail("body message %q, want %q", payload.Message, exp.Message)
	}

	return errors.Join(errs...)
}

// VerifyCapture parses a fixture's captured streams and verifies both.
// Under a TTY the diagnostic shares the terminal with the response and is
// expected as a suffix of stdout.
func VerifyCapture(c Capture, exp Expectation) error {
	stdout, stderr := c.Stdout, c.Stderr

	if c.TTY {
		stderr = nil

		if exp.Diagnostic != "" && bytes.HasSuffix(stdout, []byte(exp.Diagnostic)) {
			cut := len(stdout) - len(exp.Diagnostic)
			stdout, stderr = stdout[:cut], stdout[cut:]
		}
	}

	resp, err := ParseResponse(stdout)
	if err != nil {
		return err
	}

	var errs []error
	if err := Verify(resp, exp); err != nil {
		errs = append(errs, err)
	}

	if !exp.SkipDiagnostic && string(stderr) != exp.Diagnostic {
		errs = append(errs, fmt.Errorf("%w: diagnostic %q, want %q", ErrVerification, stderr, exp.Diagnostic))
	}

	return errors.Join(errs...)
}

// writtenBody is the body as the emitter wrote it: everything after the
// header block, minus one line terminator.
func writtenBody(resp *ParsedResponse) []byte {
	all := make([]byte, 0, len(resp.Body)+len(resp.Trailing))
	all = append(all, resp.Body...)
	all = append(all, resp.Trailing...)

	if trimmed, ok := bytes.CutSuffix(all, []byte("\n")); ok {
		return bytes.TrimSuffix(trimmed, []byte("\r"))
	}

	return all
}

func validateBody(schema string, body []byte) error {
	if strings.TrimSpace(schema) == "" {
		return nil
	}

	schemaLoader := gojsonschema.NewStringLoader(schema)
	docLoader := gojsonschema.NewBytesLoader(body)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("validate body schema: %w", err)
	}

	if result.Valid() {
		return nil
	}

	errs := make([]string, 0, len(result.Errors()))
	for _, err := range result.Errors() {
		errs = append(errs, err.String())
	}

	return fmt.Errorf("%w: %s", ErrBodySchemaInvalid, strings.Join(errs, "; "))
}
