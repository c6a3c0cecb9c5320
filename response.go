package hemit

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

const (
	// HTTPVersion is the protocol written on the status line.
	HTTPVersion = "HTTP/1.1"

	HeaderContentType   = "Content-Type"
	HeaderContentLength = "Content-Length"
	HeaderConnection    = "Connection"

	ContentTypeJSON = "application/json"
	ConnectionClose = "close"
)

// Header is a single header line as written.
type Header struct {
	Name  string
	Value string
}

// Response is an HTTP response with headers kept in write order.
type Response struct {
	StatusCode int
	Headers    []Header
	Body       []byte
}

// NewJSONResponse frames body as a 200 response. Content-Length is taken from
// the body as given, so body must already be serialized.
func NewJSONResponse(body []byte) Response {
	return Response{
		StatusCode: http.StatusOK,
		Headers: []Header{
			{Name: HeaderContentType, Value: ContentTypeJSON},
			{Name: HeaderContentLength, Value: strconv.Itoa(len(body))},
			{Name: HeaderConnection, Value: ConnectionClose},
		},
		Body: body,
	}
}

// StatusLine renders the first line of r without a terminator.
func (r Response) StatusLine() string {
	return fmt.Sprintf("%s %d %s", HTTPVersion, r.StatusCode, http.StatusText(r.StatusCode))
}

// Header returns the value of the first header matching name case-insensitively.
func (r Response) Header(name string) (string, bool) {
	for _, h := range r.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}

	return "", false
}

// HeaderNames returns header names in write order.
func (r Response) HeaderNames() []string {
	names := make([]string, 0, len(r.Headers))
	for _, h := range r.Headers {
		names = append(names, h.Name)
	}

	return names
}

// Marshal renders r line by line with eol. The body is followed by eol too;
// that terminator is not part of Content-Length.
func (r Response) Marshal(eol LineEnding) []byte {
	nl := eol.String()

	var b bytes.Buffer

	b.WriteString(r.StatusLine())
	b.WriteString(nl)

	for _, h := range r.Headers {
		b.WriteString(h.Name)
		b.WriteString(": ")
		b.WriteString(h.Value)
		b.WriteString(nl)
	}

	b.WriteString(nl)
	b.Write(r.Body)
	b.WriteString(nl)

	return b.Bytes()
}
