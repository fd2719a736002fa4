package http

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Response is one exchange response. Body length is never trusted from
// Headers: serialization always synthesizes content-length.
type Response struct {
	Status  Status
	Headers Headers
	Body    []byte
}

func NewResponse(status Status) *Response {
	return &Response{
		Status:  status,
		Headers: make(Headers),
	}
}

func NotFound() *Response {
	return NewResponse(StatusNotFound)
}

// Redirect builds a permanent redirect to the given location.
func Redirect(location string) *Response {
	res := NewResponse(StatusMovedPermanently)
	res.Headers.Set("location", location)
	return res
}

// Allowed builds the 204 answer to an OPTIONS probe, listing the
// accepted methods.
func Allowed(allowed ...Method) *Response {
	tokens := make([]string, len(allowed))
	for i, method := range allowed {
		tokens[i] = string(method)
	}

	res := NewResponse(StatusNoContent)
	res.Headers.Set("allow", strings.Join(tokens, ", "))
	return res
}

func (res *Response) WithHeader(name, value string) *Response {
	res.Headers.Set(name, value)
	return res
}

func (res *Response) WithBody(body []byte) *Response {
	res.Body = body
	return res
}

func (res *Response) CleanBody() {
	res.Body = nil
}

// Bytes serializes the response: status line, header lines in map
// order, a synthesized content-length, a blank line, then the body.
// Bodies are never chunked.
func (res *Response) Bytes() []byte {
	var buf bytes.Buffer

	buf.WriteString(Proto)
	buf.WriteByte(' ')
	buf.WriteString(strconv.Itoa(int(res.Status)))
	buf.WriteByte(' ')
	buf.WriteString(res.Status.Reason())
	buf.WriteString("\r\n")

	for name, value := range res.Headers {
		if name == "content-length" {
			continue
		}
		buf.WriteString(name)
		buf.WriteString(": ")
		buf.WriteString(value)
		buf.WriteString("\r\n")
	}

	buf.WriteString("content-length: ")
	buf.WriteString(strconv.Itoa(len(res.Body)))
	buf.WriteString("\r\n\r\n")

	buf.Write(res.Body)

	return buf.Bytes()
}

func (res *Response) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(res.Bytes())
	return int64(n), err
}
