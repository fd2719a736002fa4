package http

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
)

var (
	// ErrMalformedRequest marks parse failures a client caused and a
	// bare 400 may answer before the connection closes.
	ErrMalformedRequest = errors.New("http: malformed request")

	ErrNoHost = errors.New("http: request has no host header")
)

// Headers maps lower-cased field names to their last observed value.
type Headers map[string]string

func (h Headers) Set(name, value string) {
	h[strings.ToLower(name)] = value
}

func (h Headers) Get(name string) (string, bool) {
	value, found := h[strings.ToLower(name)]
	return value, found
}

// Request is one parsed exchange request. Target holds the raw
// path+query exactly as it appeared on the request line.
type Request struct {
	Method  Method
	Target  string
	Proto   string
	Headers Headers
	Body    []byte
}

func NewRequest(method Method, target string) *Request {
	return &Request{
		Method:  method,
		Target:  target,
		Proto:   Proto,
		Headers: make(Headers),
	}
}

// URL derives the absolute request URL. It needs a host header.
func (req *Request) URL() (*url.URL, error) {
	host, found := req.Headers.Get("host")
	if !found {
		return nil, ErrNoHost
	}

	return url.Parse("http://" + host + req.Target)
}

// Read parses one request off the wire: request line, header lines
// until a blank line, then exactly content-length body bytes. An empty
// stream reports io.EOF so callers can tell a clean close from a
// malformed request.
func (req *Request) Read(reader *bufio.Reader) error {
	line, err := reader.ReadString('\n')
	if err != nil {
		return err
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return io.EOF
	}

	parts := strings.Fields(line)
	if len(parts) < 3 {
		return fmt.Errorf("%w: request line %q", ErrMalformedRequest, line)
	}

	method, err := ParseMethod(parts[0])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	req.Method = method
	req.Target = parts[1]
	req.Proto = parts[2]
	req.Headers = make(Headers)

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("http: header read: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}

		// Lines without a ": " separator are skipped, not fatal.
		name, value, found := strings.Cut(line, ": ")
		if !found {
			continue
		}

		req.Headers.Set(name, value)
	}

	raw, found := req.Headers.Get("content-length")
	if !found {
		return nil
	}

	length, err := strconv.Atoi(raw)
	if err != nil || length < 0 {
		return fmt.Errorf("%w: content-length %q", ErrMalformedRequest, raw)
	}
	if length > MaxRequestSize {
		return fmt.Errorf("%w: content-length %d exceeds limit", ErrMalformedRequest, length)
	}

	req.Body = make([]byte, length)
	if _, err := io.ReadFull(reader, req.Body); err != nil {
		return fmt.Errorf("http: body read: %w", err)
	}

	return nil
}
