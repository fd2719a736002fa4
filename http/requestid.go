package http

import "github.com/google/uuid"

const requestIDHeader = "x-request-id"

// RequestIDInterceptor stamps requests that arrive without an
// x-request-id header.
type RequestIDInterceptor struct{}

func (RequestIDInterceptor) Name() string {
	return "RequestIDInterceptor"
}

func (RequestIDInterceptor) Intercept(req *Request) Flow {
	if _, found := req.Headers.Get(requestIDHeader); !found {
		req.Headers.Set(requestIDHeader, uuid.NewString())
	}

	return Continue(req)
}

// RequestIDMirrorInterceptor copies the request id onto the response
// so clients can correlate the exchange.
type RequestIDMirrorInterceptor struct{}

func (RequestIDMirrorInterceptor) Name() string {
	return "RequestIDMirrorInterceptor"
}

func (RequestIDMirrorInterceptor) Intercept(req *Request, res *Response) *Response {
	if id, found := req.Headers.Get(requestIDHeader); found {
		res.Headers.Set(requestIDHeader, id)
	}

	return res
}
