// Package http implements a minimal HTTP/1.1 request/response engine:
// a wire codec, a two-stage interceptor pipeline around one terminal
// handler, and a blocking accept loop serving one exchange per
// connection.
package http

const (
	// Proto is the only protocol version responses are written with.
	Proto = "HTTP/1.1"

	MaxRequestSize        = 2 * 1024 * 1024 // 2MB
	DefaultReadBufferSize = 4096            // 4kB
)

// Handler produces the substantive response for a request that no
// request interceptor short-circuited. A returned error is recovered
// into a 500 response by the server, never surfaced on the wire.
type Handler interface {
	Name() string
	Solve(req *Request) (*Response, error)
}

// RequestInterceptor observes a request before the handler runs. It
// either lets the (possibly transformed) request continue down the
// chain or breaks with a terminal response.
type RequestInterceptor interface {
	Name() string
	Intercept(req *Request) Flow
}

// ResponseInterceptor observes the in-flight response once one exists,
// whether it came from the handler or from a break. The request is
// read-only context.
type ResponseInterceptor interface {
	Name() string
	Intercept(req *Request, res *Response) *Response
}

// Flow is the outcome of a request interceptor.
type Flow struct {
	req *Request
	res *Response
}

// Continue passes req on to the next pipeline stage.
func Continue(req *Request) Flow {
	return Flow{req: req}
}

// Break short-circuits the remaining request interceptors and the
// handler with a terminal response.
func Break(res *Response) Flow {
	return Flow{res: res}
}

func (f Flow) Request() *Request {
	return f.req
}

// Broke reports whether the flow carries a terminal response.
func (f Flow) Broke() (*Response, bool) {
	return f.res, f.res != nil
}
