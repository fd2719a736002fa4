package http

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
)

// Server drives the connection loop: parse, request interceptors,
// handler, response interceptors, write, close. Interceptor lists are
// append-only before Run and must not change once serving.
type Server struct {
	bind    string
	handler Handler
	logger  *slog.Logger

	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

func NewServer(bind string, handler Handler) *Server {
	return &Server{
		bind:    bind,
		handler: handler,
		logger:  slog.Default(),
	}
}

func (s *Server) WithLogger(logger *slog.Logger) *Server {
	s.logger = logger
	return s
}

func (s *Server) PushRequestInterceptor(interceptor RequestInterceptor) *Server {
	s.requestInterceptors = append(s.requestInterceptors, interceptor)
	return s
}

func (s *Server) PushResponseInterceptor(interceptor ResponseInterceptor) *Server {
	s.responseInterceptors = append(s.responseInterceptors, interceptor)
	return s
}

// Chain describes the configured pipeline, request interceptors first,
// the handler bracketed in the middle.
func (s *Server) Chain() string {
	names := make([]string, 0, len(s.requestInterceptors)+len(s.responseInterceptors)+1)
	for _, interceptor := range s.requestInterceptors {
		names = append(names, interceptor.Name())
	}
	names = append(names, "["+s.handler.Name()+"]")
	for _, interceptor := range s.responseInterceptors {
		names = append(names, interceptor.Name())
	}

	return strings.Join(names, " -> ")
}

// Run binds the listener and blocks on the accept loop. Every accepted
// connection is served on its own goroutine; a connection's failure
// never reaches the loop. There is no admission control and no
// timeout: a stalled client holds its goroutine.
func (s *Server) Run() error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("http: bind %s: %w", s.bind, err)
	}

	s.logger.Info("listening", "bind", s.bind)
	s.logger.Debug("pipeline configured", "chain", s.Chain())

	for {
		conn, err := listener.Accept()
		if err != nil {
			s.logger.Error("accept failed", "error", err)
			continue
		}

		go s.serveConn(conn)
	}
}

// serveConn runs exactly one exchange, then closes. No keep-alive.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	s.logger.Debug("connection accepted", "remote", conn.RemoteAddr())

	req := &Request{}
	if err := req.Read(bufio.NewReaderSize(conn, DefaultReadBufferSize)); err != nil {
		if errors.Is(err, io.EOF) {
			return
		}

		s.logger.Error("request rejected", "error", err)

		// Client-caused parse failures get a bare 400 before the
		// close; I/O failures just drop the connection.
		if errors.Is(err, ErrMalformedRequest) {
			_, _ = NewResponse(StatusBadRequest).WriteTo(conn)
		}
		return
	}

	s.logger.Info("request", "method", req.Method, "target", req.Target)

	var res *Response
	for _, interceptor := range s.requestInterceptors {
		flow := interceptor.Intercept(req)
		if broken, ok := flow.Broke(); ok {
			s.logger.Debug("short-circuit", "interceptor", interceptor.Name(), "status", broken.Status)
			res = broken
			break
		}

		req = flow.Request()
	}

	if res == nil {
		solved, err := s.handler.Solve(req)
		if err != nil {
			s.logger.Error("handler failed", "handler", s.handler.Name(), "error", err)
			solved = NewResponse(StatusInternalServerError)
		}
		res = solved
	}

	for _, interceptor := range s.responseInterceptors {
		res = interceptor.Intercept(req, res)
	}

	if _, err := res.WriteTo(conn); err != nil {
		s.logger.Error("response write failed", "remote", conn.RemoteAddr(), "error", err)
	}
}
