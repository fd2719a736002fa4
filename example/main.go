package main

import (
	"log"
	"log/slog"

	"go.opentelemetry.io/contrib/bridges/otelslog"

	"github.com/stately-go/stately/http"
)

// DummyHandler answers every request with a fixed body, useful for
// poking at the engine without a filesystem root.
type DummyHandler struct{}

func (DummyHandler) Name() string {
	return "DummyHandler"
}

func (DummyHandler) Solve(req *http.Request) (*http.Response, error) {
	slog.Info("request", "method", req.Method, "target", req.Target)

	res := http.NewResponse(http.StatusOK)
	res.Headers.Set("content-type", "text/plain")
	res.Body = []byte("Everything is okay :)")

	return res, nil
}

func main() {
	slog.SetDefault(otelslog.NewLogger("stately-dummy"))

	server := http.NewServer("127.0.0.1:4444", DummyHandler{}).
		PushRequestInterceptor(http.RequestIDInterceptor{}).
		PushResponseInterceptor(http.RequestIDMirrorInterceptor{})

	log.Fatalln(server.Run())
}
