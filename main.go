package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/stately-go/stately/http"
	"github.com/stately-go/stately/mimetype"
	"github.com/stately-go/stately/static"
)

const name = "github.com/stately-go/stately"

func main() {
	if err := run(context.Background()); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context) error {
	// The classification API key ships via .env, never the binary.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	otelShutdown, err := setupOTelSDK(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = otelShutdown(context.Background())
	}()

	logger := otelslog.NewLogger(name)
	slog.SetDefault(logger)

	bind := envOr("STATELY_BIND", "0.0.0.0:4444")
	root := envOr("STATELY_ROOT", ".")

	assets := static.NewAssetStore()
	renderer, err := static.NewRenderer(assets)
	if err != nil {
		return err
	}

	handler, err := static.NewStaticFileHandler(root, true, assets, renderer)
	if err != nil {
		return err
	}

	if apiKey := os.Getenv("RAPIDAPI_KEY"); apiKey != "" {
		details := mimetype.NewClient(apiKey)
		handler.WithClassifier(func(ext string) string {
			return details.MimeByExt(context.Background(), ext)
		})
	}

	requests, err := otel.Meter(name).Int64Counter("stately.requests",
		metric.WithDescription("Requests served, by method and status"),
		metric.WithUnit("{request}"))
	if err != nil {
		return err
	}

	server := http.NewServer(bind, tracedHandler{inner: handler}).
		PushRequestInterceptor(http.RequestIDInterceptor{}).
		PushRequestInterceptor(static.OnlyGetRequestInterceptor{}).
		PushResponseInterceptor(http.RequestIDMirrorInterceptor{}).
		PushResponseInterceptor(static.NoBodyOnHeadResponseInterceptor{}).
		PushResponseInterceptor(static.NewNotFoundRenderInterceptor(renderer)).
		PushResponseInterceptor(metricsInterceptor{requests: requests})

	logger.InfoContext(ctx, "starting static file server", "bind", bind, "root", root)

	return server.Run()
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// tracedHandler wraps the terminal handler with one span per solve.
type tracedHandler struct {
	inner http.Handler
}

func (t tracedHandler) Name() string {
	return t.inner.Name()
}

func (t tracedHandler) Solve(req *http.Request) (*http.Response, error) {
	_, span := otel.Tracer(name).Start(context.Background(), "solve",
		trace.WithAttributes(
			attribute.String("http.request.method", string(req.Method)),
			attribute.String("url.path", req.Target),
		))
	defer span.End()

	return t.inner.Solve(req)
}

// metricsInterceptor counts every finished exchange.
type metricsInterceptor struct {
	requests metric.Int64Counter
}

func (metricsInterceptor) Name() string {
	return "MetricsInterceptor"
}

func (m metricsInterceptor) Intercept(req *http.Request, res *http.Response) *http.Response {
	m.requests.Add(context.Background(), 1,
		metric.WithAttributes(
			attribute.String("method", string(req.Method)),
			attribute.Int("status", int(res.Status)),
		))

	return res
}
