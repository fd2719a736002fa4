package static

import (
	"log/slog"

	"github.com/stately-go/stately/http"
)

var allowedMethods = []http.Method{http.MethodGet, http.MethodHead, http.MethodOptions}

// OnlyGetRequestInterceptor restricts the server to the read-only
// method set: GET and HEAD pass, OPTIONS is answered directly, and
// everything else breaks with 405.
type OnlyGetRequestInterceptor struct{}

func (OnlyGetRequestInterceptor) Name() string {
	return "OnlyGetRequestInterceptor"
}

func (OnlyGetRequestInterceptor) Intercept(req *http.Request) http.Flow {
	switch req.Method {
	case http.MethodGet, http.MethodHead:
		return http.Continue(req)
	case http.MethodOptions:
		return http.Break(http.Allowed(allowedMethods...))
	default:
		return http.Break(http.NewResponse(http.StatusMethodNotAllowed))
	}
}

// NoBodyOnHeadResponseInterceptor strips the body off responses to
// HEAD requests, leaving the remaining headers untouched.
type NoBodyOnHeadResponseInterceptor struct{}

func (NoBodyOnHeadResponseInterceptor) Name() string {
	return "NoBodyOnHeadResponseInterceptor"
}

func (NoBodyOnHeadResponseInterceptor) Intercept(req *http.Request, res *http.Response) *http.Response {
	if req.Method == http.MethodHead {
		res.CleanBody()
	}

	return res
}

// NotFoundRenderResponseInterceptor substitutes the rendered not-found
// page for the body of every 404 response, discarding whatever body
// was there. Install it last.
type NotFoundRenderResponseInterceptor struct {
	renderer *Renderer
	logger   *slog.Logger
}

func NewNotFoundRenderInterceptor(renderer *Renderer) *NotFoundRenderResponseInterceptor {
	return &NotFoundRenderResponseInterceptor{renderer: renderer, logger: slog.Default()}
}

func (i *NotFoundRenderResponseInterceptor) Name() string {
	return "NotFoundRenderResponseInterceptor"
}

func (i *NotFoundRenderResponseInterceptor) Intercept(req *http.Request, res *http.Response) *http.Response {
	if res.Status != http.StatusNotFound {
		return res
	}

	body, err := i.renderer.Render(NotFoundTemplate, nil)
	if err != nil {
		i.logger.Error("not-found render failed", "error", err)
		return res
	}

	res.Body = body
	res.Headers.Set("content-type", "text/html; charset=utf-8")

	return res
}
