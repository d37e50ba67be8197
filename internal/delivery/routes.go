package delivery

import (
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(
	r chi.Router,
	hConvert *ConvertHandler,
	hInfo *InfoHandler,
) {
	// --- info ---
	r.With(httputil.RecoverMiddleware).Get("/", hInfo.Root)
	r.With(httputil.RecoverMiddleware).Get("/health", hInfo.Health)

	// --- conversion ---
	cr := r.With(
		httputil.RecoverMiddleware,
		httprate.LimitByIP(30, time.Minute),
	)
	// chi treats the trailing slash as a separate route and existing
	// clients call /convert/ with it
	cr.Post("/convert", hConvert.Convert)
	cr.Post("/convert/", hConvert.Convert)
}
