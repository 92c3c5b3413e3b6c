// Package httpapi assembles the public HTTP surface.
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	dochandler "attesta/internal/document/handler"
	poahandler "attesta/internal/proofofaddress/handler"
	"attesta/pkg/platform/middleware/auth"
	"attesta/pkg/platform/middleware/metadata"
)

// NewRouter wires all endpoints. Issuance and mutation require an
// authenticated clerk; verification and reads are open to inspector tooling.
func NewRouter(documents *dochandler.Handler, proofs *poahandler.Handler, validator *auth.Validator, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(metadata.RequestMetadata)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(validator, logger))
		proofs.RegisterProtected(r)
		r.Patch("/documents/{documentID}", documents.HandleCorrectMetadata)
		r.Delete("/documents/{documentID}", documents.HandleDelete)
	})

	r.Group(func(r chi.Router) {
		proofs.RegisterPublic(r)
		r.Get("/documents", documents.HandleList)
		r.Get("/documents/{documentID}", documents.HandleGet)
		r.Get("/documents/ref/{reference}", documents.HandleGetByReference)
		r.Post("/documents/verify", documents.HandleVerify)
	})

	return r
}
