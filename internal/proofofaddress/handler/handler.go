// Package handler exposes the proof-of-address view over HTTP.
package handler

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"attesta/internal/proofofaddress"
	id "attesta/pkg/domain"
	"attesta/pkg/platform/httputil"
	"attesta/pkg/requestcontext"
)

// Handler is the thin HTTP layer over the proof-of-address view.
type Handler struct {
	service *proofofaddress.Service
	logger  *slog.Logger
}

func New(service *proofofaddress.Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts all view endpoints on a single router.
func (h *Handler) Register(r chi.Router) {
	h.RegisterProtected(r)
	h.RegisterPublic(r)
}

// RegisterProtected mounts the endpoints that require an authenticated clerk.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Post("/documents/proof-of-address", h.HandleIssue)
}

// RegisterPublic mounts the read endpoints open to inspector tooling.
func (h *Handler) RegisterPublic(r chi.Router) {
	r.Get("/documents/proof-of-address/resident/{residentID}", h.HandleListByResident)
	r.Get("/documents/proof-of-address/residence/{residenceID}", h.HandleListByResidence)
}

// IssueRequest is the POST body for issuance.
type IssueRequest struct {
	ResidentID string `json:"resident_id"`
}

// IssueResponse hands the caller the printed fields and the rendered content.
type IssueResponse struct {
	Certificate *proofofaddress.ProofOfAddress `json:"certificate"`
	// Content is the rendered document body, base64-encoded for transport.
	Content string `json:"content"`
}

// HandleIssue handles POST /documents/proof-of-address.
func (h *Handler) HandleIssue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[IssueRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	residentID, err := id.ParseResidentID(req.ResidentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.Issue(ctx, residentID)
	if err != nil {
		h.logger.ErrorContext(ctx, "proof of address issuance failed",
			"request_id", requestID,
			"resident_id", req.ResidentID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, IssueResponse{
		Certificate: result.Certificate,
		Content:     base64.StdEncoding.EncodeToString(result.Content),
	})
}

// HandleListByResident handles GET /documents/proof-of-address/resident/{residentID}.
func (h *Handler) HandleListByResident(w http.ResponseWriter, r *http.Request) {
	residentID, err := id.ParseResidentID(chi.URLParam(r, "residentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	certificates, err := h.service.ListByResident(r.Context(), residentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, certificates)
}

// HandleListByResidence handles GET /documents/proof-of-address/residence/{residenceID}.
func (h *Handler) HandleListByResidence(w http.ResponseWriter, r *http.Request) {
	residenceID, err := id.ParseResidenceID(chi.URLParam(r, "residenceID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	certificates, err := h.service.ListByResidence(r.Context(), residenceID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, certificates)
}
