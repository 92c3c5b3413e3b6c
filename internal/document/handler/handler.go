// Package handler wires the audit-record query surface to HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"attesta/internal/document/models"
	"attesta/internal/document/service"
	id "attesta/pkg/domain"
	dErrors "attesta/pkg/domain-errors"
	"attesta/pkg/platform/httputil"
	"attesta/pkg/requestcontext"
)

// Service is the slice of the document service the HTTP layer consumes.
type Service interface {
	Get(ctx context.Context, documentID id.DocumentID) (*models.IssuedDocument, error)
	GetByReference(ctx context.Context, reference string) (*models.IssuedDocument, error)
	ListByType(ctx context.Context, docType models.DocumentType) ([]*models.IssuedDocument, error)
	ListBySubject(ctx context.Context, subject models.SubjectRef) ([]*models.IssuedDocument, error)
	CorrectMetadata(ctx context.Context, documentID id.DocumentID, correction models.MetadataCorrection) (*models.IssuedDocument, error)
	Delete(ctx context.Context, documentID id.DocumentID) (bool, error)
	Verify(ctx context.Context, req service.VerifyRequest) (*service.VerifyResult, error)
}

// Handler is the thin HTTP layer over the document service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts document endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/documents", h.HandleList)
	r.Get("/documents/{documentID}", h.HandleGet)
	r.Get("/documents/ref/{reference}", h.HandleGetByReference)
	r.Patch("/documents/{documentID}", h.HandleCorrectMetadata)
	r.Delete("/documents/{documentID}", h.HandleDelete)
	r.Post("/documents/verify", h.HandleVerify)
}

// HandleGet handles GET /documents/{documentID}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	documentID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	doc, err := h.service.Get(r.Context(), documentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleGetByReference handles GET /documents/ref/{reference}.
func (h *Handler) HandleGetByReference(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.GetByReference(r.Context(), chi.URLParam(r, "reference"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleList handles GET /documents filtered either by type tag or by the
// polymorphic subject reference.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	if query.Has("related_id") || query.Has("related_type") {
		subject, err := models.DecodeSubject(query.Get("related_id"), query.Get("related_type"))
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		documents, err := h.service.ListBySubject(ctx, subject)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, documents)
		return
	}

	// An empty type parameter is a legitimate exact-match query.
	documents, err := h.service.ListByType(ctx, models.DocumentType(query.Get("type")))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, documents)
}

// HandleCorrectMetadata handles PATCH /documents/{documentID}.
func (h *Handler) HandleCorrectMetadata(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	documentID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[CorrectMetadataRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	correction, err := req.ToCorrection()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	doc, err := h.service.CorrectMetadata(ctx, documentID, correction)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "document metadata corrected",
		"request_id", requestID,
		"document_id", documentID,
	)
	httputil.WriteJSON(w, http.StatusOK, doc)
}

// HandleDelete handles DELETE /documents/{documentID}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	documentID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	existed, err := h.service.Delete(r.Context(), documentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if !existed {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "document not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleVerify handles POST /documents/verify. A failed check is reported in
// the response body, not as an HTTP error.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[VerifyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Verify(ctx, service.VerifyRequest{
		Reference:    req.Reference,
		CheckContent: req.CheckContent,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "document verified",
		"request_id", requestID,
		"reference", req.Reference,
		"outcome", result.Outcome,
	)
	httputil.WriteJSON(w, http.StatusOK, result)
}
