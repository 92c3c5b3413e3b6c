package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"attesta/internal/audit"
	"attesta/internal/document/models"
	"attesta/internal/document/render"
	"attesta/internal/document/verify"
	id "attesta/pkg/domain"
	dErrors "attesta/pkg/domain-errors"
	"attesta/pkg/platform/sentinel"
	"attesta/pkg/requestcontext"
)

// Issue runs the issuance pipeline: resolve subject, render, allocate a
// reference, derive the verification code, hash the rendered bytes, persist
// one audit record. Every failure aborts before persistence; only a duplicate
// reference is retried, and the retry re-runs allocation, derivation, and
// hashing because all three are tied to the discarded reference number.
func (s *Service) Issue(ctx context.Context, req IssueRequest) (*IssueResult, error) {
	ctx, span := s.tracer.Start(ctx, "document.Issue")
	defer span.End()
	start := time.Now()

	actor := requestcontext.UserID(ctx)
	if actor.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "issuance requires an acting principal")
	}
	if req.Type == "" {
		// The store itself is permissive about an empty tag; the issuance
		// boundary is not.
		s.metrics.IncrementIssuanceFailure("validate")
		return nil, dErrors.New(dErrors.CodeValidation, "document type is required")
	}
	allocator, ok := s.allocators[req.Type]
	if !ok {
		s.metrics.IncrementIssuanceFailure("validate")
		return nil, dErrors.New(dErrors.CodeBadRequest, "unsupported document type "+string(req.Type))
	}

	subject, cert, err := s.resolveSubject(ctx, req.ResidentID)
	if err != nil {
		s.metrics.IncrementIssuanceFailure("validate")
		return nil, err
	}

	now := requestcontext.Now(ctx)
	cert.IssuedAt = now

	content, err := s.renderer.Render(ctx, cert)
	if err != nil {
		s.metrics.IncrementIssuanceFailure("render")
		if dErrors.HasCode(err, dErrors.CodeRenderFailed) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeRenderFailed, "render document")
	}

	var doc *models.IssuedDocument
	for attempt := 1; ; attempt++ {
		ref := allocator.Allocate(now)
		span.SetAttributes(attribute.String("document.reference", ref.String()))

		filePath, err := s.artifacts.Put(ctx, ref.String(), content)
		if err != nil {
			s.metrics.IncrementIssuanceFailure("persist")
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store rendered artifact")
		}

		doc = &models.IssuedDocument{
			ID:               id.NewDocumentID(),
			Type:             req.Type,
			ReferenceNumber:  ref.String(),
			GeneratedAt:      now,
			GeneratedBy:      actor,
			Subject:          models.ResidentSubject(req.ResidentID),
			VerificationCode: verify.DeriveCode(subject, ref),
			ContentHash:      verify.HashContent(content),
			FilePath:         filePath,
		}

		err = s.documents.Create(ctx, doc)
		if err == nil {
			break
		}
		// The record will never exist, so the artifact written for this
		// reference must not survive it.
		s.discardArtifact(ctx, filePath)
		if errors.Is(err, sentinel.ErrAlreadyUsed) && attempt < maxAllocationAttempts {
			s.metrics.IncrementReferenceCollision()
			s.logger.WarnContext(ctx, "reference collision, re-allocating",
				"reference", ref.String(),
				"attempt", attempt,
			)
			continue
		}
		s.metrics.IncrementIssuanceFailure("persist")
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.Wrap(err, dErrors.CodeConflict, "could not allocate a unique reference number")
		}
		var domainErr *dErrors.Error
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "persist issued document")
	}

	s.metrics.IncrementIssued()
	s.metrics.ObserveIssue(start)
	s.emitter.Emit(ctx, audit.Event{
		Action:     audit.ActionDocumentIssued,
		DocumentID: doc.ID,
		Reference:  doc.ReferenceNumber,
		ActorID:    actor,
	})
	s.logger.InfoContext(ctx, "document issued",
		"document_id", doc.ID,
		"reference", doc.ReferenceNumber,
		"type", string(doc.Type),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &IssueResult{Document: doc, Content: content}, nil
}

// discardArtifact removes an artifact tied to a discarded reference. Removal
// failures are logged; the caller's error stands either way.
func (s *Service) discardArtifact(ctx context.Context, filePath string) {
	if err := s.artifacts.Delete(ctx, filePath); err != nil {
		s.logger.WarnContext(ctx, "could not remove discarded artifact",
			"file_path", filePath,
			"error", err,
		)
	}
}

// resolveSubject loads the resident and their registered residence. The
// residence linkage is resolved through the directory, never stored twice, so
// the derivation identity is deterministic for a given register state.
func (s *Service) resolveSubject(ctx context.Context, residentID id.ResidentID) (verify.SubjectIdentity, render.Certificate, error) {
	if residentID.IsNil() {
		return verify.SubjectIdentity{}, render.Certificate{}, dErrors.New(dErrors.CodeValidation, "resident id is required")
	}

	person, err := s.directory.FindResident(ctx, residentID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return verify.SubjectIdentity{}, render.Certificate{}, dErrors.New(dErrors.CodeNotFound, "resident not found")
		}
		return verify.SubjectIdentity{}, render.Certificate{}, dErrors.Wrap(err, dErrors.CodeInternal, "resolve resident")
	}

	home, err := s.directory.FindResidence(ctx, person.ResidenceID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return verify.SubjectIdentity{}, render.Certificate{}, dErrors.New(dErrors.CodeNotFound, "residence not found")
		}
		return verify.SubjectIdentity{}, render.Certificate{}, dErrors.Wrap(err, dErrors.CodeInternal, "resolve residence")
	}

	identity := verify.SubjectIdentity{
		ResidentID:  person.ID,
		ResidenceID: home.ID,
	}
	cert := render.Certificate{
		ResidentName: person.Name,
		NationalID:   person.NationalID,
		AddressLine:  home.AddressLine,
		Village:      home.Village,
	}
	return identity, cert, nil
}
