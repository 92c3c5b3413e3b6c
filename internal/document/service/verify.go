package service

import (
	"context"
	"errors"
	"time"

	"attesta/internal/document/models"
	"attesta/internal/document/refnum"
	"attesta/internal/document/verify"
	dErrors "attesta/pkg/domain-errors"
	"attesta/pkg/platform/sentinel"
)

// VerifyRequest asks whether a document's recorded metadata still matches its
// derivation inputs and, optionally, whether the stored artifact bytes are
// unaltered.
type VerifyRequest struct {
	Reference string
	// CheckContent additionally re-hashes the stored artifact. Skipped when
	// the artifact no longer exists on the original medium.
	CheckContent bool
}

// Verification outcomes.
const (
	OutcomeOK              = "ok"
	OutcomeCodeMismatch    = "code_mismatch"
	OutcomeContentMismatch = "content_mismatch"
)

// VerifyResult reports a verification check. A failed check is a result, not
// an error; errors are reserved for infrastructure faults.
type VerifyResult struct {
	Reference string `json:"reference"`
	Valid     bool   `json:"valid"`
	Outcome   string `json:"outcome"`
	// ContentChecked reports whether the artifact bytes were actually
	// re-hashed. A record with no stored artifact cannot be content-checked,
	// and an auditor must be able to tell "skipped" from "verified".
	ContentChecked bool `json:"content_checked"`
	// DerivedCode lets an inspector compare against the printed code by eye.
	DerivedCode string `json:"derived_code"`
}

// Verify recomputes the verification code from the subject's identity and the
// reference number, exactly as an offline inspector would, and compares it to
// the stored code. With CheckContent set it also re-hashes the artifact.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	ctx, span := s.tracer.Start(ctx, "document.Verify")
	defer span.End()
	start := time.Now()

	if !refnum.Valid(req.Reference) {
		return nil, dErrors.New(dErrors.CodeBadRequest, "malformed reference number")
	}

	doc, err := s.lookupByReference(ctx, req.Reference)
	if err != nil {
		return nil, err
	}

	residentID, ok := doc.Subject.ResidentID()
	if !ok {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "document subject is not a resident")
	}
	identity, _, err := s.resolveSubject(ctx, residentID)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		Reference:   doc.ReferenceNumber,
		DerivedCode: verify.DeriveCode(identity, refnum.Reference(doc.ReferenceNumber)),
	}

	if err := verify.CheckCode(identity, refnum.Reference(doc.ReferenceNumber), doc.VerificationCode); err != nil {
		result.Outcome = OutcomeCodeMismatch
		s.metrics.IncrementVerification(OutcomeCodeMismatch)
		s.metrics.ObserveVerify(start)
		return result, nil
	}

	if req.CheckContent && doc.FilePath != "" {
		content, err := s.artifacts.Get(ctx, doc.FilePath)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load stored artifact")
		}
		result.ContentChecked = true
		if err := verify.CheckContent(doc.ContentHash, content); err != nil {
			result.Outcome = OutcomeContentMismatch
			s.metrics.IncrementVerification(OutcomeContentMismatch)
			s.metrics.ObserveVerify(start)
			return result, nil
		}
	}

	result.Valid = true
	result.Outcome = OutcomeOK
	s.metrics.IncrementVerification(OutcomeOK)
	s.metrics.ObserveVerify(start)
	return result, nil
}

// lookupByReference consults the read-through cache before the store.
func (s *Service) lookupByReference(ctx context.Context, reference string) (*models.IssuedDocument, error) {
	if s.cache != nil {
		if doc, hit := s.cache.Get(ctx, reference); hit {
			return doc, nil
		}
	}

	doc, err := s.documents.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "no document with reference "+reference)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "find document by reference")
	}

	if s.cache != nil {
		s.cache.Put(ctx, doc)
	}
	return doc, nil
}
