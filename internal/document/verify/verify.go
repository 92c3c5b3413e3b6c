// Package verify implements the offline-verifiable primitives printed on an
// issued document: the verification code and the content hash.
//
// The verification code is derived only from the subject's stable identity
// and the reference number - never from wall-clock time or random state - so
// an inspector holding the printed document and the subject's own identity
// can recompute it without consulting the store.
package verify

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	id "attesta/pkg/domain"
	dErrors "attesta/pkg/domain-errors"
	"attesta/internal/document/refnum"
)

// CodeLength is the fixed length of a printed verification code.
const CodeLength = 16

// SubjectIdentity is the minimal stable identity of a document's subject used
// for code derivation. Both fields participate; changing either changes the
// code.
type SubjectIdentity struct {
	ResidentID  id.ResidentID
	ResidenceID id.ResidenceID
}

// canonical renders the identity as the deterministic derivation input.
func (s SubjectIdentity) canonical() string {
	return s.ResidentID.String() + "|" + s.ResidenceID.String()
}

// DeriveCode computes the verification code for a subject and reference
// number: SHA-256 over the canonical identity string joined with the
// reference, truncated to CodeLength lowercase hex characters.
func DeriveCode(subject SubjectIdentity, ref refnum.Reference) string {
	sum := sha256.Sum256([]byte(subject.canonical() + "|" + ref.String()))
	return hex.EncodeToString(sum[:])[:CodeLength]
}

// HashContent computes the full SHA-256 digest of rendered document bytes as
// lowercase hex. Unlike the verification code this is not meant for manual
// recomputation; it exists for programmatic tamper detection.
func HashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CheckCode compares a recomputed verification code against the printed one.
func CheckCode(subject SubjectIdentity, ref refnum.Reference, printed string) error {
	expected := DeriveCode(subject, ref)
	if subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(printed))) != 1 {
		return dErrors.New(dErrors.CodeIntegrityMismatch, "verification code does not match derivation inputs")
	}
	return nil
}

// CheckContent compares a stored content hash against a fresh digest of the
// retrieved artifact bytes.
func CheckContent(storedHash string, content []byte) error {
	if subtle.ConstantTimeCompare([]byte(storedHash), []byte(HashContent(content))) != 1 {
		return dErrors.New(dErrors.CodeIntegrityMismatch, "artifact content has been altered since issuance")
	}
	return nil
}
