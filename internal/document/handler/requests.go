package handler

import (
	"attesta/internal/document/models"
	dErrors "attesta/pkg/domain-errors"
)

// CorrectMetadataRequest is the PATCH body. Only the narrow metadata surface
// is expressible; the derived fields have no corresponding request fields.
type CorrectMetadataRequest struct {
	FilePath          *string `json:"file_path"`
	RelatedEntityID   *string `json:"related_entity_id"`
	RelatedEntityType *string `json:"related_entity_type"`
}

// ToCorrection validates and converts the wire shape into a domain correction.
func (r CorrectMetadataRequest) ToCorrection() (models.MetadataCorrection, error) {
	correction := models.MetadataCorrection{FilePath: r.FilePath}

	if (r.RelatedEntityID == nil) != (r.RelatedEntityType == nil) {
		return models.MetadataCorrection{}, dErrors.New(dErrors.CodeBadRequest,
			"related_entity_id and related_entity_type must be corrected together")
	}
	if r.RelatedEntityID != nil {
		subject, err := models.DecodeSubject(*r.RelatedEntityID, *r.RelatedEntityType)
		if err != nil {
			return models.MetadataCorrection{}, err
		}
		correction.Subject = &subject
	}
	return correction, nil
}

// VerifyRequest is the POST /documents/verify body.
type VerifyRequest struct {
	Reference    string `json:"reference"`
	CheckContent bool   `json:"check_content"`
}
