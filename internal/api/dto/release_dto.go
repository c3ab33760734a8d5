package dto

// CreateLanguagePairRequest registers a translation direction.
type CreateLanguagePairRequest struct {
	Source string `json:"source" validate:"required"`
	Target string `json:"target" validate:"required,nefield=Source"`
}

// CreateModelRequest registers a model version for a language pair.
type CreateModelRequest struct {
	LanguagePairID string `json:"language_pair_id" validate:"required"`
	Version        string `json:"version" validate:"required"`
	Description    string `json:"description"`
}

// UpdateModelStatusRequest moves a model through its lifecycle.
type UpdateModelStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft candidate released deprecated"`
}

// UploadTestsetForm accompanies a test set upload.
type UploadTestsetForm struct {
	Name           string `form:"name" validate:"required"`
	LanguagePairID string `form:"language_pair_id" validate:"required"`
}
