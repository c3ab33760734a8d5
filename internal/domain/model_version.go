package domain

import "time"

// ModelStatus tracks a model version through the release workflow.
type ModelStatus string

const (
	ModelStatusDraft      ModelStatus = "draft"
	ModelStatusCandidate  ModelStatus = "candidate"
	ModelStatusReleased   ModelStatus = "released"
	ModelStatusDeprecated ModelStatus = "deprecated"
)

// Valid reports whether s is a known status.
func (s ModelStatus) Valid() bool {
	switch s {
	case ModelStatusDraft, ModelStatusCandidate, ModelStatusReleased, ModelStatusDeprecated:
		return true
	}
	return false
}

// RequiredRole is the minimum console role that may move a model into s.
func (s ModelStatus) RequiredRole() Role {
	if s == ModelStatusReleased {
		return RoleAdmin
	}
	return RoleReleaseManager
}

// ModelVersion is one trained model for a language pair.
type ModelVersion struct {
	ID             string      `json:"id"`
	LanguagePairID string      `json:"language_pair_id"`
	Version        string      `json:"version"`
	Description    string      `json:"description,omitempty"`
	Status         ModelStatus `json:"status"`
	Artifacts      []string    `json:"artifacts,omitempty"`
	CreatedBy      string      `json:"created_by,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}
