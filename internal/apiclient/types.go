package apiclient

import "github.com/spec-kit/nmt-console/internal/domain"

// TokenResponse is returned by the login endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterRequest creates an account; roles above member wait for approval.
type RegisterRequest struct {
	Username string      `json:"username"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

// CreateLanguagePairRequest payload.
type CreateLanguagePairRequest struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// CreateModelRequest payload.
type CreateModelRequest struct {
	LanguagePairID string `json:"language_pair_id"`
	Version        string `json:"version"`
	Description    string `json:"description,omitempty"`
}

// UpdateModelStatusRequest payload.
type UpdateModelStatusRequest struct {
	Status domain.ModelStatus `json:"status"`
}

// UploadTestsetRequest carries the form fields sent with a testset file.
type UploadTestsetRequest struct {
	Name           string
	LanguagePairID string
	FileName       string
}

// UpdateUserRoleRequest payload.
type UpdateUserRoleRequest struct {
	Role domain.Role `json:"role"`
}

// Artifact is a downloaded binary.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}
