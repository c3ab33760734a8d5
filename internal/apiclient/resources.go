package apiclient

import (
	"context"
	"io"
	"net/http"

	"github.com/spec-kit/nmt-console/internal/domain"
)

// ListLanguagePairs returns every configured language pair.
func (c *Client) ListLanguagePairs(ctx context.Context) ([]domain.LanguagePair, error) {
	var out []domain.LanguagePair
	req := c.request(ctx).SetResult(&out)
	if _, err := execute(req, http.MethodGet, "/language-pairs"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateLanguagePair registers a new pair.
func (c *Client) CreateLanguagePair(ctx context.Context, in CreateLanguagePairRequest) (*domain.LanguagePair, error) {
	var out domain.LanguagePair
	req := c.request(ctx).SetBody(in).SetResult(&out)
	if _, err := execute(req, http.MethodPost, "/language-pairs"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListModels returns model versions, optionally for one language pair.
func (c *Client) ListModels(ctx context.Context, languagePairID string) ([]domain.ModelVersion, error) {
	var out []domain.ModelVersion
	req := c.request(ctx).SetResult(&out)
	if languagePairID != "" {
		req.SetQueryParam("language_pair_id", languagePairID)
	}
	if _, err := execute(req, http.MethodGet, "/models"); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateModel registers a new model version in draft.
func (c *Client) CreateModel(ctx context.Context, in CreateModelRequest) (*domain.ModelVersion, error) {
	var out domain.ModelVersion
	req := c.request(ctx).SetBody(in).SetResult(&out)
	if _, err := execute(req, http.MethodPost, "/models"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateModelStatus moves a model through the release workflow.
func (c *Client) UpdateModelStatus(ctx context.Context, id string, status domain.ModelStatus) (*domain.ModelVersion, error) {
	var out domain.ModelVersion
	req := c.request(ctx).
		SetPathParam("id", id).
		SetBody(UpdateModelStatusRequest{Status: status}).
		SetResult(&out)
	if _, err := execute(req, http.MethodPatch, "/models/{id}/status"); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadModelArtifact attaches a file to a model version.
func (c *Client) UploadModelArtifact(ctx context.Context, id, fileName string, r io.Reader) (*domain.ModelVersion, error) {
	var out domain.ModelVersion
	req := c.request(withMultipart(ctx)).
		SetPathParam("id", id).
		SetFileReader("file", fileName, r).
		SetResult(&out)
	if _, err := execute(req, http.MethodPost, "/models/{id}/artifacts"); err != nil {
		return nil, err
	}
	return &out, nil
}

// DownloadModelArtifact fetches an artifact as raw bytes.
func (c *Client) DownloadModelArtifact(ctx context.Context, id, name string) (*Artifact, error) {
	req := c.request(ctx).
		SetHeader("Accept", "application/octet-stream").
		SetPathParams(map[string]string{"id": id, "name": name})
	resp, err := execute(req, http.MethodGet, "/models/{id}/artifacts/{name}")
	if err != nil {
		return nil, err
	}
	contentType := resp.Header().Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return &Artifact{Name: name, ContentType: contentType, Data: resp.Body()}, nil
}

// ListTestsets returns evaluation testsets, optionally for one language pair.
func (c *Client) ListTestsets(ctx context.Context, languagePairID string) ([]domain.Testset, error) {
	var out []domain.Testset
	req := c.request(ctx).SetResult(&out)
	if languagePairID != "" {
		req.SetQueryParam("language_pair_id", languagePairID)
	}
	if _, err := execute(req, http.MethodGet, "/testsets"); err != nil {
		return nil, err
	}
	return out, nil
}

// UploadTestset sends a testset file with its metadata as multipart form data.
func (c *Client) UploadTestset(ctx context.Context, in UploadTestsetRequest, r io.Reader) (*domain.Testset, error) {
	var out domain.Testset
	req := c.request(withMultipart(ctx)).
		SetMultipartFormData(map[string]string{
			"name":             in.Name,
			"language_pair_id": in.LanguagePairID,
		}).
		SetFileReader("file", in.FileName, r).
		SetResult(&out)
	if _, err := execute(req, http.MethodPost, "/testsets"); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListResults returns training results, optionally for one model.
func (c *Client) ListResults(ctx context.Context, modelID string) ([]domain.TrainingResult, error) {
	var out []domain.TrainingResult
	req := c.request(ctx).SetResult(&out)
	if modelID != "" {
		req.SetQueryParam("model_id", modelID)
	}
	if _, err := execute(req, http.MethodGet, "/results"); err != nil {
		return nil, err
	}
	return out, nil
}

// ListUsers returns accounts, optionally filtered by approval status.
func (c *Client) ListUsers(ctx context.Context, status domain.UserStatus) ([]domain.User, error) {
	var out []domain.User
	req := c.request(ctx).SetResult(&out)
	if status != "" {
		req.SetQueryParam("status", string(status))
	}
	if _, err := execute(req, http.MethodGet, "/users"); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveUser grants a pending account its requested role.
func (c *Client) ApproveUser(ctx context.Context, id string) (*domain.User, error) {
	return c.userAction(ctx, id, "approve")
}

// RejectUser declines a pending account.
func (c *Client) RejectUser(ctx context.Context, id string) (*domain.User, error) {
	return c.userAction(ctx, id, "reject")
}

// UpdateUserRole changes an active account's role.
func (c *Client) UpdateUserRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	var out domain.User
	req := c.request(ctx).
		SetPathParam("id", id).
		SetBody(UpdateUserRoleRequest{Role: role}).
		SetResult(&out)
	if _, err := execute(req, http.MethodPatch, "/users/{id}/role"); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) userAction(ctx context.Context, id, action string) (*domain.User, error) {
	var out domain.User
	req := c.request(ctx).
		SetPathParams(map[string]string{"id": id, "action": action}).
		SetResult(&out)
	if _, err := execute(req, http.MethodPost, "/users/{id}/{action}"); err != nil {
		return nil, err
	}
	return &out, nil
}
