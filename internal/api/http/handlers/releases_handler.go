package handlers

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/api/dto"
	"github.com/spec-kit/nmt-console/internal/apiclient"
	"github.com/spec-kit/nmt-console/internal/auth"
	"github.com/spec-kit/nmt-console/internal/console"
	"github.com/spec-kit/nmt-console/internal/domain"
	apperrors "github.com/spec-kit/nmt-console/pkg/util"
)

// ReleasesHandler proxies release management calls to the backend.
type ReleasesHandler struct{}

// NewReleasesHandler constructs handler.
func NewReleasesHandler() *ReleasesHandler {
	return &ReleasesHandler{}
}

func backend(c *fiber.Ctx) *apiclient.Client {
	return console.FromContext(c).API
}

// ListLanguagePairs handles GET /console/api/language-pairs.
func (h *ReleasesHandler) ListLanguagePairs(c *fiber.Ctx) error {
	pairs, err := backend(c).ListLanguagePairs(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": pairs})
}

// CreateLanguagePair handles POST /console/api/language-pairs.
func (h *ReleasesHandler) CreateLanguagePair(c *fiber.Ctx) error {
	var req dto.CreateLanguagePairRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := validateRequest(req); err != nil {
		return err
	}
	pair, err := backend(c).CreateLanguagePair(c.UserContext(), apiclient.CreateLanguagePairRequest{
		Source: req.Source,
		Target: req.Target,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": pair})
}

// ListModels handles GET /console/api/models.
func (h *ReleasesHandler) ListModels(c *fiber.Ctx) error {
	models, err := backend(c).ListModels(c.UserContext(), c.Query("language_pair_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": models})
}

// CreateModel handles POST /console/api/models.
func (h *ReleasesHandler) CreateModel(c *fiber.Ctx) error {
	var req dto.CreateModelRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := validateRequest(req); err != nil {
		return err
	}
	model, err := backend(c).CreateModel(c.UserContext(), apiclient.CreateModelRequest{
		LanguagePairID: req.LanguagePairID,
		Version:        req.Version,
		Description:    req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": model})
}

// UpdateModelStatus handles PATCH /console/api/models/:id/status.
// Releasing a model takes an admin; every other move a release manager.
func (h *ReleasesHandler) UpdateModelStatus(c *fiber.Ctx) error {
	var req dto.UpdateModelStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := validateRequest(req); err != nil {
		return err
	}
	status := domain.ModelStatus(req.Status)
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || !principal.Role().AtLeast(status.RequiredRole()) {
		return apperrors.NewForbidden(fmt.Sprintf("moving a model to %s requires the %s role", status, status.RequiredRole()))
	}

	model, err := backend(c).UpdateModelStatus(c.UserContext(), c.Params("id"), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": model})
}

// UploadModelArtifact handles POST /console/api/models/:id/artifacts.
func (h *ReleasesHandler) UploadModelArtifact(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("artifact file required", map[string]any{
			"fields": map[string]string{"file": "is required"},
		})
	}
	f, err := fh.Open()
	if err != nil {
		return apperrors.NewBadRequest("unreadable upload")
	}
	defer f.Close()

	model, err := backend(c).UploadModelArtifact(c.UserContext(), c.Params("id"), fh.Filename, f)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": model})
}

// DownloadModelArtifact handles GET /console/api/models/:id/artifacts/:name.
func (h *ReleasesHandler) DownloadModelArtifact(c *fiber.Ctx) error {
	artifact, err := backend(c).DownloadModelArtifact(c.UserContext(), c.Params("id"), c.Params("name"))
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, artifact.ContentType)
	c.Attachment(artifact.Name)
	return c.Send(artifact.Data)
}

// ListTestsets handles GET /console/api/testsets.
func (h *ReleasesHandler) ListTestsets(c *fiber.Ctx) error {
	testsets, err := backend(c).ListTestsets(c.UserContext(), c.Query("language_pair_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": testsets})
}

// UploadTestset handles POST /console/api/testsets.
func (h *ReleasesHandler) UploadTestset(c *fiber.Ctx) error {
	var form dto.UploadTestsetForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	fields := fieldErrors(form)
	fh, err := c.FormFile("file")
	if err != nil {
		if fields == nil {
			fields = map[string]string{}
		}
		fields["file"] = "is required"
	}
	if fields != nil {
		return apperrors.NewValidationError("request validation failed", map[string]any{"fields": fields})
	}
	f, err := fh.Open()
	if err != nil {
		return apperrors.NewBadRequest("unreadable upload")
	}
	defer f.Close()

	testset, err := backend(c).UploadTestset(c.UserContext(), apiclient.UploadTestsetRequest{
		Name:           form.Name,
		LanguagePairID: form.LanguagePairID,
		FileName:       fh.Filename,
	}, f)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": testset})
}

// ListResults handles GET /console/api/results.
func (h *ReleasesHandler) ListResults(c *fiber.Ctx) error {
	results, err := backend(c).ListResults(c.UserContext(), c.Query("model_id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": results})
}
