package handler

import (
	"context"
	"time"

	"github.com/fadilmartias/ats-matcher/internal/dto"
	"github.com/fadilmartias/ats-matcher/internal/middleware"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/fadilmartias/ats-matcher/internal/repository"
	"github.com/fadilmartias/ats-matcher/internal/response"
	"github.com/fadilmartias/ats-matcher/internal/usecase"
	"github.com/fadilmartias/ats-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ApplicationService interface {
	Submit(ctx context.Context, in usecase.SubmitApplicationInput, cv usecase.CVUpload) (*model.Application, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Application, error)
	List(ctx context.Context, filter repository.ApplicationFilter, page, pageSize int) ([]model.Application, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Application, error)
}

type ApplicationHandler struct {
	uc ApplicationService
}

func NewApplicationHandler(uc ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

func (h *ApplicationHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/applications", middleware.RateLimiter(1, 4*time.Second), h.Submit)
	app.Get("/applications", h.List)
	app.Get("/applications/:id", h.Get)
	app.Patch("/applications/:id/status", h.UpdateStatus)
}

// Submit accepts a multipart form with project_id, candidate_name,
// candidate_email and the cv file.
func (h *ApplicationHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitApplicationRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}
	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return invalidID(c, err)
	}

	file, err := c.FormFile("cv")
	if err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "cv file is required",
		}, err)
	}

	app, err := h.uc.Submit(c.UserContext(), usecase.SubmitApplicationInput{
		ProjectID:      projectID,
		CandidateName:  req.CandidateName,
		CandidateEmail: req.CandidateEmail,
	}, usecase.CVUpload{
		Filename: file.Filename,
		Size:     file.Size,
		Save: func(dst string) error {
			return c.SaveFile(file, dst)
		},
	})
	if err != nil {
		return fail(c, err, "project not found", "failed to submit application")
	}

	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success submit application",
		Data:    dto.NewApplicationDTO(app),
	})
}

func (h *ApplicationHandler) List(c *fiber.Ctx) error {
	var q dto.ListApplicationsQuery
	if err := c.QueryParser(&q); err != nil {
		return util.ValidationErrorResponse(c, err)
	}
	if err := util.ValidateStruct(q); err != nil {
		return util.ValidationErrorResponse(c, err)
	}

	filter := repository.ApplicationFilter{Status: q.Status, CandidateEmail: q.CandidateEmail}
	if q.ProjectID != "" {
		filter.ProjectID = uuid.MustParse(q.ProjectID)
	}

	page, pageSize := util.PageQuery(c)
	apps, total, err := h.uc.List(c.UserContext(), filter, page, pageSize)
	if err != nil {
		return fail(c, err, "", "failed to list applications")
	}

	data := make([]dto.ApplicationDTO, len(apps))
	for i := range apps {
		data[i] = dto.NewApplicationDTO(&apps[i])
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get applications",
		Data:       data,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *ApplicationHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	app, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "application not found", "failed to get application")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get application",
		Data:    dto.NewApplicationDTO(app),
	})
}

func (h *ApplicationHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}
	var req dto.UpdateApplicationStatusRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	app, err := h.uc.UpdateStatus(c.UserContext(), id, req.Status)
	if err != nil {
		return fail(c, err, "application not found", "failed to update application status")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update application status",
		Data:    dto.NewApplicationDTO(app),
	})
}
