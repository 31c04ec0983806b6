package handler

import (
	"context"

	"github.com/fadilmartias/ats-matcher/internal/dto"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/fadilmartias/ats-matcher/internal/response"
	"github.com/fadilmartias/ats-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProjectService interface {
	Create(ctx context.Context, req dto.CreateProjectRequest) (*model.Project, error)
	CreateFromTranscript(ctx context.Context, req dto.TranscriptProjectRequest) (*model.Project, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Project, error)
	List(ctx context.Context, page, pageSize int) ([]model.Project, int64, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProjectRequest) (*model.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ProjectHandler struct {
	uc ProjectService
}

func NewProjectHandler(uc ProjectService) *ProjectHandler {
	return &ProjectHandler{uc: uc}
}

func (h *ProjectHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/projects", h.Create)
	app.Post("/projects/from-transcript", h.CreateFromTranscript)
	app.Get("/projects", h.List)
	app.Get("/projects/:id", h.Get)
	app.Put("/projects/:id", h.Update)
	app.Delete("/projects/:id", h.Delete)
}

func (h *ProjectHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProjectRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	p, err := h.uc.Create(c.UserContext(), req)
	if err != nil {
		return fail(c, err, "project not found", "failed to create project")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create project",
		Data:    dto.NewProjectDTO(p),
	})
}

func (h *ProjectHandler) CreateFromTranscript(c *fiber.Ctx) error {
	var req dto.TranscriptProjectRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	p, err := h.uc.CreateFromTranscript(c.UserContext(), req)
	if err != nil {
		return fail(c, err, "project not found", "failed to create project from transcript")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create project from transcript",
		Data:    dto.NewProjectDTO(p),
	})
}

func (h *ProjectHandler) List(c *fiber.Ctx) error {
	page, pageSize := util.PageQuery(c)
	projects, total, err := h.uc.List(c.UserContext(), page, pageSize)
	if err != nil {
		return fail(c, err, "", "failed to list projects")
	}

	data := make([]dto.ProjectDTO, len(projects))
	for i := range projects {
		data[i] = dto.NewProjectDTO(&projects[i])
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get projects",
		Data:       data,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *ProjectHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	p, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "project not found", "failed to get project")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get project",
		Data:    dto.NewProjectDTO(p),
	})
}

func (h *ProjectHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}
	var req dto.UpdateProjectRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	p, err := h.uc.Update(c.UserContext(), id, req)
	if err != nil {
		return fail(c, err, "project not found", "failed to update project")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success update project",
		Data:    dto.NewProjectDTO(p),
	})
}

func (h *ProjectHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return fail(c, err, "project not found", "failed to delete project")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success delete project",
	})
}
