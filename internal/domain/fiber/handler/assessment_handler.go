package handler

import (
	"context"
	"time"

	"github.com/fadilmartias/ats-matcher/internal/assessment"
	"github.com/fadilmartias/ats-matcher/internal/dto"
	"github.com/fadilmartias/ats-matcher/internal/middleware"
	"github.com/fadilmartias/ats-matcher/internal/model"
	"github.com/fadilmartias/ats-matcher/internal/response"
	"github.com/fadilmartias/ats-matcher/internal/service"
	"github.com/fadilmartias/ats-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AssessmentService interface {
	Create(ctx context.Context, req dto.CreateAssessmentRequest) (*model.Assessment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
	List(ctx context.Context, q dto.ListAssessmentsQuery, page, pageSize int) ([]model.Assessment, int64, error)
	GenerateQuestions(ctx context.Context, id uuid.UUID, req dto.GenerateQuestionsRequest) (*model.Assessment, error)
	Start(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
	SubmitAnswer(ctx context.Context, assessmentID uuid.UUID, req dto.SubmitAnswerRequest) (*model.Answer, error)
	Submit(ctx context.Context, id uuid.UUID) (*model.Assessment, error)
	EvaluateCode(ctx context.Context, answerID uuid.UUID) (*model.Answer, error)
	Suggest(ctx context.Context, applicationID uuid.UUID) (*assessment.Suggestion, error)
	AnalyzeApplication(ctx context.Context, applicationID uuid.UUID) (*service.CandidateScore, error)
}

type AssessmentHandler struct {
	uc  AssessmentService
	now func() time.Time
}

func NewAssessmentHandler(uc AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{uc: uc, now: time.Now}
}

func (h *AssessmentHandler) RegisterRoutes(app *fiber.App) {
	llmLimit := middleware.RateLimiter(10, time.Minute)

	app.Post("/assessments", h.Create)
	app.Get("/assessments", h.List)
	app.Get("/assessments/:id", h.Get)
	app.Post("/assessments/:id/questions/generate", llmLimit, h.GenerateQuestions)
	app.Post("/assessments/:id/start", h.Start)
	app.Post("/assessments/:id/answers", h.SubmitAnswer)
	app.Post("/assessments/:id/submit", h.Submit)
	app.Post("/answers/:id/evaluate-code", llmLimit, h.EvaluateCode)
	app.Post("/applications/:id/assessment-suggestion", llmLimit, h.Suggest)
	app.Post("/applications/:id/ai-analysis", llmLimit, h.AnalyzeApplication)
}

func (h *AssessmentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAssessmentRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	a, err := h.uc.Create(c.UserContext(), req)
	if err != nil {
		return fail(c, err, "application not found", "failed to create assessment")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success create assessment",
		Data:    dto.NewAssessmentDTO(a),
	})
}

func (h *AssessmentHandler) List(c *fiber.Ctx) error {
	var q dto.ListAssessmentsQuery
	if err := c.QueryParser(&q); err != nil {
		return util.ValidationErrorResponse(c, err)
	}
	if err := util.ValidateStruct(q); err != nil {
		return util.ValidationErrorResponse(c, err)
	}

	page, pageSize := util.PageQuery(c)
	items, total, err := h.uc.List(c.UserContext(), q, page, pageSize)
	if err != nil {
		return fail(c, err, "", "failed to list assessments")
	}

	data := make([]dto.AssessmentDTO, len(items))
	for i := range items {
		data[i] = dto.NewAssessmentDTO(&items[i])
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get assessments",
		Data:       data,
		Pagination: response.NewPagination(page, pageSize, total),
	})
}

func (h *AssessmentHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	a, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "assessment not found", "failed to get assessment")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get assessment",
		Data:    dto.NewAssessmentDTO(a),
	})
}

func (h *AssessmentHandler) GenerateQuestions(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}
	var req dto.GenerateQuestionsRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	a, err := h.uc.GenerateQuestions(c.UserContext(), id, req)
	if err != nil {
		return fail(c, err, "assessment not found", "failed to generate questions")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success generate questions",
		Data:    dto.NewAssessmentDTO(a),
	})
}

func (h *AssessmentHandler) Start(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	a, err := h.uc.Start(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "assessment not found", "failed to start assessment")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success start assessment",
		Data:    dto.NewAssessmentDTO(a),
	})
}

func (h *AssessmentHandler) SubmitAnswer(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}
	var req dto.SubmitAnswerRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}

	answer, err := h.uc.SubmitAnswer(c.UserContext(), id, req)
	if err != nil {
		return fail(c, err, "assessment or question not found", "failed to submit answer")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Success submit answer",
		Data:    dto.NewAnswerDTO(answer),
	})
}

func (h *AssessmentHandler) Submit(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	a, err := h.uc.Submit(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "assessment not found", "failed to submit assessment")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success submit assessment",
		Data:    dto.NewAssessmentDTO(a),
	})
}

func (h *AssessmentHandler) EvaluateCode(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	answer, err := h.uc.EvaluateCode(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "answer not found", "failed to evaluate code")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success evaluate code",
		Data:    dto.NewAnswerDTO(answer),
	})
}

func (h *AssessmentHandler) Suggest(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	s, err := h.uc.Suggest(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "application not found", "failed to suggest assessment")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success suggest assessment",
		Data: dto.AssessmentSuggestionDTO{
			Suggestion:    *s,
			ApplicationID: id,
			AnalyzedAt:    h.now().UTC(),
		},
	})
}

func (h *AssessmentHandler) AnalyzeApplication(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidID(c, err)
	}

	score, err := h.uc.AnalyzeApplication(c.UserContext(), id)
	if err != nil {
		return fail(c, err, "application not found", "failed to analyze application")
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success analyze application",
		Data:    score,
	})
}
