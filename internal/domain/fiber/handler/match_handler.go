package handler

import (
	"github.com/fadilmartias/ats-matcher/internal/dto"
	"github.com/fadilmartias/ats-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
)

type MatchService interface {
	Match(req dto.MatchRequest) dto.MatchResponse
	Normalize(labels []string) []dto.NormalizedLabel
}

type MatchHandler struct {
	uc MatchService
}

func NewMatchHandler(uc MatchService) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(app *fiber.App) {
	app.Post("/match", h.Match)
	app.Post("/skills/normalize", h.Normalize)
}

func (h *MatchHandler) Match(c *fiber.Ctx) error {
	var req dto.MatchRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success compute match",
		Data:    h.uc.Match(req),
	})
}

func (h *MatchHandler) Normalize(c *fiber.Ctx) error {
	var req dto.NormalizeRequest
	if ok, err := bindBody(c, &req); !ok {
		return err
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success normalize skills",
		Data:    h.uc.Normalize(req.Labels),
	})
}
