package handler

import (
	"errors"

	"github.com/fadilmartias/ats-matcher/internal/repository"
	"github.com/fadilmartias/ats-matcher/internal/usecase"
	"github.com/fadilmartias/ats-matcher/internal/util"
	"github.com/gofiber/fiber/v2"
)

// statusFor maps domain errors to HTTP status codes; unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, usecase.ErrDuplicateApplication),
		errors.Is(err, usecase.ErrDuplicateAnswer):
		return fiber.StatusConflict
	case errors.Is(err, usecase.ErrFileTooLarge):
		return fiber.StatusRequestEntityTooLarge
	case errors.Is(err, usecase.ErrInvalidStatus),
		errors.Is(err, usecase.ErrTranscriptRequired),
		errors.Is(err, usecase.ErrUnsupportedFile),
		errors.Is(err, usecase.ErrInvalidDateRange),
		errors.Is(err, usecase.ErrTopicRequired),
		errors.Is(err, usecase.ErrAssessmentStarted),
		errors.Is(err, usecase.ErrAssessmentClosed),
		errors.Is(err, usecase.ErrQuestionMismatch),
		errors.Is(err, usecase.ErrNotCodeQuestion),
		errors.Is(err, usecase.ErrInvalidAssessment):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

// fail answers with notFound for missing records, the error itself for other
// client errors, and failed for everything else.
func fail(c *fiber.Ctx, err error, notFound, failed string) error {
	code := statusFor(err)
	message := err.Error()
	switch code {
	case fiber.StatusNotFound:
		message = notFound
	case fiber.StatusInternalServerError:
		message = failed
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{Code: code, Message: message}, err)
}

func invalidID(c *fiber.Ctx, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: "invalid id",
	}, err)
}

// bindBody parses and validates the request body. When ok is false the error
// response has already been written and err is the result of writing it.
func bindBody(c *fiber.Ctx, out any) (ok bool, err error) {
	if err := c.BodyParser(out); err != nil {
		return false, util.ValidationErrorResponse(c, err)
	}
	if err := util.ValidateStruct(out); err != nil {
		return false, util.ValidationErrorResponse(c, err)
	}
	return true, nil
}
