package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"refdesk-backend/models"
	apimodels "refdesk-backend/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("failed to parse request body")
		return errors.New("failed to read request data")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	id := ctx.Params("id")
	if id == "" {
		return "", errors.New("record id is required")
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("method", ctx.Method()).
		WithField("path", ctx.Path())
}

// SendError maps a domain error to its HTTP status; anything else is logged
// and reported as a generic 500 without leaking internals.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, logger *log.Entry, err error, message string) error {
	if domainErr, ok := models.AsDomainError(err); ok {
		if domainErr.Code == models.ErrCodeValidation {
			return ctx.Status(domainErr.HTTPStatus()).
				JSON(apimodels.NewValidationErrorResponse(domainErr.Message, domainErr.Fields))
		}
		return ctx.Status(domainErr.HTTPStatus()).JSON(apimodels.NewError(domainErr.Message))
	}
	logger.WithError(err).Error(message)
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(message))
}
