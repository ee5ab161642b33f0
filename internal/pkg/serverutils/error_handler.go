package serverutils

import (
	"errors"

	"boardgame-ranking-be/internal/service"
	"boardgame-ranking-be/pkg/lock"

	"github.com/gofiber/fiber/v2"
)

// ErrorDetail is the data part of an error response. Reason is a stable
// machine-readable code; the message next to it is localized.
type ErrorDetail struct {
	Reason string            `json:"reason"`
	Fields map[string]string `json:"fields,omitempty"`
}

type errorMapping struct {
	target error
	status int
	reason string
}

var errorMappings = []errorMapping{
	{service.ErrSessionNotFound, fiber.StatusNotFound, ReasonSessionNotFound},
	{service.ErrInvalidPhase, fiber.StatusConflict, ReasonInvalidPhase},
	{service.ErrNoItems, fiber.StatusUnprocessableEntity, ReasonNoItems},
	{service.ErrInvalidItem, fiber.StatusUnprocessableEntity, ReasonInvalidItem},
	{service.ErrInvalidTier, fiber.StatusBadRequest, ReasonInvalidTier},
	{service.ErrInvalidCatalog, fiber.StatusBadRequest, ReasonInvalidRequest},
	{lock.ErrLockTimeout, fiber.StatusConflict, ReasonSessionBusy},
	{service.ErrNoCandidatePool, fiber.StatusInternalServerError, ReasonInternal},
}

// ErrorHandlerMiddleware turns handler errors into the response envelope.
// Internal error text never reaches the client; it is logged through
// onInternal instead.
func ErrorHandlerMiddleware(defaultLanguage string, onInternal func(c *fiber.Ctx, err error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		if err == nil {
			return nil
		}

		lang := Language(c, defaultLanguage)
		status, detail := classify(err)
		if status == fiber.StatusInternalServerError && onInternal != nil {
			onInternal(c, err)
		}

		return c.Status(status).JSON(ErrorResponseWithData(status, Localize(lang, detail.Reason), detail))
	}
}

// Language picks the response language from Accept-Language.
func Language(c *fiber.Ctx, defaultLanguage string) string {
	if c.Get(fiber.HeaderAcceptLanguage) == "" {
		return defaultLanguage
	}
	if lang := c.AcceptsLanguages(supportedLanguages...); lang != "" {
		return lang
	}
	return defaultLanguage
}

func classify(err error) (int, ErrorDetail) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest, ErrorDetail{Reason: ReasonInvalidRequest, Fields: verr.Fields}
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, ErrorDetail{Reason: m.reason}
		}
	}

	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		switch ferr.Code {
		case fiber.StatusUnauthorized:
			return ferr.Code, ErrorDetail{Reason: ReasonUnauthorized}
		case fiber.StatusNotFound:
			return ferr.Code, ErrorDetail{Reason: ReasonNotFound}
		}
		if ferr.Code < fiber.StatusInternalServerError {
			return ferr.Code, ErrorDetail{Reason: ReasonInvalidRequest}
		}
	}

	return fiber.StatusInternalServerError, ErrorDetail{Reason: ReasonInternal}
}
