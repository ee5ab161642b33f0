package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"boardgame-ranking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    ErrorDetail `json:"data"`
}

func newErrorApp(handlerErr error, internal *[]error) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware("en", func(c *fiber.Ctx, err error) {
		if internal != nil {
			*internal = append(*internal, err)
		}
	}))
	app.Get("/", func(c *fiber.Ctx) error { return handlerErr })
	return app
}

func doGet(t *testing.T, app *fiber.App, headers map[string]string) (int, errorBody) {
	t.Helper()
	req := httptest.NewRequest("GET", "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorHandlerMiddleware_MapsDomainErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
		reason string
	}{
		{service.ErrSessionNotFound, 404, ReasonSessionNotFound},
		{fmt.Errorf("wrapped: %w", service.ErrInvalidPhase), 409, ReasonInvalidPhase},
		{service.ErrNoItems, 422, ReasonNoItems},
		{service.ErrInvalidItem, 422, ReasonInvalidItem},
		{fmt.Errorf("%w: nope", service.ErrInvalidTier), 400, ReasonInvalidTier},
		{&ValidationError{Fields: map[string]string{"tier": "required"}}, 400, ReasonInvalidRequest},
		{fiber.ErrUnauthorized, 401, ReasonUnauthorized},
		{fiber.ErrBadRequest, 400, ReasonInvalidRequest},
	}

	for _, tt := range tests {
		t.Run(tt.reason, func(t *testing.T) {
			status, body := doGet(t, newErrorApp(tt.err, nil), nil)
			assert.Equal(t, tt.status, status)
			assert.False(t, body.Success)
			assert.Equal(t, tt.status, body.Code)
			assert.Equal(t, tt.reason, body.Data.Reason)
			assert.Equal(t, Localize("en", tt.reason), body.Message)
		})
	}
}

func TestErrorHandlerMiddleware_HidesInternalErrors(t *testing.T) {
	var internal []error
	app := newErrorApp(errors.New("pq: connection refused to 10.0.0.5"), &internal)

	status, body := doGet(t, app, nil)

	assert.Equal(t, 500, status)
	assert.Equal(t, ReasonInternal, body.Data.Reason)
	assert.NotContains(t, body.Message, "10.0.0.5")
	require.Len(t, internal, 1)
	assert.Contains(t, internal[0].Error(), "connection refused")
}

func TestErrorHandlerMiddleware_Localizes(t *testing.T) {
	app := newErrorApp(service.ErrSessionNotFound, nil)

	_, ru := doGet(t, app, map[string]string{"Accept-Language": "ru-RU,ru;q=0.9"})
	assert.Equal(t, messages["ru"][ReasonSessionNotFound], ru.Message)

	_, fallback := doGet(t, app, map[string]string{"Accept-Language": "de"})
	assert.Equal(t, messages["en"][ReasonSessionNotFound], fallback.Message)
}

func TestLocalize_FallsBackToEnglish(t *testing.T) {
	assert.Equal(t, messages["en"][ReasonNoItems], Localize("fr", ReasonNoItems))
	for lang, m := range messages {
		assert.Len(t, m, len(messages["en"]), lang)
	}
}

func TestValidateRequest(t *testing.T) {
	type request struct {
		ItemId uuid.UUID `json:"item_id" validate:"required"`
		Tier   string    `json:"tier" validate:"required,oneof=bad good excellent"`
	}

	err := ValidateRequest(request{Tier: "meh"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "required", verr.Fields["item_id"])
	assert.Equal(t, "oneof=bad good excellent", verr.Fields["tier"])

	assert.NoError(t, ValidateRequest(request{ItemId: uuid.New(), Tier: "good"}))
}

func TestJwtMiddleware(t *testing.T) {
	const secret = "test-secret"
	userId := uuid.New()

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware("en", nil))
	app.Get("/me", JwtMiddleware(secret), func(c *fiber.Ctx) error {
		id, err := UserID(c)
		if err != nil {
			return err
		}
		return c.JSON(SuccessResponse("ok", id))
	})

	call := func(auth string) int {
		req := httptest.NewRequest("GET", "/me", nil)
		if auth != "" {
			req.Header.Set("Authorization", auth)
		}
		resp, err := app.Test(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	valid, err := SignToken(secret, userId, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	require.NoError(t, err)
	assert.Equal(t, 200, call("Bearer "+valid))

	wrongKey, err := SignToken("other", userId, nil)
	require.NoError(t, err)
	assert.Equal(t, 401, call("Bearer "+wrongKey))

	expired, err := SignToken(secret, userId, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})
	require.NoError(t, err)
	assert.Equal(t, 401, call("Bearer "+expired))

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "not-a-uuid"}).SignedString([]byte(secret))
	require.NoError(t, err)
	assert.Equal(t, 401, call("Bearer "+noSubject))

	assert.Equal(t, 401, call(""))
}
