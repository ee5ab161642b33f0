package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"boardgame-ranking-be/internal/dto"
	"boardgame-ranking-be/internal/pkg/serverutils"
	"boardgame-ranking-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-secret"

type stubRankingService struct {
	service.IRankingService
	userId     uuid.UUID
	coarseReq  *dto.AnswerCoarseRequest
	swapsReq   *dto.ApplySwapsRequest
	coarseResp *dto.RankingStepResponse
	err        error
}

func (s *stubRankingService) Start(ctx context.Context, userId uuid.UUID, req *dto.StartRankingRequest) (*dto.RankingStepResponse, error) {
	s.userId = userId
	if s.err != nil {
		return nil, s.err
	}
	return &dto.RankingStepResponse{SessionId: uuid.New(), Phase: dto.PhaseCoarseRound, Total: 3}, nil
}

func (s *stubRankingService) GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.RankingSessionResponse, error) {
	s.userId = userId
	if s.err != nil {
		return nil, s.err
	}
	return &dto.RankingSessionResponse{
		RankingStepResponse: dto.RankingStepResponse{SessionId: sessionId, Phase: dto.PhaseDeadEnd, Reason: dto.ReasonNoCandidates},
	}, nil
}

func (s *stubRankingService) AnswerCoarse(ctx context.Context, userId uuid.UUID, req *dto.AnswerCoarseRequest) (*dto.RankingStepResponse, error) {
	s.userId = userId
	s.coarseReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.coarseResp, nil
}

func (s *stubRankingService) ApplySwaps(ctx context.Context, userId uuid.UUID, req *dto.ApplySwapsRequest) (*dto.RankingStepResponse, error) {
	s.swapsReq = req
	return &dto.RankingStepResponse{SessionId: req.SessionId, Phase: dto.PhaseFinal}, nil
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newRankingApp(svc service.IRankingService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware("en", nil))
	api := app.Group("/api")
	NewRankingController(svc, serverutils.JwtMiddleware(testSecret), "en").RegisterRoutes(api)
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, userId uuid.UUID, body string, headers ...string) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userId != uuid.Nil {
		token, err := serverutils.SignToken(testSecret, userId, nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func TestRankingController_StartRequiresAuth(t *testing.T) {
	app := newRankingApp(&stubRankingService{})

	status, env := call(t, app, "POST", "/api/ranking/v1/sessions", uuid.Nil, "")

	assert.Equal(t, 401, status)
	assert.False(t, env.Success)
}

func TestRankingController_Start(t *testing.T) {
	stub := &stubRankingService{}
	app := newRankingApp(stub)
	userId := uuid.New()

	status, env := call(t, app, "POST", "/api/ranking/v1/sessions", userId, "")

	assert.Equal(t, 201, status)
	assert.True(t, env.Success)
	assert.Equal(t, userId, stub.userId)

	var step dto.RankingStepResponse
	require.NoError(t, json.Unmarshal(env.Data, &step))
	assert.Equal(t, dto.PhaseCoarseRound, step.Phase)
}

func TestRankingController_StartRejectsBadTopN(t *testing.T) {
	app := newRankingApp(&stubRankingService{})

	status, env := call(t, app, "POST", "/api/ranking/v1/sessions", uuid.New(), `{"top_n": 0}`)

	assert.Equal(t, 400, status)
	assert.Contains(t, string(env.Data), "top_n")
}

func TestRankingController_StartWithoutGames(t *testing.T) {
	app := newRankingApp(&stubRankingService{err: service.ErrNoItems})

	status, env := call(t, app, "POST", "/api/ranking/v1/sessions", uuid.New(), "", "Accept-Language", "ru")

	assert.Equal(t, 422, status)
	assert.Equal(t, serverutils.Localize("ru", serverutils.ReasonNoItems), env.Message)
}

func TestRankingController_AnswerCoarse(t *testing.T) {
	sessionId := uuid.New()
	itemId := uuid.New()
	stub := &stubRankingService{coarseResp: &dto.RankingStepResponse{SessionId: sessionId, Phase: dto.PhaseCoarseRound}}
	app := newRankingApp(stub)

	status, _ := call(t, app, "POST", "/api/ranking/v1/sessions/"+sessionId.String()+"/coarse", uuid.New(),
		`{"item_id":"`+itemId.String()+`","tier":"excellent"}`)

	assert.Equal(t, 200, status)
	require.NotNil(t, stub.coarseReq)
	assert.Equal(t, sessionId, stub.coarseReq.SessionId)
	assert.Equal(t, itemId, stub.coarseReq.ItemId)
	assert.Equal(t, "excellent", stub.coarseReq.Tier)
}

func TestRankingController_AnswerCoarseValidation(t *testing.T) {
	stub := &stubRankingService{}
	app := newRankingApp(stub)
	path := "/api/ranking/v1/sessions/" + uuid.NewString() + "/coarse"

	status, _ := call(t, app, "POST", path, uuid.New(), `{"item_id":"`+uuid.NewString()+`","tier":"cool"}`)
	assert.Equal(t, 400, status)

	status, _ = call(t, app, "POST", path, uuid.New(), `{"tier":"good"}`)
	assert.Equal(t, 400, status)

	status, _ = call(t, app, "POST", path, uuid.New(), `{not json`)
	assert.Equal(t, 400, status)

	assert.Nil(t, stub.coarseReq)
}

func TestRankingController_InvalidPhaseIsConflict(t *testing.T) {
	app := newRankingApp(&stubRankingService{err: service.ErrInvalidPhase})

	status, env := call(t, app, "POST", "/api/ranking/v1/sessions/"+uuid.NewString()+"/coarse", uuid.New(),
		`{"item_id":"`+uuid.NewString()+`","tier":"good"}`)

	assert.Equal(t, 409, status)
	assert.Contains(t, string(env.Data), serverutils.ReasonInvalidPhase)
}

func TestRankingController_ShowLocalizesDeadEnd(t *testing.T) {
	app := newRankingApp(&stubRankingService{})

	status, env := call(t, app, "GET", "/api/ranking/v1/sessions/"+uuid.NewString(), uuid.New(), "", "Accept-Language", "ru")
	require.Equal(t, 200, status)

	var session dto.RankingSessionResponse
	require.NoError(t, json.Unmarshal(env.Data, &session))
	assert.Equal(t, dto.PhaseDeadEnd, session.Phase)
	assert.Equal(t, serverutils.Localize("ru", serverutils.ReasonNoCandidates), session.Message)
}

func TestRankingController_MalformedSessionId(t *testing.T) {
	app := newRankingApp(&stubRankingService{})

	status, _ := call(t, app, "GET", "/api/ranking/v1/sessions/not-a-uuid", uuid.New(), "")

	assert.Equal(t, 404, status)
}

func TestRankingController_ApplySwaps(t *testing.T) {
	stub := &stubRankingService{}
	app := newRankingApp(stub)
	sessionId := uuid.New()

	status, _ := call(t, app, "POST", "/api/ranking/v1/sessions/"+sessionId.String()+"/swaps", uuid.New(), `{"swaps":[[1,3],[0,5]]}`)

	assert.Equal(t, 200, status)
	require.NotNil(t, stub.swapsReq)
	assert.Equal(t, sessionId, stub.swapsReq.SessionId)
	assert.Equal(t, [][2]int{{1, 3}, {0, 5}}, stub.swapsReq.Swaps)
}
