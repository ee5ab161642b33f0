// FILE: internal/service/ranking_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"boardgame-ranking-be/internal/dto"
	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/pkg/logger"
	"boardgame-ranking-be/internal/repository/specification"
	"boardgame-ranking-be/internal/repository/unitofwork"
	"boardgame-ranking-be/pkg/events"
	"boardgame-ranking-be/pkg/lock"
	"boardgame-ranking-be/pkg/ranking"

	"github.com/google/uuid"
)

const rankingModule = "RANKING"

// EventPublisher emits domain events. *nats.Publisher satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// IRankingService drives the two-round ranking funnel.
//
// Every mutating call takes the per-session lock, then loads, mutates and
// saves the session record inside one transaction. Calls for different
// sessions share no state.
type IRankingService interface {
	Start(ctx context.Context, userId uuid.UUID, req *dto.StartRankingRequest) (*dto.RankingStepResponse, error)
	GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.RankingSessionResponse, error)
	AnswerCoarse(ctx context.Context, userId uuid.UUID, req *dto.AnswerCoarseRequest) (*dto.RankingStepResponse, error)
	AnswerFine(ctx context.Context, userId uuid.UUID, req *dto.AnswerFineRequest) (*dto.RankingStepResponse, error)
	ReorderGroups(ctx context.Context, userId uuid.UUID, req *dto.ReorderGroupsRequest) (*dto.RankingStepResponse, error)
	ApplySwaps(ctx context.Context, userId uuid.UUID, req *dto.ApplySwapsRequest) (*dto.RankingStepResponse, error)
	GetTop(ctx context.Context, userId uuid.UUID) (*dto.TopListResponse, error)
}

type rankingService struct {
	uowFactory       unitofwork.RepositoryFactory
	locker           lock.SessionLocker
	publisherService IPublisherService
	eventPublisher   EventPublisher
	logger           logger.ILogger
	topN             int
}

// NewRankingService wires the ranking engine. publisherService and
// eventPublisher may be nil.
func NewRankingService(
	uowFactory unitofwork.RepositoryFactory,
	locker lock.SessionLocker,
	publisherService IPublisherService,
	eventPublisher EventPublisher,
	logger logger.ILogger,
	topN int,
) IRankingService {
	if topN <= 0 {
		topN = ranking.DefaultTopN
	}
	return &rankingService{
		uowFactory:       uowFactory,
		locker:           locker,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		logger:           logger,
		topN:             topN,
	}
}

// sessionMutation changes session in place. It reports whether the record
// must be written back.
type sessionMutation func(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.RankingSession) (bool, error)

func (s *rankingService) Start(ctx context.Context, userId uuid.UUID, req *dto.StartRankingRequest) (*dto.RankingStepResponse, error) {
	topN := s.topN
	if req != nil && req.TopN != nil && *req.TopN > 0 {
		topN = *req.TopN
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	games, err := uow.GameRepository().FindRatedByUser(ctx, userId)
	if err != nil {
		return nil, fmt.Errorf("load rated games: %w", err)
	}
	if len(games) == 0 {
		return nil, ErrNoItems
	}

	sequence := make([]uuid.UUID, len(games))
	for i, g := range games {
		sequence[i] = g.Id
	}

	session := &entity.RankingSession{
		Id:            uuid.New(),
		UserId:        userId,
		State:         entity.RankingStateCoarse,
		TopN:          topN,
		ItemSequence:  sequence,
		CoarseAnswers: make(map[uuid.UUID]ranking.CoarseTier),
		FineAnswers:   make(map[uuid.UUID]ranking.FineTier),
		CreatedAt:     time.Now(),
	}
	if err := session.Validate(); err != nil {
		return nil, err
	}
	if err := uow.RankingSessionRepository().Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create ranking session: %w", err)
	}
	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit ranking session: %w", err)
	}

	s.logger.Info(rankingModule, "Ranking session started", map[string]interface{}{
		"session_id": session.Id,
		"user_id":    userId,
		"total":      len(sequence),
		"top_n":      topN,
	})
	s.emit(ctx, events.NewRankingEvent(events.RankingSessionStarted, session.Id, userId, map[string]interface{}{
		"total_games": len(sequence),
	}))

	return &dto.RankingStepResponse{
		SessionId: session.Id,
		Phase:     dto.PhaseCoarseRound,
		NextItem:  toGameItem(games[0]),
		Answered:  0,
		Total:     len(sequence),
	}, nil
}

func (s *rankingService) GetSession(ctx context.Context, userId uuid.UUID, sessionId uuid.UUID) (*dto.RankingSessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.RankingSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, fmt.Errorf("load ranking session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	step, err := s.describe(ctx, uow, session)
	if err != nil {
		return nil, err
	}

	return &dto.RankingSessionResponse{
		RankingStepResponse: *step,
		TopN:                session.TopN,
		CreatedAt:           session.CreatedAt,
		UpdatedAt:           session.UpdatedAt,
		CompletedAt:         session.CompletedAt,
	}, nil
}

func (s *rankingService) AnswerCoarse(ctx context.Context, userId uuid.UUID, req *dto.AnswerCoarseRequest) (*dto.RankingStepResponse, error) {
	tier, err := ranking.ParseCoarseTier(req.Tier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTier, err)
	}

	return s.mutateSession(ctx, userId, req.SessionId, func(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.RankingSession) (bool, error) {
		switch session.State {
		case entity.RankingStateCoarse:
		case entity.RankingStateFine, entity.RankingStateDeadEnd:
			// A repeated submission of the last coarse answer that closed the
			// round is accepted and changes nothing.
			if prev, ok := session.CoarseAnswers[req.ItemId]; ok && prev == tier {
				return false, nil
			}
			return false, ErrInvalidPhase
		default:
			return false, ErrInvalidPhase
		}

		if !slices.Contains(session.ItemSequence, req.ItemId) {
			return false, ErrInvalidItem
		}

		session.CoarseAnswers[req.ItemId] = tier

		next := ranking.NextUnanswered(session.ItemSequence, session.CoarseAnswers, session.CoarseCursor)
		if next >= 0 {
			session.CoarseCursor = next
			return true, nil
		}
		session.CoarseCursor = len(session.ItemSequence)

		pool := ranking.SelectCandidates(session.ItemSequence, session.CoarseAnswers, session.TopN)
		now := time.Now()
		if len(pool) == 0 {
			session.State = entity.RankingStateDeadEnd
			session.CompletedAt = &now
			return true, nil
		}

		session.CandidatePool = pool
		session.State = entity.RankingStateFine
		session.FineCursor = 0
		return true, nil
	})
}

func (s *rankingService) AnswerFine(ctx context.Context, userId uuid.UUID, req *dto.AnswerFineRequest) (*dto.RankingStepResponse, error) {
	tier, err := ranking.ParseFineTier(req.Tier)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTier, err)
	}

	return s.mutateSession(ctx, userId, req.SessionId, func(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.RankingSession) (bool, error) {
		if session.State != entity.RankingStateFine {
			return false, ErrInvalidPhase
		}
		if session.CandidatePool == nil {
			return false, ErrNoCandidatePool
		}
		if !slices.Contains(session.CandidatePool, req.ItemId) {
			return false, ErrInvalidItem
		}

		session.FineAnswers[req.ItemId] = tier

		next := ranking.NextUnanswered(session.CandidatePool, session.FineAnswers, session.FineCursor)
		if next >= 0 {
			session.FineCursor = next
			return true, nil
		}
		session.FineCursor = len(session.CandidatePool)

		now := time.Now()
		session.FinalOrder = ranking.BuildFinalOrder(session.CandidatePool, session.FineAnswers, session.TopN)
		session.State = entity.RankingStateFinal
		session.CompletedAt = &now
		return true, nil
	})
}

func (s *rankingService) ReorderGroups(ctx context.Context, userId uuid.UUID, req *dto.ReorderGroupsRequest) (*dto.RankingStepResponse, error) {
	groups := make(map[ranking.FineTier][]uuid.UUID, len(req.Groups))
	for label, ids := range req.Groups {
		tier, err := ranking.ParseFineTier(label)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidTier, err)
		}
		groups[tier] = ids
	}

	return s.mutateSession(ctx, userId, req.SessionId, func(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.RankingSession) (bool, error) {
		if session.State != entity.RankingStateFinal {
			return false, ErrInvalidPhase
		}
		for _, ids := range groups {
			for _, id := range ids {
				if !slices.Contains(session.CandidatePool, id) {
					return false, ErrInvalidItem
				}
			}
		}

		session.FinalOrder = ranking.MergeOrderedGroups(groups, ranking.FinalPriority, session.TopN)
		return true, nil
	})
}

func (s *rankingService) ApplySwaps(ctx context.Context, userId uuid.UUID, req *dto.ApplySwapsRequest) (*dto.RankingStepResponse, error) {
	swaps := make([]ranking.Swap, len(req.Swaps))
	for i, pair := range req.Swaps {
		swaps[i] = ranking.Swap{I: pair[0], J: pair[1]}
	}

	return s.mutateSession(ctx, userId, req.SessionId, func(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.RankingSession) (bool, error) {
		if session.State != entity.RankingStateFinal {
			return false, ErrInvalidPhase
		}
		session.FinalOrder = ranking.ApplySwaps(session.FinalOrder, swaps)
		return true, nil
	})
}

func (s *rankingService) GetTop(ctx context.Context, userId uuid.UUID) (*dto.TopListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entries, err := uow.RankingTopRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "rank"},
	)
	if err != nil {
		return nil, fmt.Errorf("load top list: %w", err)
	}

	res := &dto.TopListResponse{Top: make([]*dto.RankedGameItem, 0, len(entries))}
	if len(entries) == 0 {
		return res, nil
	}

	sessionId := entries[0].SessionId
	res.SessionId = &sessionId

	order := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		order[i] = e.GameId
	}
	top, err := s.rankedGames(ctx, uow, order)
	if err != nil {
		return nil, err
	}
	res.Top = top
	return res, nil
}

// mutateSession runs mutate under the session lock and inside one
// transaction. Nothing is written unless mutate succeeds and the record
// still satisfies its invariants.
func (s *rankingService) mutateSession(ctx context.Context, userId, sessionId uuid.UUID, mutate sessionMutation) (*dto.RankingStepResponse, error) {
	release, err := s.locker.Lock(ctx, sessionId.String())
	if err != nil {
		return nil, err
	}
	defer release()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	session, err := uow.RankingSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.UserOwnedBy{UserID: userId},
		specification.ForUpdate{},
	)
	if err != nil {
		return nil, fmt.Errorf("load ranking session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	prevState := session.State
	prevOrder := append([]uuid.UUID(nil), session.FinalOrder...)

	changed, err := mutate(ctx, uow, session)
	if err != nil {
		return nil, err
	}

	if changed {
		if err := session.Validate(); err != nil {
			return nil, fmt.Errorf("ranking session %s: %w", session.Id, err)
		}
		if err := uow.RankingSessionRepository().Update(ctx, session); err != nil {
			return nil, fmt.Errorf("save ranking session: %w", err)
		}
	}

	step, err := s.describe(ctx, uow, session)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit ranking session: %w", err)
	}

	s.afterCommit(ctx, session, prevState, !slices.Equal(prevOrder, session.FinalOrder))
	return step, nil
}

// describe renders the session's current position without changing it.
func (s *rankingService) describe(ctx context.Context, uow unitofwork.UnitOfWork, session *entity.RankingSession) (*dto.RankingStepResponse, error) {
	step := &dto.RankingStepResponse{
		SessionId: session.Id,
		Phase:     string(session.State),
		Answered:  session.Answered(),
		Total:     session.Total(),
	}

	var nextId *uuid.UUID
	switch session.State {
	case entity.RankingStateCoarse:
		if i := ranking.NextUnanswered(session.ItemSequence, session.CoarseAnswers, session.CoarseCursor); i >= 0 {
			nextId = &session.ItemSequence[i]
		}
	case entity.RankingStateFine:
		if i := ranking.NextUnanswered(session.CandidatePool, session.FineAnswers, session.FineCursor); i >= 0 {
			nextId = &session.CandidatePool[i]
		}
	case entity.RankingStateFinal:
		top, err := s.rankedGames(ctx, uow, session.FinalOrder)
		if err != nil {
			return nil, err
		}
		step.Top = top
	case entity.RankingStateDeadEnd:
		step.Reason = dto.ReasonNoCandidates
	}

	if nextId != nil {
		game, err := uow.GameRepository().FindOne(ctx, specification.ByID{ID: *nextId})
		if err != nil {
			return nil, fmt.Errorf("load game %s: %w", *nextId, err)
		}
		if game == nil {
			// removed from the catalog after the session started
			step.NextItem = &dto.GameItem{Id: *nextId}
		} else {
			step.NextItem = toGameItem(game)
		}
	}

	return step, nil
}

// rankedGames numbers order from 1 and attaches catalog details. Games that
// disappeared from the catalog keep their rank with an empty name.
func (s *rankingService) rankedGames(ctx context.Context, uow unitofwork.UnitOfWork, order []uuid.UUID) ([]*dto.RankedGameItem, error) {
	result := make([]*dto.RankedGameItem, 0, len(order))
	if len(order) == 0 {
		return result, nil
	}

	games, err := uow.GameRepository().FindAll(ctx, specification.ByIDs{IDs: order})
	if err != nil {
		return nil, fmt.Errorf("load ranked games: %w", err)
	}
	byId := make(map[uuid.UUID]*entity.Game, len(games))
	for _, g := range games {
		byId[g.Id] = g
	}

	for _, r := range ranking.Number(order) {
		item := dto.GameItem{Id: r.Id}
		if g, ok := byId[r.Id]; ok {
			item = *toGameItem(g)
		}
		result = append(result, &dto.RankedGameItem{GameItem: item, Rank: r.Rank})
	}
	return result, nil
}

func (s *rankingService) afterCommit(ctx context.Context, session *entity.RankingSession, prevState entity.RankingState, orderChanged bool) {
	details := map[string]interface{}{
		"session_id": session.Id,
		"user_id":    session.UserId,
		"state":      session.State,
		"answered":   session.Answered(),
		"total":      session.Total(),
	}
	s.logger.Debug(rankingModule, "Ranking answer applied", details)

	if prevState != session.State {
		s.logger.Info(rankingModule, "Ranking session changed phase", map[string]interface{}{
			"session_id": session.Id,
			"from":       prevState,
			"to":         session.State,
		})
		switch session.State {
		case entity.RankingStateFine:
			s.logger.Info(rankingModule, "Candidate pool selected", map[string]interface{}{
				"session_id": session.Id,
				"candidates": len(session.CandidatePool),
			})
		case entity.RankingStateFinal:
			s.emit(ctx, events.NewRankingEvent(events.RankingCompleted, session.Id, session.UserId, map[string]interface{}{
				"top_size": len(session.FinalOrder),
			}))
		case entity.RankingStateDeadEnd:
			s.logger.Warn(rankingModule, "Coarse round produced no candidates", map[string]interface{}{
				"session_id": session.Id,
			})
			s.emit(ctx, events.NewRankingEvent(events.RankingDeadEnd, session.Id, session.UserId, nil))
		}
	} else if session.State == entity.RankingStateFinal && orderChanged {
		s.emit(ctx, events.NewRankingEvent(events.RankingReordered, session.Id, session.UserId, map[string]interface{}{
			"top_size": len(session.FinalOrder),
		}))
	}

	if session.State == entity.RankingStateFinal && orderChanged {
		s.publishFinalized(ctx, session)
	}
}

func (s *rankingService) publishFinalized(ctx context.Context, session *entity.RankingSession) {
	if s.publisherService == nil {
		return
	}
	payload, err := json.Marshal(dto.RankingFinalizedMessage{
		SessionId:  session.Id,
		UserId:     session.UserId,
		FinalOrder: session.FinalOrder,
	})
	if err != nil {
		s.logger.Error(rankingModule, "Failed to marshal finalized ranking", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error(rankingModule, "Failed to publish finalized ranking", map[string]interface{}{
			"session_id": session.Id,
			"error":      err.Error(),
		})
	}
}

// emit never fails the caller; the session is already committed.
func (s *rankingService) emit(ctx context.Context, evt events.Event) {
	if s.eventPublisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
	defer cancel()
	if err := s.eventPublisher.Publish(pubCtx, evt); err != nil {
		s.logger.Error(rankingModule, "Failed to publish "+evt.EventType()+" event", map[string]interface{}{"error": err.Error()})
	}
}

func toGameItem(g *entity.Game) *dto.GameItem {
	var genre *string
	if g.Genre != nil {
		v := string(*g.Genre)
		genre = &v
	}
	return &dto.GameItem{
		Id:            g.Id,
		Name:          g.Name,
		BggRank:       g.BggRank,
		NizaGamesRank: g.NizaGamesRank,
		Genre:         genre,
		UsersRated:    g.UsersRated,
		YearPublished: g.YearPublished,
		Average:       g.Average,
		BayesAverage:  g.BayesAverage,
		AverageWeight: g.AverageWeight,
		MinPlayers:    g.MinPlayers,
		MaxPlayers:    g.MaxPlayers,
		PlayingTime:   g.PlayingTime,
		MinAge:        g.MinAge,
		Image:         g.Image,
		Thumbnail:     g.Thumbnail,
	}
}
