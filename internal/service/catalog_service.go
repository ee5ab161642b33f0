package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"boardgame-ranking-be/internal/dto"
	"boardgame-ranking-be/internal/entity"
	"boardgame-ranking-be/internal/pkg/logger"
	"boardgame-ranking-be/internal/repository/specification"
	"boardgame-ranking-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const catalogModule = "CATALOG"

// ErrInvalidCatalog is returned for import files that cannot be read at all.
var ErrInvalidCatalog = errors.New("invalid catalog file")

type ICatalogService interface {
	GetRatedGames(ctx context.Context, userId uuid.UUID, req *dto.GetRatedGamesRequest) (*dto.GetRatedGamesResponse, error)
	// ImportCatalog replaces every game and rating with rows.
	ImportCatalog(ctx context.Context, rows []*dto.ImportGameRow) (*dto.ImportCatalogResponse, error)
}

type catalogService struct {
	uowFactory unitofwork.RepositoryFactory
	logger     logger.ILogger
}

func NewCatalogService(uowFactory unitofwork.RepositoryFactory, logger logger.ILogger) ICatalogService {
	return &catalogService{
		uowFactory: uowFactory,
		logger:     logger,
	}
}

func (s *catalogService) GetRatedGames(ctx context.Context, userId uuid.UUID, req *dto.GetRatedGamesRequest) (*dto.GetRatedGamesResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if req != nil {
		if req.Genre != "" {
			specs = append(specs, specification.ByGenre{Genre: req.Genre})
		}
		if req.Name != "" {
			specs = append(specs, specification.NameContains{Query: req.Name})
		}
	}

	games, err := uow.GameRepository().FindRatedByUser(ctx, userId, specs...)
	if err != nil {
		return nil, fmt.Errorf("load rated games: %w", err)
	}

	res := &dto.GetRatedGamesResponse{
		Games: make([]*dto.GameItem, 0, len(games)),
		Total: len(games),
	}
	for _, g := range games {
		res.Games = append(res.Games, toGameItem(g))
	}
	return res, nil
}

func (s *catalogService) ImportCatalog(ctx context.Context, rows []*dto.ImportGameRow) (*dto.ImportCatalogResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.GameRepository()
	if err := repo.DeleteAllRatings(ctx); err != nil {
		return nil, fmt.Errorf("clear ratings: %w", err)
	}
	if err := repo.DeleteAll(ctx); err != nil {
		return nil, fmt.Errorf("clear games: %w", err)
	}

	res := &dto.ImportCatalogResponse{}
	for _, row := range rows {
		game := &entity.Game{
			Id:            uuid.New(),
			Name:          row.Name,
			BggRank:       row.BggRank,
			NizaGamesRank: row.NizaGamesRank,
		}
		if row.Genre != nil {
			genre := entity.GameGenre(*row.Genre)
			game.Genre = &genre
		}
		if err := repo.Create(ctx, game); err != nil {
			return nil, fmt.Errorf("create game %q: %w", row.Name, err)
		}
		res.Games++

		for userId, rank := range row.Ratings {
			rating := &entity.Rating{
				Id:     uuid.New(),
				UserId: userId,
				GameId: game.Id,
				Rank:   rank,
			}
			if err := repo.CreateRating(ctx, rating); err != nil {
				return nil, fmt.Errorf("create rating for %q: %w", row.Name, err)
			}
			res.Ratings++
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit catalog import: %w", err)
	}

	s.logger.Info(catalogModule, "Catalog imported", map[string]interface{}{
		"games":   res.Games,
		"ratings": res.Ratings,
	})
	return res, nil
}

// ParseCatalogCSV reads a sheet laid out as
//
//	name, bgg rank, niza games rank, genre, <one column per user>
//
// A user column header is either the user's id or a name; names map to a
// stable name-based id. Blank, non-numeric and "нет" cells mean "not rated".
// Rows without a name are skipped.
func ParseCatalogCSV(r io.Reader) ([]*dto.ImportGameRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	if len(header) < 5 {
		return nil, fmt.Errorf("%w: expected at least 5 columns, got %d", ErrInvalidCatalog, len(header))
	}

	userColumns := make(map[int]uuid.UUID)
	for i := 4; i < len(header); i++ {
		label := strings.TrimSpace(header[i])
		if label == "" {
			continue
		}
		userColumns[i] = UserIdFromLabel(label)
	}

	var rows []*dto.ImportGameRow
	for _, record := range records[1:] {
		name := cell(record, 0)
		if name == "" {
			continue
		}

		row := &dto.ImportGameRow{
			Name:          name,
			BggRank:       parseOptionalInt(cell(record, 1)),
			NizaGamesRank: parseOptionalInt(cell(record, 2)),
			Ratings:       make(map[uuid.UUID]int),
		}
		if genre := strings.ToLower(cell(record, 3)); genre != "" {
			row.Genre = &genre
		}

		for idx, userId := range userColumns {
			if v := parseOptionalInt(cell(record, idx)); v != nil {
				row.Ratings[userId] = *v
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// UserIdFromLabel returns the id a catalog column header stands for.
func UserIdFromLabel(label string) uuid.UUID {
	if id, err := uuid.Parse(label); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.ToLower(label)))
}

func cell(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func parseOptionalInt(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
