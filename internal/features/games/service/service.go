package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"gameportal-backend/internal/common/apperrors"
	"gameportal-backend/internal/common/cache"
	"gameportal-backend/internal/common/logger"
	"gameportal-backend/internal/common/validation"
	"gameportal-backend/internal/features/games/models"
	"gameportal-backend/internal/features/games/repository"
	profilemodels "gameportal-backend/internal/features/profile/models"
	profilerepo "gameportal-backend/internal/features/profile/repository"
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrGameNotFound = errors.New("game not found")
	ErrSlugTaken    = errors.New("game slug already exists")
)

const (
	recentScoresLimit = 5

	statsCacheTTL       = 30 * time.Second
	statsCacheKeyPrefix = "gamestats:"
)

// UserDirectory is the slice of the profile feature the games feature needs:
// resolving an existing user by wallet address. Recording never creates users.
type UserDirectory interface {
	GetByAddress(ctx context.Context, address string) (*profilemodels.User, error)
}

type GameService interface {
	ListGames(ctx context.Context) ([]*models.Game, error)
	GetGame(ctx context.Context, gameSlug string) (*models.Game, error)
	CreateGame(ctx context.Context, req *models.CreateGameRequest) (*models.Game, error)

	RecordPlay(ctx context.Context, address string, req *models.RecordPlayRequest) (*models.GamePlay, error)
	RecordScore(ctx context.Context, address string, req *models.RecordScoreRequest) (*models.GameScore, error)

	GetStats(ctx context.Context, address string) ([]*models.GameStats, error)
}

type gameService struct {
	repo  repository.GameRepository
	users UserDirectory
	cache *cache.Service // nil disables stats caching
}

func NewGameService(repo repository.GameRepository, users UserDirectory, statsCache *cache.Service) GameService {
	return &gameService{repo: repo, users: users, cache: statsCache}
}

func (s *gameService) ListGames(ctx context.Context) ([]*models.Game, error) {
	return s.repo.List(ctx)
}

func (s *gameService) GetGame(ctx context.Context, gameSlug string) (*models.Game, error) {
	game, err := s.repo.GetBySlug(ctx, gameSlug)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	return game, nil
}

func (s *gameService) CreateGame(ctx context.Context, req *models.CreateGameRequest) (*models.Game, error) {
	gameSlug := strings.TrimSpace(req.Slug)
	if gameSlug == "" {
		gameSlug = slug.Make(req.Name)
	}
	if err := validation.ValidateSlug(gameSlug); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeValidation, err.Error())
	}

	game := &models.Game{
		ID:          uuid.New().String(),
		Slug:        gameSlug,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		PlayLink:    req.PlayLink,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, game); err != nil {
		if errors.Is(err, repository.ErrSlugTaken) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}

	return game, nil
}

func (s *gameService) RecordPlay(ctx context.Context, address string, req *models.RecordPlayRequest) (*models.GamePlay, error) {
	user, game, err := s.resolve(ctx, address, req.GameSlug)
	if err != nil {
		return nil, err
	}

	play := &models.GamePlay{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		GameID:    game.ID,
		GameSlug:  game.Slug,
		GameName:  game.Name,
		Duration:  req.Duration,
		Completed: req.Completed,
		PlayedAt:  time.Now(),
	}

	if err := s.repo.InsertPlay(ctx, play); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, address)
	return play, nil
}

func (s *gameService) RecordScore(ctx context.Context, address string, req *models.RecordScoreRequest) (*models.GameScore, error) {
	user, game, err := s.resolve(ctx, address, req.GameSlug)
	if err != nil {
		return nil, err
	}

	score := &models.GameScore{
		ID:         uuid.New().String(),
		UserID:     user.ID,
		GameID:     game.ID,
		GameSlug:   game.Slug,
		GameName:   game.Name,
		Score:      req.Score,
		Metadata:   req.Metadata,
		AchievedAt: time.Now(),
	}

	if err := s.repo.InsertScore(ctx, score); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, address)
	return score, nil
}

func (s *gameService) GetStats(ctx context.Context, address string) ([]*models.GameStats, error) {
	if s.cache != nil {
		var cached []*models.GameStats
		err := s.cache.Get(ctx, statsCacheKeyPrefix+address, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.Warn().Err(err).Str("address", address).Msg("Stats cache read failed")
		}
	}

	user, err := s.users.GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, profilerepo.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	plays, err := s.repo.PlaysByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	scores, err := s.repo.ScoresByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	stats := aggregateStats(plays, scores)

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKeyPrefix+address, stats, statsCacheTTL); err != nil {
			logger.Warn().Err(err).Str("address", address).Msg("Failed to cache game stats")
		}
	}

	return stats, nil
}

// resolve maps (address, slug) to the existing user and game, keeping the two
// not-found cases distinguishable for the handler.
func (s *gameService) resolve(ctx context.Context, address, gameSlug string) (*profilemodels.User, *models.Game, error) {
	user, err := s.users.GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, profilerepo.ErrUserNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, err
	}

	game, err := s.repo.GetBySlug(ctx, gameSlug)
	if err != nil {
		if errors.Is(err, repository.ErrGameNotFound) {
			return nil, nil, ErrGameNotFound
		}
		return nil, nil, err
	}

	return user, game, nil
}

func (s *gameService) invalidateStats(ctx context.Context, address string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, statsCacheKeyPrefix+address); err != nil {
		logger.Warn().Err(err).Str("address", address).Msg("Failed to invalidate stats cache")
	}
}

// aggregateStats folds play and score rows into per-game summaries. The fold
// is order-independent: counts, maxima and the sorted recent list do not
// depend on input ordering.
func aggregateStats(plays []*models.GamePlay, scores []*models.GameScore) []*models.GameStats {
	byGame := make(map[string]*models.GameStats)

	get := func(gameID, gameSlug, gameName string) *models.GameStats {
		st, ok := byGame[gameID]
		if !ok {
			st = &models.GameStats{
				GameID:       gameID,
				GameSlug:     gameSlug,
				GameName:     gameName,
				RecentScores: []models.ScoreEntry{},
			}
			byGame[gameID] = st
		}
		return st
	}

	for _, play := range plays {
		st := get(play.GameID, play.GameSlug, play.GameName)
		st.PlayCount++
		if st.LastPlayedAt == nil || play.PlayedAt.After(*st.LastPlayedAt) {
			playedAt := play.PlayedAt
			st.LastPlayedAt = &playedAt
		}
	}

	for _, score := range scores {
		st := get(score.GameID, score.GameSlug, score.GameName)
		if score.Score > st.HighScore {
			st.HighScore = score.Score
		}
		st.RecentScores = append(st.RecentScores, models.ScoreEntry{
			Score:      score.Score,
			AchievedAt: score.AchievedAt,
		})
	}

	result := make([]*models.GameStats, 0, len(byGame))
	for _, st := range byGame {
		sort.SliceStable(st.RecentScores, func(i, j int) bool {
			return st.RecentScores[i].AchievedAt.After(st.RecentScores[j].AchievedAt)
		})
		if len(st.RecentScores) > recentScoresLimit {
			st.RecentScores = st.RecentScores[:recentScoresLimit]
		}
		result = append(result, st)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].GameSlug < result[j].GameSlug
	})

	return result
}
