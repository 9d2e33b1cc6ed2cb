package repository

import (
	"context"
	"errors"

	"gameportal-backend/internal/features/games/models"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrSlugTaken    = errors.New("game slug already exists")
)

type GameRepository interface {
	GetBySlug(ctx context.Context, slug string) (*models.Game, error)
	List(ctx context.Context) ([]*models.Game, error)
	Create(ctx context.Context, game *models.Game) error

	InsertPlay(ctx context.Context, play *models.GamePlay) error
	InsertScore(ctx context.Context, score *models.GameScore) error

	// PlaysByUser and ScoresByUser return rows joined with the game's slug and
	// name so aggregation needs no second lookup.
	PlaysByUser(ctx context.Context, userID string) ([]*models.GamePlay, error)
	ScoresByUser(ctx context.Context, userID string) ([]*models.GameScore, error)
}
