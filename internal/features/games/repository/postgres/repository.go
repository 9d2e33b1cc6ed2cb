package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"gameportal-backend/internal/features/games/models"
	"gameportal-backend/internal/features/games/repository"
)

type postgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) repository.GameRepository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetBySlug(ctx context.Context, slug string) (*models.Game, error) {
	query := `
		SELECT id, slug, name, description, image_url, play_link, created_at
		FROM games
		WHERE slug = $1
	`

	var game models.Game
	err := r.db.QueryRowContext(ctx, query, slug).Scan(
		&game.ID, &game.Slug, &game.Name, &game.Description,
		&game.ImageURL, &game.PlayLink, &game.CreatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game by slug: %w", err)
	}

	return &game, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*models.Game, error) {
	query := `
		SELECT id, slug, name, description, image_url, play_link, created_at
		FROM games
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var games []*models.Game
	for rows.Next() {
		var game models.Game
		err := rows.Scan(&game.ID, &game.Slug, &game.Name, &game.Description,
			&game.ImageURL, &game.PlayLink, &game.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan game: %w", err)
		}
		games = append(games, &game)
	}

	return games, rows.Err()
}

func (r *postgresRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games (id, slug, name, description, image_url, play_link)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		game.ID, game.Slug, game.Name, game.Description, game.ImageURL, game.PlayLink)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return repository.ErrSlugTaken
		}
		return fmt.Errorf("failed to create game: %w", err)
	}

	return nil
}

func (r *postgresRepository) InsertPlay(ctx context.Context, play *models.GamePlay) error {
	query := `
		INSERT INTO game_plays (id, user_id, game_id, duration, completed, played_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		play.ID, play.UserID, play.GameID, play.Duration, play.Completed, play.PlayedAt)
	if err != nil {
		return fmt.Errorf("failed to insert game play: %w", err)
	}

	return nil
}

func (r *postgresRepository) InsertScore(ctx context.Context, score *models.GameScore) error {
	var metadata []byte
	if score.Metadata != nil {
		var err error
		metadata, err = json.Marshal(score.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal score metadata: %w", err)
		}
	}

	query := `
		INSERT INTO game_scores (id, user_id, game_id, score, metadata, achieved_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.ExecContext(ctx, query,
		score.ID, score.UserID, score.GameID, score.Score, metadata, score.AchievedAt)
	if err != nil {
		return fmt.Errorf("failed to insert game score: %w", err)
	}

	return nil
}

func (r *postgresRepository) PlaysByUser(ctx context.Context, userID string) ([]*models.GamePlay, error) {
	query := `
		SELECT gp.id, gp.user_id, gp.game_id, g.slug, g.name, gp.duration, gp.completed, gp.played_at
		FROM game_plays gp
		JOIN games g ON g.id = gp.game_id
		WHERE gp.user_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plays: %w", err)
	}
	defer rows.Close()

	var plays []*models.GamePlay
	for rows.Next() {
		var play models.GamePlay
		err := rows.Scan(&play.ID, &play.UserID, &play.GameID, &play.GameSlug,
			&play.GameName, &play.Duration, &play.Completed, &play.PlayedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan play: %w", err)
		}
		plays = append(plays, &play)
	}

	return plays, rows.Err()
}

func (r *postgresRepository) ScoresByUser(ctx context.Context, userID string) ([]*models.GameScore, error) {
	query := `
		SELECT gs.id, gs.user_id, gs.game_id, g.slug, g.name, gs.score, gs.metadata, gs.achieved_at
		FROM game_scores gs
		JOIN games g ON g.id = gs.game_id
		WHERE gs.user_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}
	defer rows.Close()

	var scores []*models.GameScore
	for rows.Next() {
		var score models.GameScore
		var metadata []byte
		err := rows.Scan(&score.ID, &score.UserID, &score.GameID, &score.GameSlug,
			&score.GameName, &score.Score, &metadata, &score.AchievedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &score.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal score metadata: %w", err)
			}
		}
		scores = append(scores, &score)
	}

	return scores, rows.Err()
}
