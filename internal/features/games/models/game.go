package models

import "time"

// Game is a catalog entry. The play/score flows look games up by slug and
// never create them; seeding happens through the admin endpoint.
type Game struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	PlayLink    string    `json:"playLink"`
	CreatedAt   time.Time `json:"createdAt"`
}

// GamePlay is an append-only record of one play session.
type GamePlay struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	GameID    string    `json:"gameId"`
	GameSlug  string    `json:"gameSlug,omitempty"`
	GameName  string    `json:"gameName,omitempty"`
	Duration  int       `json:"duration"`
	Completed bool      `json:"completed"`
	PlayedAt  time.Time `json:"playedAt"`
}

// GameScore is an append-only record of one submitted score.
type GameScore struct {
	ID         string                 `json:"id"`
	UserID     string                 `json:"userId"`
	GameID     string                 `json:"gameId"`
	GameSlug   string                 `json:"gameSlug,omitempty"`
	GameName   string                 `json:"gameName,omitempty"`
	Score      int64                  `json:"score"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	AchievedAt time.Time              `json:"achievedAt"`
}

// ScoreEntry is one element of a stats recent-scores list.
type ScoreEntry struct {
	Score      int64     `json:"score"`
	AchievedAt time.Time `json:"achievedAt"`
}

// GameStats is the per-game aggregation of a user's plays and scores. A game
// present in only one of the two inputs keeps zero values for the other side.
type GameStats struct {
	GameID       string       `json:"gameId"`
	GameSlug     string       `json:"gameSlug"`
	GameName     string       `json:"gameName"`
	PlayCount    int          `json:"playCount"`
	LastPlayedAt *time.Time   `json:"lastPlayedAt"`
	HighScore    int64        `json:"highScore"`
	RecentScores []ScoreEntry `json:"recentScores"`
}

type RecordPlayRequest struct {
	GameSlug  string `json:"gameSlug" binding:"required"`
	Duration  int    `json:"duration" binding:"min=0"`
	Completed bool   `json:"completed"`
}

type RecordScoreRequest struct {
	GameSlug string                 `json:"gameSlug" binding:"required"`
	Score    int64                  `json:"score" binding:"min=0"`
	Metadata map[string]interface{} `json:"metadata"`
}

type CreateGameRequest struct {
	Name        string `json:"name" binding:"required"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	PlayLink    string `json:"playLink"`
}

type GameResponse struct {
	Game *Game `json:"game"`
}

type GameListResponse struct {
	Games []*Game `json:"games"`
}

type GamePlayResponse struct {
	GamePlay *GamePlay `json:"gamePlay"`
}

type GameScoreResponse struct {
	GameScore *GameScore `json:"gameScore"`
}

type GameStatsResponse struct {
	GameStats []*GameStats `json:"gameStats"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
