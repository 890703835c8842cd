package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/mwhitlock/weatherchat/internal/database"
)

// dbQuerier is the subset of generated queries the service uses. Handlers
// and jobs depend on this interface so tests can swap in a mock.
type dbQuerier interface {
	CreateLocation(ctx context.Context, arg database.CreateLocationParams) (database.Location, error)
	GetLocationByName(ctx context.Context, placeName string) (database.Location, error)
	ListLocations(ctx context.Context) ([]database.Location, error)
	DeleteAllLocations(ctx context.Context) error
	CreateConversation(ctx context.Context, arg database.CreateConversationParams) (database.Conversation, error)
	ListConversationsByUser(ctx context.Context, userID sql.NullString) ([]database.Conversation, error)
	DeleteExpiredConversations(ctx context.Context, expiresAt time.Time) error
	DeleteAllConversations(ctx context.Context) error
}

// ConnectDB opens the Postgres connection and attaches the generated query
// layer to the config.
func (cfg *apiConfig) ConnectDB() error {
	db, err := cfg.newDBClientFunc("postgres", cfg.dbURL)
	if err != nil {
		return fmt.Errorf("couldn't open database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return fmt.Errorf("couldn't reach database: %w", err)
	}
	cfg.db = db
	cfg.dbQueries = database.New(db)
	cfg.logger.Info("connected to database")
	return nil
}
