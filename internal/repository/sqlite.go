package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/devishh/chloe-api/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Seed the journey catalog and default prompts
	if err := store.seedCatalog(); err != nil {
		log.Printf("WARN: failed to seed catalog: %v", err)
		// Don't fail startup for this
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS conversations (
			conversation_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			journey_key TEXT,
			title TEXT,
			summary TEXT,
			active INTEGER NOT NULL DEFAULT 1,
			message_count INTEGER NOT NULL DEFAULT 0,
			last_message_at DATETIME,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversations_user ON conversations(user_id, journey_key, active)`,
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			conversation_id TEXT NOT NULL,
			user_id TEXT,
			role TEXT NOT NULL,
			content TEXT NOT NULL,
			ordinal INTEGER NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (conversation_id, ordinal),
			FOREIGN KEY (conversation_id) REFERENCES conversations(conversation_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, ordinal)`,
		`CREATE TABLE IF NOT EXISTS prompts (
			key TEXT PRIMARY KEY,
			content TEXT NOT NULL,
			active INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id TEXT PRIMARY KEY,
			preferred_name TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS journeys (
			key TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			theme TEXT NOT NULL DEFAULT '',
			metadata TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			active INTEGER NOT NULL DEFAULT 1
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}

	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateConversation creates a new conversation. Exactly one insert; a
// concurrent duplicate for the same journey key is an accepted edge case
// and is not resolved here.
func (s *SQLiteStore) CreateConversation(ctx context.Context, conv *domain.Conversation) error {
	var journeyKey, title, summary sql.NullString
	if conv.JourneyKey != "" {
		journeyKey = sql.NullString{String: conv.JourneyKey, Valid: true}
	}
	if conv.Title != "" {
		title = sql.NullString{String: conv.Title, Valid: true}
	}
	if conv.Summary != "" {
		summary = sql.NullString{String: conv.Summary, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversations (conversation_id, user_id, kind, journey_key, title, summary, active, message_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)`,
		conv.ConversationID, conv.UserID, conv.Kind, journeyKey, title, summary, conv.Active, conv.CreatedAt)
	return err
}

// GetConversation retrieves a conversation by ID.
func (s *SQLiteStore) GetConversation(ctx context.Context, conversationID string) (*domain.Conversation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT conversation_id, user_id, kind, journey_key, title, summary, active, message_count, last_message_at, created_at
		 FROM conversations WHERE conversation_id = ?`,
		conversationID)
	return scanConversation(row)
}

// GetActiveJourney retrieves the user's active journey conversation for a
// classification key, if any.
func (s *SQLiteStore) GetActiveJourney(ctx context.Context, userID, journeyKey string) (*domain.Conversation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT conversation_id, user_id, kind, journey_key, title, summary, active, message_count, last_message_at, created_at
		 FROM conversations WHERE user_id = ? AND journey_key = ? AND active = 1
		 ORDER BY created_at DESC LIMIT 1`,
		userID, journeyKey)
	return scanConversation(row)
}

func scanConversation(row *sql.Row) (*domain.Conversation, error) {
	var conv domain.Conversation
	var journeyKey, title, summary sql.NullString
	var lastMessageAt sql.NullTime
	err := row.Scan(&conv.ConversationID, &conv.UserID, &conv.Kind, &journeyKey, &title, &summary,
		&conv.Active, &conv.MessageCount, &lastMessageAt, &conv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if journeyKey.Valid {
		conv.JourneyKey = journeyKey.String
	}
	if title.Valid {
		conv.Title = title.String
	}
	if summary.Valid {
		conv.Summary = summary.String
	}
	if lastMessageAt.Valid {
		conv.LastMessageAt = &lastMessageAt.Time
	}
	return &conv, nil
}

// DeleteConversation removes a conversation and its messages.
func (s *SQLiteStore) DeleteConversation(ctx context.Context, conversationID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE conversation_id = ?`, conversationID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM conversations WHERE conversation_id = ?`, conversationID); err != nil {
		return err
	}
	return tx.Commit()
}

// CreateMessage inserts a message, assigning the next ordinal for its
// conversation, and maintains the conversation's rolling metadata. The
// assigned ordinal and timestamp are written back into the message.
func (s *SQLiteStore) CreateMessage(ctx context.Context, message *domain.Message) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var ordinal int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(ordinal), 0) + 1 FROM messages WHERE conversation_id = ?`,
		message.ConversationID).Scan(&ordinal); err != nil {
		return err
	}

	now := time.Now().UTC()
	var userID sql.NullString
	if message.UserID != "" {
		userID = sql.NullString{String: message.UserID, Valid: true}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO messages (message_id, conversation_id, user_id, role, content, ordinal, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		message.MessageID, message.ConversationID, userID, message.Role, message.Content, ordinal, now); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations SET message_count = message_count + 1, last_message_at = ? WHERE conversation_id = ?`,
		now, message.ConversationID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	message.Ordinal = ordinal
	message.CreatedAt = now
	return nil
}

// GetRecentMessages retrieves up to limit most recent messages of a
// conversation, returned oldest first.
func (s *SQLiteStore) GetRecentMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error) {
	query := `SELECT message_id, conversation_id, user_id, role, content, ordinal, created_at
		 FROM messages WHERE conversation_id = ? ORDER BY ordinal DESC`
	args := []interface{}{conversationID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []domain.Message
	for rows.Next() {
		var msg domain.Message
		var userID sql.NullString
		if err := rows.Scan(&msg.MessageID, &msg.ConversationID, &userID, &msg.Role, &msg.Content, &msg.Ordinal, &msg.CreatedAt); err != nil {
			return nil, err
		}
		if userID.Valid {
			msg.UserID = userID.String
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Fetched newest-first; flip to chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

// GetPrompt retrieves an active prompt by key.
func (s *SQLiteStore) GetPrompt(ctx context.Context, key string) (*domain.Prompt, error) {
	var prompt domain.Prompt
	err := s.db.QueryRowContext(ctx,
		`SELECT key, content, active FROM prompts WHERE key = ? AND active = 1`,
		key).Scan(&prompt.Key, &prompt.Content, &prompt.Active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

// GetPrompts retrieves the active prompts for the given keys. Missing
// keys are simply absent from the result map.
func (s *SQLiteStore) GetPrompts(ctx context.Context, keys []string) (map[string]string, error) {
	if len(keys) == 0 {
		return map[string]string{}, nil
	}

	placeholders := make([]string, len(keys))
	args := make([]interface{}, len(keys))
	for i, k := range keys {
		placeholders[i] = "?"
		args[i] = k
	}
	query := fmt.Sprintf(`SELECT key, content FROM prompts WHERE active = 1 AND key IN (%s)`,
		strings.Join(placeholders, ","))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]string, len(keys))
	for rows.Next() {
		var key, content string
		if err := rows.Scan(&key, &content); err != nil {
			return nil, err
		}
		result[key] = content
	}
	return result, rows.Err()
}

// UpsertPrompt inserts or replaces a prompt.
func (s *SQLiteStore) UpsertPrompt(ctx context.Context, prompt *domain.Prompt) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO prompts (key, content, active) VALUES (?, ?, ?)`,
		prompt.Key, prompt.Content, prompt.Active)
	return err
}

// GetProfile retrieves a user's profile.
func (s *SQLiteStore) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	var profile domain.Profile
	var preferredName sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, preferred_name FROM profiles WHERE user_id = ?`,
		userID).Scan(&profile.UserID, &preferredName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if preferredName.Valid {
		profile.PreferredName = preferredName.String
	}
	return &profile, nil
}

// UpsertProfile inserts or replaces a profile.
func (s *SQLiteStore) UpsertProfile(ctx context.Context, profile *domain.Profile) error {
	var preferredName sql.NullString
	if profile.PreferredName != "" {
		preferredName = sql.NullString{String: profile.PreferredName, Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO profiles (user_id, preferred_name) VALUES (?, ?)`,
		profile.UserID, preferredName)
	return err
}

// ListJourneys lists active catalog entries ordered by position.
func (s *SQLiteStore) ListJourneys(ctx context.Context) ([]domain.Journey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, title, description, theme, metadata, position, active
		 FROM journeys WHERE active = 1 ORDER BY position, key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var journeys []domain.Journey
	for rows.Next() {
		journey, err := scanJourney(rows)
		if err != nil {
			return nil, err
		}
		journeys = append(journeys, *journey)
	}
	return journeys, rows.Err()
}

// GetJourney retrieves an active catalog entry by key.
func (s *SQLiteStore) GetJourney(ctx context.Context, key string) (*domain.Journey, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, title, description, theme, metadata, position, active
		 FROM journeys WHERE key = ? AND active = 1`,
		key)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanJourney(rows)
}

func scanJourney(rows *sql.Rows) (*domain.Journey, error) {
	var journey domain.Journey
	var metadata sql.NullString
	if err := rows.Scan(&journey.Key, &journey.Title, &journey.Description, &journey.Theme,
		&metadata, &journey.Position, &journey.Active); err != nil {
		return nil, err
	}
	if metadata.Valid {
		journey.Metadata = []byte(metadata.String)
	}
	return &journey, nil
}

// UpsertJourney inserts or replaces a catalog entry.
func (s *SQLiteStore) UpsertJourney(ctx context.Context, journey *domain.Journey) error {
	var metadata sql.NullString
	if len(journey.Metadata) > 0 {
		metadata = sql.NullString{String: string(journey.Metadata), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO journeys (key, title, description, theme, metadata, position, active)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		journey.Key, journey.Title, journey.Description, journey.Theme, metadata, journey.Position, journey.Active)
	return err
}
