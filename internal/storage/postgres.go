package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/lumiere-weddings/concierge/internal/models"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	UseInMemory bool
}

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(config DatabaseConfig) (*PostgresStorage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db}

	if err := storage.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresStorage) ResolveThread(ctx context.Context, candidateID, ownerID, firstMessage string, chatType models.ChatType) (*models.Thread, error) {
	// A candidate that is not even a UUID counts as absent, not as an
	// error against the uuid column.
	if _, err := uuid.Parse(candidateID); err != nil {
		candidateID = ""
	}

	if candidateID != "" {
		thread := &models.Thread{}
		err := s.db.QueryRowContext(ctx,
			`SELECT id, user_id, title, chat_type, created_at FROM threads WHERE id = $1`,
			candidateID,
		).Scan(&thread.ID, &thread.UserID, &thread.Title, &thread.ChatType, &thread.CreatedAt)
		switch {
		case err == nil:
			if thread.UserID != ownerID {
				return nil, ErrNotThreadOwner
			}
			return thread, nil
		case errors.Is(err, sql.ErrNoRows):
			// Unknown id, fall through to create a fresh thread.
		default:
			return nil, fmt.Errorf("error resolving thread: %w", err)
		}
	}

	thread := &models.Thread{
		ID:       uuid.New().String(),
		UserID:   ownerID,
		Title:    titleFromMessage(firstMessage),
		ChatType: chatType,
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO threads (id, user_id, title, chat_type) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		thread.ID, thread.UserID, thread.Title, thread.ChatType,
	).Scan(&thread.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating thread: %w", err)
	}

	return thread, nil
}

func (s *PostgresStorage) AppendMessage(ctx context.Context, threadID, ownerID string, role models.Role, content string, meta models.MessageMeta) (*models.Message, error) {
	if err := s.checkOwnership(ctx, threadID, ownerID); err != nil {
		return nil, err
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("error encoding message meta: %w", err)
	}

	msg := &models.Message{
		ID:       uuid.New().String(),
		ThreadID: threadID,
		UserID:   ownerID,
		Role:     role,
		Content:  content,
		Meta:     meta,
	}
	err = s.db.QueryRowContext(ctx,
		`INSERT INTO messages (id, thread_id, user_id, role, content, meta)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		msg.ID, msg.ThreadID, msg.UserID, msg.Role, msg.Content, metaJSON,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error appending message: %w", err)
	}

	return msg, nil
}

func (s *PostgresStorage) ThreadMessages(ctx context.Context, threadID, ownerID string, limit int) ([]*models.Message, error) {
	if err := s.checkOwnership(ctx, threadID, ownerID); err != nil {
		return nil, err
	}

	// seq, not created_at, is the insertion order: two writes can land in
	// the same microsecond and the user message must stay ahead of its
	// assistant reply.
	query := `
		SELECT id, thread_id, user_id, role, content, meta, created_at
		FROM messages
		WHERE thread_id = $1
		ORDER BY seq DESC`
	args := []any{threadID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	var messages []*models.Message
	for rows.Next() {
		msg := &models.Message{}
		var metaJSON []byte
		err := rows.Scan(
			&msg.ID,
			&msg.ThreadID,
			&msg.UserID,
			&msg.Role,
			&msg.Content,
			&metaJSON,
			&msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		if len(metaJSON) > 0 {
			if err := json.Unmarshal(metaJSON, &msg.Meta); err != nil {
				return nil, fmt.Errorf("error decoding message meta: %w", err)
			}
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	// The query reads newest-first to honor the limit; callers get
	// insertion order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (s *PostgresStorage) SaveLead(ctx context.Context, lead *models.VendorLead) error {
	if lead.ID == "" {
		lead.ID = uuid.New().String()
	}
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO vendor_leads
		 (id, business_name, category, location, contact_name, contact_email,
		  website, luxury_positioning, intent_timing, stage, score, priority)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at`,
		lead.ID, lead.BusinessName, lead.Category, lead.Location, lead.ContactName,
		lead.ContactEmail, lead.Website, lead.LuxuryPositioning, lead.IntentTiming,
		lead.Stage, lead.Score, lead.Priority,
	).Scan(&lead.CreatedAt)
	if err != nil {
		return fmt.Errorf("error saving lead: %w", err)
	}
	return nil
}

func (s *PostgresStorage) checkOwnership(ctx context.Context, threadID, ownerID string) error {
	var owner string
	err := s.db.QueryRowContext(ctx, `SELECT user_id FROM threads WHERE id = $1`, threadID).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return ErrThreadNotFound
	case err != nil:
		return fmt.Errorf("error checking thread ownership: %w", err)
	case owner != ownerID:
		return ErrNotThreadOwner
	}
	return nil
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}
