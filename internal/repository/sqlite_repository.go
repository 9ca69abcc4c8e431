package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chatshell/internal/model"
)

type sqliteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository returns a Repository backed by the schema in internal/database.
func NewSQLiteRepository(db *sql.DB) Repository {
	return &sqliteRepository{db: db}
}

const (
	insertHeadQuery = `
		INSERT INTO conversations (id, title, position, created_at, updated_at)
		VALUES (?, ?, (SELECT COALESCE(MIN(position), 0) - 1 FROM conversations), ?, ?)
	`
	insertTailQuery = `
		INSERT INTO conversations (id, title, position, created_at, updated_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(position), 0) + 1 FROM conversations), ?, ?)
	`
	insertMessageQuery = `
		INSERT INTO messages (id, conversation_id, seq, role, content, failed, created_at)
		VALUES (?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE conversation_id = ?), ?, ?, ?, ?)
	`
)

func (r *sqliteRepository) InsertConversation(ctx context.Context, conv *model.Conversation) error {
	return r.insertConversation(ctx, insertHeadQuery, conv)
}

func (r *sqliteRepository) AppendConversation(ctx context.Context, conv *model.Conversation) error {
	return r.insertConversation(ctx, insertTailQuery, conv)
}

func (r *sqliteRepository) insertConversation(ctx context.Context, query string, conv *model.Conversation) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, query, conv.ID, conv.Title, conv.CreatedAt, conv.UpdatedAt); err != nil {
		return fmt.Errorf("could not insert conversation: %w", err)
	}
	for i := range conv.Messages {
		msg := &conv.Messages[i]
		if _, err := tx.ExecContext(ctx, insertMessageQuery,
			msg.ID, conv.ID, conv.ID, string(msg.Role), msg.Content, msg.Failed, msg.CreatedAt,
		); err != nil {
			return fmt.Errorf("could not insert message %s: %w", msg.ID, err)
		}
	}
	return tx.Commit()
}

func (r *sqliteRepository) GetConversation(ctx context.Context, conversationID string) (*model.Conversation, error) {
	query := "SELECT id, title, created_at, updated_at FROM conversations WHERE id = ?"
	var conv model.Conversation
	err := r.db.QueryRowContext(ctx, query, conversationID).
		Scan(&conv.ID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	messages, err := r.messages(ctx,
		"SELECT id, conversation_id, role, content, failed, created_at FROM messages WHERE conversation_id = ? ORDER BY seq ASC",
		conversationID,
	)
	if err != nil {
		return nil, err
	}
	conv.Messages = messages[conv.ID]
	if conv.Messages == nil {
		conv.Messages = []model.Message{}
	}
	return &conv, nil
}

func (r *sqliteRepository) ListConversations(ctx context.Context) ([]*model.Conversation, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, title, created_at, updated_at FROM conversations ORDER BY position ASC",
	)
	if err != nil {
		return nil, err
	}
	var convs []*model.Conversation
	for rows.Next() {
		var conv model.Conversation
		if err := rows.Scan(&conv.ID, &conv.Title, &conv.CreatedAt, &conv.UpdatedAt); err != nil {
			_ = rows.Close()
			return nil, err
		}
		convs = append(convs, &conv)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// The pool may hold a single connection, so the cursor is released before the next query.
	if err := rows.Close(); err != nil {
		return nil, err
	}

	messages, err := r.messages(ctx,
		"SELECT id, conversation_id, role, content, failed, created_at FROM messages ORDER BY conversation_id, seq ASC",
	)
	if err != nil {
		return nil, err
	}
	for _, conv := range convs {
		conv.Messages = messages[conv.ID]
		if conv.Messages == nil {
			conv.Messages = []model.Message{}
		}
	}
	return convs, nil
}

func (r *sqliteRepository) AppendMessage(ctx context.Context, conversationID string, msg *model.Message) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, "UPDATE conversations SET updated_at = ? WHERE id = ?", msg.CreatedAt, conversationID)
	if err != nil {
		return fmt.Errorf("could not update conversation timestamp: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, insertMessageQuery,
		msg.ID, conversationID, conversationID, string(msg.Role), msg.Content, msg.Failed, msg.CreatedAt,
	); err != nil {
		return fmt.Errorf("could not insert message: %w", err)
	}
	return tx.Commit()
}

// messages runs query and groups the resulting rows by conversation id, preserving row order.
func (r *sqliteRepository) messages(ctx context.Context, query string, args ...any) (map[string][]model.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]model.Message)
	for rows.Next() {
		var (
			msg            model.Message
			conversationID string
			role           string
		)
		if err := rows.Scan(&msg.ID, &conversationID, &role, &msg.Content, &msg.Failed, &msg.CreatedAt); err != nil {
			return nil, err
		}
		msg.Role = model.Role(role)
		out[conversationID] = append(out[conversationID], msg)
	}
	return out, rows.Err()
}
