package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
)

type messagesRepo struct {
	q querier
}

const messageColumns = `id, chat_room_id, created_by_id, type, content, created_at, updated_at`

func scanMessage(row scanner) (domain.Message, error) {
	var (
		m                    domain.Message
		createdBy            sql.NullString
		typ                  string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&m.ID, &m.ChatRoomID, &createdBy, &typ, &m.Content, &createdAt, &updatedAt); err != nil {
		return domain.Message{}, mapNotFound(err)
	}
	m.CreatedByID = mapNullString(createdBy)
	m.Type = domain.MessageType(typ)
	m.CreatedAt = fromMillis(createdAt)
	m.UpdatedAt = fromMillis(updatedAt)
	return m, nil
}

func (r *messagesRepo) CreateMessage(ctx context.Context, m domain.Message) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO messages (`+messageColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ChatRoomID, mapStringNull(m.CreatedByID), string(m.Type), m.Content,
		toMillis(m.CreatedAt), toMillis(m.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *messagesRepo) GetMessageByID(ctx context.Context, id string) (domain.Message, error) {
	return scanMessage(r.q.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE id = ?`, id))
}

func (r *messagesRepo) ListMessages(ctx context.Context, q domain.MessageQuery) ([]domain.Message, int, error) {
	where := `chat_room_id = ?`
	args := []any{q.ChatRoomID}
	if q.Search != "" {
		where += ` AND type = 'text' AND instr(lower(content), lower(?)) > 0`
		args = append(args, q.Search)
	}

	var total int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 || q.Offset >= total {
		return []domain.Message{}, total, nil
	}

	rows, err := r.q.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages WHERE `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT ? OFFSET ?`,
		append(args, q.Limit, q.Offset)...,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	msgs := make([]domain.Message, 0, q.Limit)
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, err
		}
		msgs = append(msgs, m)
	}
	return msgs, total, rows.Err()
}

func (r *messagesRepo) UpdateMessageContent(ctx context.Context, id, content string, at time.Time) error {
	return requireOneRow(r.q.ExecContext(ctx,
		`UPDATE messages SET content = ?, updated_at = ? WHERE id = ?`, content, toMillis(at), id))
}

func (r *messagesRepo) DeleteMessage(ctx context.Context, id string) error {
	return requireOneRow(r.q.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id))
}
