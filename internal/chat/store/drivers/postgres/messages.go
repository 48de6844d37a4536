package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/jackc/pgx/v5"
)

type messagesRepo struct {
	q querier
}

const messageColumns = `id, chat_room_id, created_by_id, type, content, created_at, updated_at`

func scanMessage(row pgx.Row) (domain.Message, error) {
	var (
		m         domain.Message
		createdBy *string
		typ       string
	)
	if err := row.Scan(&m.ID, &m.ChatRoomID, &createdBy, &typ, &m.Content, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return domain.Message{}, mapNotFound(err)
	}
	m.CreatedByID = deref(createdBy)
	m.Type = domain.MessageType(typ)
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m, nil
}

func (r *messagesRepo) CreateMessage(ctx context.Context, m domain.Message) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO messages (`+messageColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ChatRoomID, nullable(m.CreatedByID), string(m.Type), m.Content, m.CreatedAt, m.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *messagesRepo) GetMessageByID(ctx context.Context, id string) (domain.Message, error) {
	return scanMessage(r.q.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
}

func (r *messagesRepo) ListMessages(ctx context.Context, q domain.MessageQuery) ([]domain.Message, int, error) {
	where := `chat_room_id = $1`
	args := []any{q.ChatRoomID}
	if q.Search != "" {
		where += ` AND type = 'text' AND strpos(lower(content), lower($2)) > 0`
		args = append(args, q.Search)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM messages WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 || q.Offset >= total {
		return []domain.Message{}, total, nil
	}

	page := fmt.Sprintf(` ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	rows, err := r.q.Query(ctx, `SELECT `+messageColumns+` FROM messages WHERE `+where+page,
		append(args, q.Limit, q.Offset)...)
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
	return requireOneRow(r.q.Exec(ctx,
		`UPDATE messages SET content = $1, updated_at = $2 WHERE id = $3`, content, at, id))
}

func (r *messagesRepo) DeleteMessage(ctx context.Context, id string) error {
	return requireOneRow(r.q.Exec(ctx, `DELETE FROM messages WHERE id = $1`, id))
}
