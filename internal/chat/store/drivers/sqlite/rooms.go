package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
)

type roomsRepo struct {
	q querier
}

const roomColumns = `r.id, r.name, r.created_by_id, r.created_at, r.updated_at`

func scanRoom(row scanner) (domain.ChatRoom, error) {
	var (
		room                 domain.ChatRoom
		createdBy            sql.NullString
		createdAt, updatedAt int64
	)
	if err := row.Scan(&room.ID, &room.Name, &createdBy, &createdAt, &updatedAt); err != nil {
		return domain.ChatRoom{}, mapNotFound(err)
	}
	room.CreatedByID = mapNullString(createdBy)
	room.CreatedAt = fromMillis(createdAt)
	room.UpdatedAt = fromMillis(updatedAt)
	return room, nil
}

func (r *roomsRepo) CreateRoom(ctx context.Context, room domain.ChatRoom) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO chat_rooms (id, name, created_by_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		room.ID, room.Name, mapStringNull(room.CreatedByID), toMillis(room.CreatedAt), toMillis(room.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *roomsRepo) GetRoomByID(ctx context.Context, id string) (domain.ChatRoom, error) {
	return scanRoom(r.q.QueryRowContext(ctx,
		`SELECT `+roomColumns+` FROM chat_rooms r WHERE r.id = ?`, id))
}

func (r *roomsRepo) ListRoomsForUser(ctx context.Context, userID string) ([]domain.ChatRoom, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT `+roomColumns+`
		FROM chat_rooms r
		JOIN room_roles rr ON rr.chat_room_id = r.id
		WHERE rr.user_id = ?
		ORDER BY r.created_at, r.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.ChatRoom
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (r *roomsRepo) RenameRoom(ctx context.Context, id, name string, at time.Time) error {
	return requireOneRow(r.q.ExecContext(ctx,
		`UPDATE chat_rooms SET name = ?, updated_at = ? WHERE id = ?`, name, toMillis(at), id))
}

func (r *roomsRepo) DeleteRoom(ctx context.Context, id string) error {
	return requireOneRow(r.q.ExecContext(ctx, `DELETE FROM chat_rooms WHERE id = ?`, id))
}
