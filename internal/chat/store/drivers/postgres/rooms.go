package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/jackc/pgx/v5"
)

type roomsRepo struct {
	q querier
}

const roomColumns = `r.id, r.name, r.created_by_id, r.created_at, r.updated_at`

func scanRoom(row pgx.Row) (domain.ChatRoom, error) {
	var (
		room      domain.ChatRoom
		createdBy *string
	)
	if err := row.Scan(&room.ID, &room.Name, &createdBy, &room.CreatedAt, &room.UpdatedAt); err != nil {
		return domain.ChatRoom{}, mapNotFound(err)
	}
	room.CreatedByID = deref(createdBy)
	room.CreatedAt = room.CreatedAt.UTC()
	room.UpdatedAt = room.UpdatedAt.UTC()
	return room, nil
}

func (r *roomsRepo) CreateRoom(ctx context.Context, room domain.ChatRoom) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO chat_rooms (id, name, created_by_id, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		room.ID, room.Name, nullable(room.CreatedByID), room.CreatedAt, room.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *roomsRepo) GetRoomByID(ctx context.Context, id string) (domain.ChatRoom, error) {
	return scanRoom(r.q.QueryRow(ctx, `SELECT `+roomColumns+` FROM chat_rooms r WHERE r.id = $1`, id))
}

func (r *roomsRepo) ListRoomsForUser(ctx context.Context, userID string) ([]domain.ChatRoom, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+roomColumns+`
		FROM chat_rooms r
		JOIN room_roles rr ON rr.chat_room_id = r.id
		WHERE rr.user_id = $1
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
	return requireOneRow(r.q.Exec(ctx,
		`UPDATE chat_rooms SET name = $1, updated_at = $2 WHERE id = $3`, name, at, id))
}

func (r *roomsRepo) DeleteRoom(ctx context.Context, id string) error {
	return requireOneRow(r.q.Exec(ctx, `DELETE FROM chat_rooms WHERE id = $1`, id))
}
