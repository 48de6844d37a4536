package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/jackc/pgx/v5"
)

type roomRolesRepo struct {
	q querier
}

const roleColumns = `id, chat_room_id, user_id, role, invite_id, created_at, updated_at`

func scanRole(row pgx.Row) (domain.RoomRole, error) {
	var (
		rr       domain.RoomRole
		role     string
		inviteID *string
	)
	if err := row.Scan(&rr.ID, &rr.ChatRoomID, &rr.UserID, &role, &inviteID, &rr.CreatedAt, &rr.UpdatedAt); err != nil {
		return domain.RoomRole{}, mapNotFound(err)
	}
	rr.Role = domain.Role(role)
	rr.InviteID = deref(inviteID)
	rr.CreatedAt = rr.CreatedAt.UTC()
	rr.UpdatedAt = rr.UpdatedAt.UTC()
	return rr, nil
}

func (r *roomRolesRepo) CreateRole(ctx context.Context, rr domain.RoomRole) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO room_roles (`+roleColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		rr.ID, rr.ChatRoomID, rr.UserID, string(rr.Role), nullable(rr.InviteID), rr.CreatedAt, rr.UpdatedAt,
	)
	return mapConstraint(err)
}

func (r *roomRolesRepo) GetRoleByID(ctx context.Context, id string) (domain.RoomRole, error) {
	return scanRole(r.q.QueryRow(ctx, `SELECT `+roleColumns+` FROM room_roles WHERE id = $1`, id))
}

func (r *roomRolesRepo) GetRoleForUser(ctx context.Context, roomID, userID string) (domain.RoomRole, error) {
	return scanRole(r.q.QueryRow(ctx,
		`SELECT `+roleColumns+` FROM room_roles WHERE chat_room_id = $1 AND user_id = $2`, roomID, userID))
}

func (r *roomRolesRepo) ListRolesByRoom(ctx context.Context, roomID string) ([]domain.RoomRole, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+roleColumns+` FROM room_roles WHERE chat_room_id = $1 ORDER BY created_at, id`, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var roles []domain.RoomRole
	for rows.Next() {
		rr, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, rr)
	}
	return roles, rows.Err()
}

func (r *roomRolesRepo) UpdateRoleTier(ctx context.Context, id string, role domain.Role, at time.Time) error {
	return requireOneRow(r.q.Exec(ctx,
		`UPDATE room_roles SET role = $1, updated_at = $2 WHERE id = $3`, string(role), at, id))
}

func (r *roomRolesRepo) DeleteRole(ctx context.Context, id string) error {
	return requireOneRow(r.q.Exec(ctx, `DELETE FROM room_roles WHERE id = $1`, id))
}
