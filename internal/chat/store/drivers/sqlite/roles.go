package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
)

type roomRolesRepo struct {
	q querier
}

const roleColumns = `id, chat_room_id, user_id, role, invite_id, created_at, updated_at`

func scanRole(row scanner) (domain.RoomRole, error) {
	var (
		rr                   domain.RoomRole
		role                 string
		inviteID             sql.NullString
		createdAt, updatedAt int64
	)
	if err := row.Scan(&rr.ID, &rr.ChatRoomID, &rr.UserID, &role, &inviteID, &createdAt, &updatedAt); err != nil {
		return domain.RoomRole{}, mapNotFound(err)
	}
	rr.Role = domain.Role(role)
	rr.InviteID = mapNullString(inviteID)
	rr.CreatedAt = fromMillis(createdAt)
	rr.UpdatedAt = fromMillis(updatedAt)
	return rr, nil
}

func (r *roomRolesRepo) CreateRole(ctx context.Context, rr domain.RoomRole) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO room_roles (`+roleColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rr.ID, rr.ChatRoomID, rr.UserID, string(rr.Role), mapStringNull(rr.InviteID),
		toMillis(rr.CreatedAt), toMillis(rr.UpdatedAt),
	)
	return mapConstraint(err)
}

func (r *roomRolesRepo) GetRoleByID(ctx context.Context, id string) (domain.RoomRole, error) {
	return scanRole(r.q.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM room_roles WHERE id = ?`, id))
}

func (r *roomRolesRepo) GetRoleForUser(ctx context.Context, roomID, userID string) (domain.RoomRole, error) {
	return scanRole(r.q.QueryRowContext(ctx,
		`SELECT `+roleColumns+` FROM room_roles WHERE chat_room_id = ? AND user_id = ?`, roomID, userID))
}

func (r *roomRolesRepo) ListRolesByRoom(ctx context.Context, roomID string) ([]domain.RoomRole, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+roleColumns+` FROM room_roles WHERE chat_room_id = ? ORDER BY created_at, id`, roomID)
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
	return requireOneRow(r.q.ExecContext(ctx,
		`UPDATE room_roles SET role = ?, updated_at = ? WHERE id = ?`, string(role), toMillis(at), id))
}

func (r *roomRolesRepo) DeleteRole(ctx context.Context, id string) error {
	return requireOneRow(r.q.ExecContext(ctx, `DELETE FROM room_roles WHERE id = ?`, id))
}
