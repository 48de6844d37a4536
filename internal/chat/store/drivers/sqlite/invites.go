package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
)

type invitesRepo struct {
	q querier
}

const inviteColumns = `id, chat_room_id, created_by_id, expires_at, created_at`

func scanInvite(row scanner) (domain.RoomInvite, error) {
	var (
		inv                  domain.RoomInvite
		createdBy            sql.NullString
		expiresAt, createdAt int64
	)
	if err := row.Scan(&inv.ID, &inv.ChatRoomID, &createdBy, &expiresAt, &createdAt); err != nil {
		return domain.RoomInvite{}, mapNotFound(err)
	}
	inv.CreatedByID = mapNullString(createdBy)
	inv.ExpiresAt = fromMillis(expiresAt)
	inv.CreatedAt = fromMillis(createdAt)
	return inv, nil
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.RoomInvite) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO room_invites (`+inviteColumns+`) VALUES (?, ?, ?, ?, ?)`,
		inv.ID, inv.ChatRoomID, mapStringNull(inv.CreatedByID), toMillis(inv.ExpiresAt), toMillis(inv.CreatedAt),
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByID(ctx context.Context, id string) (domain.RoomInvite, error) {
	return scanInvite(r.q.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM room_invites WHERE id = ?`, id))
}

func (r *invitesRepo) FindReusableInvite(ctx context.Context, roomID string, notBefore time.Time) (domain.RoomInvite, error) {
	return scanInvite(r.q.QueryRowContext(ctx, `
		SELECT `+inviteColumns+`
		FROM room_invites
		WHERE chat_room_id = ? AND expires_at > ?
		ORDER BY expires_at DESC, id
		LIMIT 1`, roomID, toMillis(notBefore)))
}

func (r *invitesRepo) DeleteInvitesExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx, `DELETE FROM room_invites WHERE expires_at < ?`, toMillis(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
