package postgres

import (
	"context"
	"time"

	"github.com/aussiebroadwan/bartabchat/internal/chat/domain"
	"github.com/jackc/pgx/v5"
)

type invitesRepo struct {
	q querier
}

const inviteColumns = `id, chat_room_id, created_by_id, expires_at, created_at`

func scanInvite(row pgx.Row) (domain.RoomInvite, error) {
	var (
		inv       domain.RoomInvite
		createdBy *string
	)
	if err := row.Scan(&inv.ID, &inv.ChatRoomID, &createdBy, &inv.ExpiresAt, &inv.CreatedAt); err != nil {
		return domain.RoomInvite{}, mapNotFound(err)
	}
	inv.CreatedByID = deref(createdBy)
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.CreatedAt = inv.CreatedAt.UTC()
	return inv, nil
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.RoomInvite) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO room_invites (`+inviteColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		inv.ID, inv.ChatRoomID, nullable(inv.CreatedByID), inv.ExpiresAt, inv.CreatedAt,
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByID(ctx context.Context, id string) (domain.RoomInvite, error) {
	return scanInvite(r.q.QueryRow(ctx, `SELECT `+inviteColumns+` FROM room_invites WHERE id = $1`, id))
}

func (r *invitesRepo) FindReusableInvite(ctx context.Context, roomID string, notBefore time.Time) (domain.RoomInvite, error) {
	return scanInvite(r.q.QueryRow(ctx, `
		SELECT `+inviteColumns+`
		FROM room_invites
		WHERE chat_room_id = $1 AND expires_at > $2
		ORDER BY expires_at DESC, id
		LIMIT 1`, roomID, notBefore))
}

func (r *invitesRepo) DeleteInvitesExpiredBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM room_invites WHERE expires_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
