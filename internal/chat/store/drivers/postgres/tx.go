package postgres

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
	"github.com/jackc/pgx/v5"
)

type txStore struct {
	tx pgx.Tx
}

// Commit and Rollback run detached from the request context so a cancelled
// request cannot leave the transaction half finished.
func (t *txStore) Commit() error { return t.tx.Commit(context.Background()) }

func (t *txStore) Rollback() error {
	err := t.tx.Rollback(context.Background())
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return err
}

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, pgx.ErrTxClosed
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return pgx.ErrTxClosed
}

func (t *txStore) Users() store.Users         { return &usersRepo{q: t.tx} }
func (t *txStore) Rooms() store.Rooms         { return &roomsRepo{q: t.tx} }
func (t *txStore) RoomRoles() store.RoomRoles { return &roomRolesRepo{q: t.tx} }
func (t *txStore) Invites() store.Invites     { return &invitesRepo{q: t.tx} }
func (t *txStore) Messages() store.Messages   { return &messagesRepo{q: t.tx} }

func (t *txStore) ApplyMigrations() error { return nil }
