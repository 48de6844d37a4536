package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/bartabchat/internal/chat/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users         { return &usersRepo{q: t.tx} }
func (t *txStore) Rooms() store.Rooms         { return &roomsRepo{q: t.tx} }
func (t *txStore) RoomRoles() store.RoomRoles { return &roomRolesRepo{q: t.tx} }
func (t *txStore) Invites() store.Invites     { return &invitesRepo{q: t.tx} }
func (t *txStore) Messages() store.Messages   { return &messagesRepo{q: t.tx} }

// ApplyMigrations is a no-op; migrations run before any transaction starts.
func (t *txStore) ApplyMigrations() error { return nil }
