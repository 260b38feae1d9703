package session

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/doubtsolver/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/doubtsolver/internal/common"
	"github.com/dmitrijs2005/doubtsolver/internal/dbx"
)

// Storage persists the serialized user and the token under their durable
// keys. Save and Clear touch both keys atomically.
type Storage interface {
	Load(ctx context.Context) (user, token []byte, err error)
	Save(ctx context.Context, user, token []byte) error
	Clear(ctx context.Context) error
}

// SQLiteStorage keeps the session in the local metadata table.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(db *sql.DB) *SQLiteStorage {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) Load(ctx context.Context) ([]byte, []byte, error) {
	repo := metadata.NewSQLiteRepository(s.db)

	user, err := repo.Get(ctx, common.UserStorageKey)
	if err != nil {
		return nil, nil, err
	}
	token, err := repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		return nil, nil, err
	}
	return user, token, nil
}

func (s *SQLiteStorage) Save(ctx context.Context, user, token []byte) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.UserStorageKey, user); err != nil {
			return err
		}
		return repo.Set(ctx, common.TokenStorageKey, token)
	})
}

func (s *SQLiteStorage) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, common.UserStorageKey, common.TokenStorageKey)
	})
}
