package pg

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/abezemskiy/qrgen/internal/repositories/journal"
	"github.com/abezemskiy/qrgen/internal/repositories/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog(t *testing.T) {
	entry := journal.Entry{
		ID:   "4b6f7e9c-0d1a-4c8e-9a53-3f3e1f2b7d10",
		Type: payload.TagGEO,
		Meta: payload.Meta{
			{Key: "type", Value: "geo"},
			{Key: "lat", Value: 48.137},
			{Key: "lng", Value: 11.58},
		},
	}
	wantMeta := `{"type":"geo","lat":48.137,"lng":11.58}`

	{
		// Test. successful insert
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPrepare(`INSERT INTO qr_requests \(request_id, type, meta, created_at\)`).
			ExpectExec().
			WithArgs(entry.ID, entry.Type, wantMeta).
			WillReturnResult(sqlmock.NewResult(1, 1))

		stor := New(db)
		err = stor.Log(context.Background(), entry)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	}
	{
		// Test. exec error
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPrepare(`INSERT INTO qr_requests`).
			ExpectExec().
			WithArgs(entry.ID, entry.Type, wantMeta).
			WillReturnError(errors.New("connection reset"))

		stor := New(db)
		err = stor.Log(context.Background(), entry)
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	}
	{
		// Test. prepare error
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectPrepare(`INSERT INTO qr_requests`).WillReturnError(errors.New("syntax error"))

		stor := New(db)
		err = stor.Log(context.Background(), entry)
		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	}
}

func TestDisable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`TRUNCATE TABLE qr_requests`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`TRUNCATE TABLE qr_requests`).WillReturnError(errors.New("permission denied"))

	stor := New(db)
	require.NoError(t, stor.Disable(context.Background()))
	require.Error(t, stor.Disable(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClose(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectClose()
	stor := New(db)
	require.NoError(t, stor.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
