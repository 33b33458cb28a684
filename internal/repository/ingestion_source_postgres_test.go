package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forge-os/pulse/internal/domain"
)

func sourceRow(id, accountName, spreadsheetID string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(ingestionSourceColumns).AddRow(
		id, accountName, spreadsheetID, nil, true, nil, nil, now, now,
	)
}

func TestIngestionSourceRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewIngestionSourceRepository(db)
	source := &domain.IngestionSource{
		AccountName:   "SoFi",
		SpreadsheetID: "sheet-1",
		Active:        true,
	}

	mock.ExpectExec(`INSERT INTO ingestion_sources`).
		WithArgs(sqlmock.AnyArg(), "SoFi", "sheet-1", nil, true, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), source))
	assert.NotEmpty(t, source.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngestionSourceRepository_GetBySpreadsheetID(t *testing.T) {
	t.Run("returns the source", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewIngestionSourceRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM ingestion_sources WHERE spreadsheet_id = \$1`).
			WithArgs("sheet-1").
			WillReturnRows(sourceRow("src-1", "SoFi", "sheet-1"))

		source, err := repo.GetBySpreadsheetID(context.Background(), "sheet-1")
		require.NoError(t, err)
		assert.Equal(t, "src-1", source.ID)
		assert.True(t, source.Active)
	})

	t.Run("returns not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewIngestionSourceRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM ingestion_sources WHERE spreadsheet_id = \$1`).
			WithArgs("missing").
			WillReturnRows(sqlmock.NewRows(ingestionSourceColumns))

		_, err = repo.GetBySpreadsheetID(context.Background(), "missing")
		require.Error(t, err)
		assert.IsType(t, &domain.ErrIngestionSourceNotFound{}, err)
	})
}

func TestIngestionSourceRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewIngestionSourceRepository(db)

	rows := sourceRow("src-1", "Chase", "sheet-chase")
	mock.ExpectQuery(`SELECT .+ FROM ingestion_sources ORDER BY account_name ASC`).
		WillReturnRows(rows)

	sources, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sources, 1)
	assert.Equal(t, "Chase", sources[0].AccountName)
}

func TestIngestionSourceRepository_Update(t *testing.T) {
	t.Run("updates an existing source", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewIngestionSourceRepository(db)
		source := &domain.IngestionSource{
			ID:            "src-1",
			AccountName:   "SoFi",
			SpreadsheetID: "sheet-1",
			Active:        false,
		}

		mock.ExpectExec(`UPDATE ingestion_sources SET`).
			WithArgs("SoFi", "sheet-1", nil, false, sqlmock.AnyArg(), "src-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), source))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no row matches", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewIngestionSourceRepository(db)

		mock.ExpectExec(`UPDATE ingestion_sources SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.Update(context.Background(), &domain.IngestionSource{ID: "missing"})
		require.Error(t, err)
		assert.IsType(t, &domain.ErrIngestionSourceNotFound{}, err)
	})
}

func TestIngestionSourceRepository_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewIngestionSourceRepository(db)

	mock.ExpectExec(`DELETE FROM ingestion_sources WHERE id = \$1`).
		WithArgs("src-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), "src-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngestionSourceRepository_RecordRun(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewIngestionSourceRepository(db)
	runAt := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	// Discovered spreadsheets get a placeholder row; configured ones only
	// have their run bookkeeping refreshed.
	mock.ExpectExec(`INSERT INTO ingestion_sources .+ ON CONFLICT \(spreadsheet_id\) DO UPDATE SET`).
		WithArgs(sqlmock.AnyArg(), "sheet-1", runAt, domain.RunStatusSuccess, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RecordRun(context.Background(), "sheet-1", runAt, domain.RunStatusSuccess))
	assert.NoError(t, mock.ExpectationsWereMet())
}
