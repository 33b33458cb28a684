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

func accountRow(id, name string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(accountColumns).AddRow(
		id, name, "P1_PILOT", "user-1", nil, nil, nil,
		2, nil, 100.0, 5000.0, 2000.0, 0.6,
		0.99, 140.0, 640.0, 0.42, 0,
		0, 30, "none", nil,
		now, now,
	)
}

func TestAccountRepository_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepository(db)
	account := &domain.Account{
		Name:            "SoFi",
		Phase:           domain.PhasePilot,
		STOID:           "user-1",
		EscalationState: domain.EscalationNone,
	}

	mock.ExpectQuery(`INSERT INTO accounts`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("acc-1"))

	require.NoError(t, repo.Upsert(context.Background(), account))
	assert.Equal(t, "acc-1", account.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_GetByName(t *testing.T) {
	t.Run("returns the account", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewAccountRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE name = \$1`).
			WithArgs("SoFi").
			WillReturnRows(accountRow("acc-1", "SoFi"))

		account, err := repo.GetByName(context.Background(), "SoFi")
		require.NoError(t, err)
		assert.Equal(t, "acc-1", account.ID)
		assert.Equal(t, domain.PhasePilot, account.Phase)
		assert.Equal(t, 30, account.EscalationScore)
	})

	t.Run("returns not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewAccountRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE name = \$1`).
			WithArgs("Missing").
			WillReturnRows(sqlmock.NewRows(accountColumns))

		_, err = repo.GetByName(context.Background(), "Missing")
		require.Error(t, err)
		assert.IsType(t, &domain.ErrAccountNotFound{}, err)
	})
}

func TestAccountRepository_List(t *testing.T) {
	t.Run("without filters", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewAccountRepository(db)

		rows := accountRow("acc-1", "Chase")
		mock.ExpectQuery(`SELECT .+ FROM accounts ORDER BY name ASC`).
			WillReturnRows(rows)

		accounts, err := repo.List(context.Background(), domain.AccountFilter{})
		require.NoError(t, err)
		require.Len(t, accounts, 1)
		assert.Equal(t, "Chase", accounts[0].Name)
	})

	t.Run("with escalation filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewAccountRepository(db)
		state := domain.EscalationEscalate

		mock.ExpectQuery(`SELECT .+ FROM accounts WHERE escalation_state = \$1 ORDER BY name ASC`).
			WithArgs(string(state)).
			WillReturnRows(sqlmock.NewRows(accountColumns))

		accounts, err := repo.List(context.Background(), domain.AccountFilter{EscalationState: &state})
		require.NoError(t, err)
		assert.Empty(t, accounts)
	})
}

func TestAccountRepository_UpdateDSLT(t *testing.T) {
	t.Run("updates the freshness metric", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewAccountRepository(db)

		mock.ExpectExec(`UPDATE accounts SET dslt_days = \$1`).
			WithArgs(3, sqlmock.AnyArg(), "acc-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.UpdateDSLT(context.Background(), "acc-1", 3))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when no row matches", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewAccountRepository(db)

		mock.ExpectExec(`UPDATE accounts SET dslt_days = \$1`).
			WithArgs(3, sqlmock.AnyArg(), "missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.UpdateDSLT(context.Background(), "missing", 3)
		require.Error(t, err)
		assert.IsType(t, &domain.ErrAccountNotFound{}, err)
	})
}
