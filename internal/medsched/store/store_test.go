package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	st, err := Open(context.Background(), Config{Driver: "sqlite3", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.EnsureSchema(context.Background()))
	return st
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	st := openMemory(t)
	ctx := context.Background()

	require.NoError(t, st.EnsureSchema(ctx))
	for _, table := range Tables {
		n, err := st.Count(ctx, table)
		require.NoError(t, err, table)
		assert.Zero(t, n, table)
	}
}

func TestDropSchema(t *testing.T) {
	st := openMemory(t)
	ctx := context.Background()

	require.NoError(t, st.DropSchema(ctx))
	_, err := st.Count(ctx, "patient")
	assert.Error(t, err)
}

func TestInsertIgnore_DropsDuplicates(t *testing.T) {
	st := openMemory(t)
	ctx := context.Background()
	q := st.Dialect().InsertIgnore("place", "name")

	for _, name := range []string{"Room 1", "Room 2", "Room 1"} {
		_, err := st.DB().ExecContext(ctx, q, name)
		require.NoError(t, err)
	}

	n, err := st.Count(ctx, "place")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	st := openMemory(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, st.Dialect().Insert("specialization", "name"), "Хирург"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	n, err := st.Count(ctx, "specialization")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestWithTx_CommitAndSelectIDs(t *testing.T) {
	st := openMemory(t)
	ctx := context.Background()

	err := st.WithTx(ctx, func(tx *sql.Tx) error {
		for _, name := range []string{"Терапевт", "Хирург", "Педиатр"} {
			if _, err := tx.ExecContext(ctx, st.Dialect().Insert("specialization", "name"), name); err != nil {
				return err
			}
		}
		// reads inside the transaction go through tx
		ids, err := st.SelectIDs(ctx, tx, "SELECT id FROM specialization ORDER BY id")
		if err != nil {
			return err
		}
		assert.Len(t, ids, 3)
		return nil
	})
	require.NoError(t, err)

	ids, err := st.SelectIDs(ctx, st.DB(), "SELECT id FROM specialization WHERE name <> ? ORDER BY id", "Хирург")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, ids)
}

func TestOpen_SQLiteEnforcesForeignKeys(t *testing.T) {
	st := openMemory(t)
	ctx := context.Background()

	_, err := st.DB().ExecContext(ctx,
		"INSERT INTO doctor (spec_id, full_name, sex, work_experience) VALUES (999, 'Nobody', 'M', 1)")
	assert.Error(t, err, "dangling spec_id must be rejected")

	_, err = st.DB().ExecContext(ctx,
		"INSERT INTO visit (registration_id, patient_id, symptoms, diagnosis) VALUES (42, 1, 'x', 'y')")
	assert.Error(t, err, "dangling registration_id must be rejected")

	n, err := st.Count(ctx, "doctor")
	require.NoError(t, err)
	assert.Zero(t, n)
}
