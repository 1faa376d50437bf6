package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaibhaw-/medsched/internal/medsched/store"
)

var seedSQL = []string{
	`INSERT INTO specialization (id, name) VALUES (1, 'Хирург'), (2, 'Гинеколог')`,
	`INSERT INTO place (id, name) VALUES (1, 'Кабинет №1'), (2, 'Кабинет №2')`,
	`INSERT INTO patient (id, full_name, address, sex, birthday) VALUES
		(1, 'Alice', 'Main st 1', 'F', '1940-05-01'),
		(2, 'Bob', 'Main st 2', 'M', '1944-01-01'),
		(3, 'Carol', 'Main st 3', 'F', '1990-02-02')`,
	`INSERT INTO doctor (id, spec_id, full_name, sex, address, phone, work_experience) VALUES
		(1, 1, 'Adams', 'M', 'Elm 1', '111', 2),
		(2, 1, 'Zed', 'M', 'Elm 2', '222', 8),
		(3, 1, 'Mia', 'F', 'Elm 3', '333', 5),
		(4, 2, 'Gina', 'F', 'Elm 4', '444', 1),
		(5, 2, 'Gail', 'F', 'Elm 5', '555', 3)`,
	`INSERT INTO schedule (id, s_date, starting, ending) VALUES
		(1, '2022-11-03', 8, 9),
		(2, '2022-11-03', 9, 10),
		(3, '2022-11-04', 8, 9)`,
	`INSERT INTO doctor_schedule (id, doctor_id, schedule_id, place_id) VALUES
		(1, 1, 1, 1),
		(2, 1, 2, 1),
		(3, 2, 1, 2),
		(4, 4, 2, 2),
		(5, NULL, 3, 2)`,
	`INSERT INTO visit (id, registration_id, patient_id, symptoms, diagnosis) VALUES
		(1, 1, 1, 'кашель', 'Грипп'),
		(2, 3, 1, 'боль в горле', 'Ангина'),
		(3, 4, 2, 'насморк', 'ОРВИ')`,
}

func newSeededStore(t *testing.T) *store.Store {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{Driver: "sqlite3", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.EnsureSchema(ctx))
	for _, stmt := range seedSQL {
		_, err := st.DB().ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}
	return st
}

func runReport(t *testing.T, st *store.Store, name string, p Params) *Result {
	t.Helper()
	r, err := Lookup(name)
	require.NoError(t, err)
	res, err := Execute(context.Background(), st.DB(), st.Dialect(), r, p)
	require.NoError(t, err)
	return res
}

func column(res *Result, i int) []any {
	out := make([]any, len(res.Rows))
	for n, row := range res.Rows {
		out[n] = row[i]
	}
	return out
}

func TestCatalog_Order(t *testing.T) {
	var names []string
	for _, r := range Catalog() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"doctors",
		"patient-visits",
		"workload",
		"doctors-per-specialization",
		"visit-frequency",
		"visit-frequency-repeat",
		"experienced-doctors",
	}, names)
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, len(Catalog()))

	some, err := Select([]string{"workload", "doctors"})
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, "workload", some[0].Name)
	assert.Equal(t, "doctors", some[1].Name)

	_, err = Select([]string{"doctors", "nope"})
	assert.ErrorIs(t, err, ErrUnknownReport)
}

func TestDoctors(t *testing.T) {
	st := newSeededStore(t)

	res := runReport(t, st, "doctors", Params{Specialization: "Хирург", Sex: "M"})
	assert.Equal(t, []string{"full_name", "address", "phone", "specialization"}, res.Columns)
	assert.Equal(t, []any{"Zed", "Adams"}, column(res, 0), "name descending")
	assert.Equal(t, []any{"Хирург", "Хирург"}, column(res, 3))

	res = runReport(t, st, "doctors", Params{Specialization: "Гинеколог", Sex: "M"})
	assert.Empty(t, res.Rows)
}

func TestDoctors_ParametersAreBound(t *testing.T) {
	st := newSeededStore(t)

	res := runReport(t, st, "doctors", Params{Specialization: "Хирург' OR '1'='1", Sex: "M"})
	assert.Empty(t, res.Rows)
}

func TestPatientVisits(t *testing.T) {
	st := newSeededStore(t)

	res := runReport(t, st, "patient-visits", Params{})
	assert.Equal(t, []string{"patient", "doctor", "visit_time", "diagnosis"}, res.Columns)
	require.Len(t, res.Rows, 3)
	assert.Equal(t, []any{"Alice", "Adams", "2022-11-03, 8:00-9:00", "Грипп"}, res.Rows[0])
	assert.Equal(t, []any{"Alice", "Zed", "2022-11-03, 8:00-9:00", "Ангина"}, res.Rows[1])
	assert.Equal(t, []any{"Bob", "Gina", "2022-11-03, 9:00-10:00", "ОРВИ"}, res.Rows[2])
	assert.NotContains(t, column(res, 0), "Carol")
}

func TestWorkload(t *testing.T) {
	st := newSeededStore(t)

	res := runReport(t, st, "workload", Params{Date: "2022-11-03"})
	assert.Equal(t, []string{"doctor", "work_date", "hours"}, res.Columns)
	assert.Equal(t, []any{"Adams", "Gina", "Zed"}, column(res, 0))
	assert.Equal(t, []any{int64(2), int64(1), int64(1)}, column(res, 2))

	res = runReport(t, st, "workload", Params{Date: "2022-11-04"})
	assert.Empty(t, res.Rows, "unassigned slots count for nobody")
}

func TestDoctorsPerSpecialization(t *testing.T) {
	st := newSeededStore(t)

	res := runReport(t, st, "doctors-per-specialization", Params{})
	assert.Equal(t, [][]any{
		{"Гинеколог", int64(2)},
		{"Хирург", int64(3)},
	}, res.Rows)
}

func TestVisitFrequency(t *testing.T) {
	st := newSeededStore(t)

	want := [][]any{
		{"Гинеколог", int64(1)},
		{"Хирург", int64(2)},
	}
	assert.Equal(t, want, runReport(t, st, "visit-frequency", Params{}).Rows)
	assert.Equal(t, want, runReport(t, st, "visit-frequency-repeat", Params{}).Rows)
}

func TestExperiencedDoctors(t *testing.T) {
	st := newSeededStore(t)

	res := runReport(t, st, "experienced-doctors", Params{})
	assert.Equal(t, []any{"Zed", "Mia"}, column(res, 0))
	assert.Equal(t, []any{int64(8), int64(5)}, column(res, 1))
}

func TestExecute_Postgres(t *testing.T) {
	r, err := Lookup("doctors")
	require.NoError(t, err)
	q := store.Postgres.Rebind(r.SQL(store.Postgres))
	assert.Contains(t, q, "d.sex = $1")
	assert.Contains(t, q, "s.name = $2")

	pv, err := Lookup("patient-visits")
	require.NoError(t, err)
	assert.Contains(t, pv.SQL(store.MySQL), "CONCAT(s.s_date, ', ', s.starting")
	assert.Contains(t, pv.SQL(store.SQLite), "s.s_date || ', ' || s.starting")
}
