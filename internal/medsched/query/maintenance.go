package query

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vaibhaw-/medsched/internal/medsched/logger"
	"github.com/vaibhaw-/medsched/internal/medsched/store"
)

var (
	// ErrNoReplacement is returned when no doctor can take over a schedule.
	ErrNoReplacement = errors.New("no replacement doctor available")
	// ErrDoctorNotFound is returned when the doctor to reassign does not exist.
	ErrDoctorNotFound = errors.New("doctor not found")
)

const doctorSpecializationSQL = `
SELECT s.name
FROM doctor d
    JOIN specialization s ON s.id = d.spec_id
WHERE d.id = ?`

// The IS NOT NULL guard keeps NOT IN from collapsing to unknown when a
// schedule row has no doctor.
const replacementSQL = `
SELECT d.id
FROM doctor d
    JOIN specialization s ON s.id = d.spec_id
WHERE s.name = ?
  AND d.id <> ?
  AND d.id NOT IN (
      SELECT ds.doctor_id
      FROM doctor_schedule ds
          JOIN schedule sc ON sc.id = ds.schedule_id
      WHERE sc.s_date = ?
        AND ds.doctor_id IS NOT NULL)
ORDER BY d.id
LIMIT 1`

const reassignSQL = `UPDATE doctor_schedule SET doctor_id = ? WHERE doctor_id = ?`

const purgePatientsSQL = `DELETE FROM patient WHERE birthday <= ?`

// ReassignResult reports which doctor took over and how many rows moved.
type ReassignResult struct {
	FromDoctor     int64
	ToDoctor       int64
	Specialization string
	Date           string
	Affected       int64
}

// Reassign moves every doctor_schedule row of p.DoctorID to the lowest-id
// doctor of the specialization who is not scheduled on p.Date.
func Reassign(ctx context.Context, st *store.Store, p ReassignParams) (*ReassignResult, error) {
	d := st.Dialect()
	res := &ReassignResult{FromDoctor: p.DoctorID, Specialization: p.Specialization, Date: p.Date}

	err := st.WithTx(ctx, func(tx *sql.Tx) error {
		if res.Specialization == "" {
			err := tx.QueryRowContext(ctx, d.Rebind(doctorSpecializationSQL), p.DoctorID).Scan(&res.Specialization)
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: id %d", ErrDoctorNotFound, p.DoctorID)
			}
			if err != nil {
				return fmt.Errorf("lookup specialization of doctor %d: %w", p.DoctorID, err)
			}
		}

		err := tx.QueryRowContext(ctx, d.Rebind(replacementSQL), res.Specialization, p.DoctorID, p.Date).Scan(&res.ToDoctor)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: specialization %q on %s", ErrNoReplacement, res.Specialization, p.Date)
		}
		if err != nil {
			return fmt.Errorf("select replacement: %w", err)
		}

		r, err := tx.ExecContext(ctx, d.Rebind(reassignSQL), res.ToDoctor, p.DoctorID)
		if err != nil {
			return fmt.Errorf("reassign schedule: %w", err)
		}
		res.Affected, err = r.RowsAffected()
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.L().Infow("Schedule reassigned",
		"from_doctor", res.FromDoctor,
		"to_doctor", res.ToDoctor,
		"specialization", res.Specialization,
		"date", res.Date,
		"affected", res.Affected)
	return res, nil
}

// PurgePatients deletes patients born on or before the cutoff and returns the
// number of rows removed. Their visits are kept.
func PurgePatients(ctx context.Context, st *store.Store, p PurgeParams) (int64, error) {
	r, err := st.DB().ExecContext(ctx, st.Dialect().Rebind(purgePatientsSQL), p.BornOnOrBefore)
	if err != nil {
		return 0, fmt.Errorf("purge patients: %w", err)
	}
	n, err := r.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge patients: %w", err)
	}
	logger.L().Infow("Patients purged", "born_on_or_before", p.BornOnOrBefore, "deleted", n)
	return n, nil
}
