package loadr

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vaibhaw-/medsched/internal/medsched/logger"
	"github.com/vaibhaw-/medsched/internal/medsched/store"
)

const (
	// FirstHour and LastHour bound the daily slot grid (inclusive).
	FirstHour   = 8
	LastHour    = 19
	SlotsPerDay = LastHour - FirstHour + 1

	MinAmount = 1
	MaxAmount = 4

	MinExperience = 1
	MaxExperience = 8

	sentenceWords = 10
)

var (
	// ErrNoParents is returned when a dependent pass finds no parent rows.
	ErrNoParents = errors.New("no parent rows")
	// ErrNotEnoughPlaces is returned when doctors outnumber places.
	ErrNotEnoughPlaces = errors.New("not enough places for doctors")
	// ErrNotEnoughRegistrations is returned when visits outnumber doctor_schedule rows.
	ErrNotEnoughRegistrations = errors.New("not enough registrations for visits")
)

// Generator writes fixture rows into a store. Each pass re-reads parent ids
// from the store, so passes must run in dependency order.
type Generator struct {
	st    *store.Store
	synth Synthesizer

	// Clock supplies "today" for schedule passes.
	Clock func() time.Time
}

func NewGenerator(st *store.Store, synth Synthesizer) *Generator {
	return &Generator{st: st, synth: synth, Clock: time.Now}
}

// day returns the storage date i days after today.
func (g *Generator) day(i int) string {
	return g.Clock().AddDate(0, 0, i).Format(store.DateLayout)
}

// insertEach prepares query once inside a single transaction and calls row n
// times; row returns the bound args for the i-th insert. It returns the
// number of rows actually written.
func (g *Generator) insertEach(ctx context.Context, tx *sql.Tx, query string, n int, row func(i int) []any) (int, error) {
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	written := 0
	for i := 0; i < n; i++ {
		res, err := stmt.ExecContext(ctx, row(i)...)
		if err != nil {
			return written, err
		}
		if affected, err := res.RowsAffected(); err == nil {
			written += int(affected)
		}
	}
	return written, nil
}

// FakeSpecializations inserts the first count catalog names, cycling when
// count exceeds the catalog. Duplicates are ignored.
func (g *Generator) FakeSpecializations(ctx context.Context, count int) (int, error) {
	logger.L().Infow("Generating specializations", "count", count)
	q := g.st.Dialect().InsertIgnore("specialization", "name")

	var inserted int
	err := g.st.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		inserted, err = g.insertEach(ctx, tx, q, count, func(i int) []any {
			return []any{Specializations[i%len(Specializations)]}
		})
		return err
	})
	if err != nil {
		return inserted, fmt.Errorf("specializations: %w", err)
	}
	logger.L().Debugw("Inserted specializations", "requested", count, "inserted", inserted)
	return inserted, nil
}

// FakePlaces inserts rooms numbered 1..count. Duplicates are ignored.
func (g *Generator) FakePlaces(ctx context.Context, count int) (int, error) {
	logger.L().Infow("Generating places", "count", count)
	q := g.st.Dialect().InsertIgnore("place", "name")

	var inserted int
	err := g.st.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		inserted, err = g.insertEach(ctx, tx, q, count, func(i int) []any {
			return []any{PlaceName(i + 1)}
		})
		return err
	})
	if err != nil {
		return inserted, fmt.Errorf("places: %w", err)
	}
	logger.L().Debugw("Inserted places", "requested", count, "inserted", inserted)
	return inserted, nil
}

func (g *Generator) FakeMedicines(ctx context.Context, count int) (int, error) {
	logger.L().Infow("Generating medicines", "count", count)
	q := g.st.Dialect().Insert("medicine", "name", "usage", "actions", "effects")

	var inserted int
	err := g.st.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		inserted, err = g.insertEach(ctx, tx, q, count, func(int) []any {
			return []any{
				pick(g.synth, DrugNames),
				g.synth.Sentence(sentenceWords),
				g.synth.Sentence(sentenceWords),
				g.synth.Sentence(sentenceWords),
			}
		})
		return err
	})
	if err != nil {
		return inserted, fmt.Errorf("medicines: %w", err)
	}
	return inserted, nil
}

func (g *Generator) FakePatients(ctx context.Context, count int) (int, error) {
	logger.L().Infow("Generating patients", "count", count)
	q := g.st.Dialect().Insert("patient", "full_name", "address", "sex", "birthday")

	var inserted int
	err := g.st.WithTx(ctx, func(tx *sql.Tx) error {
		var err error
		inserted, err = g.insertEach(ctx, tx, q, count, func(int) []any {
			return []any{
				g.synth.Name(),
				g.synth.Address(),
				g.synth.Sex(),
				g.synth.Birthday().Format(store.DateLayout),
			}
		})
		return err
	})
	if err != nil {
		return inserted, fmt.Errorf("patients: %w", err)
	}
	return inserted, nil
}

// FakeDoctors inserts count doctors, each with a specialization sampled from
// the ids present in the store.
func (g *Generator) FakeDoctors(ctx context.Context, count int) (int, error) {
	logger.L().Infow("Generating doctors", "count", count)
	q := g.st.Dialect().Insert("doctor", "spec_id", "full_name", "sex", "address", "phone", "work_experience")

	var inserted int
	err := g.st.WithTx(ctx, func(tx *sql.Tx) error {
		specIDs, err := g.st.SelectIDs(ctx, tx, "SELECT id FROM specialization ORDER BY id")
		if err != nil {
			return fmt.Errorf("read specializations: %w", err)
		}
		if len(specIDs) == 0 && count > 0 {
			return fmt.Errorf("%w: specialization", ErrNoParents)
		}
		logger.L().Debugw("Preloaded parent ids", "table", "specialization", "count", len(specIDs))

		inserted, err = g.insertEach(ctx, tx, q, count, func(int) []any {
			return []any{
				pick(g.synth, specIDs),
				g.synth.Name(),
				g.synth.Sex(),
				g.synth.Address(),
				g.synth.Phone(),
				g.synth.Number(MinExperience, MaxExperience),
			}
		})
		return err
	})
	if err != nil {
		return inserted, fmt.Errorf("doctors: %w", err)
	}
	return inserted, nil
}

// FakeSchedule inserts hourly slots FirstHour..LastHour for each of days days
// starting today, committing once per day.
func (g *Generator) FakeSchedule(ctx context.Context, days int) (int, error) {
	logger.L().Infow("Generating schedule", "days", days, "slots_per_day", SlotsPerDay)
	q := g.st.Dialect().Insert("schedule", "s_date", "starting", "ending")

	total := 0
	for i := 0; i < days; i++ {
		date := g.day(i)
		err := g.st.WithTx(ctx, func(tx *sql.Tx) error {
			n, err := g.insertEach(ctx, tx, q, SlotsPerDay, func(slot int) []any {
				hour := FirstHour + slot
				return []any{date, hour, hour + 1}
			})
			total += n
			return err
		})
		if err != nil {
			return total, fmt.Errorf("schedule %s: %w", date, err)
		}
		logger.L().Debugw("Inserted schedule day", "date", date)
	}
	return total, nil
}

// FakeDoctorSchedule assigns every doctor to every slot of each of days days
// starting today. Doctor i always gets place i, so there must be at least as
// many places as doctors. Commits once per day.
func (g *Generator) FakeDoctorSchedule(ctx context.Context, days int) (int, error) {
	logger.L().Infow("Generating doctor schedule", "days", days)
	db := g.st.DB()

	placeIDs, err := g.st.SelectIDs(ctx, db, "SELECT id FROM place ORDER BY id")
	if err != nil {
		return 0, fmt.Errorf("doctor schedule: read places: %w", err)
	}
	doctorIDs, err := g.st.SelectIDs(ctx, db, "SELECT id FROM doctor ORDER BY id")
	if err != nil {
		return 0, fmt.Errorf("doctor schedule: read doctors: %w", err)
	}
	if len(doctorIDs) == 0 {
		return 0, fmt.Errorf("doctor schedule: %w: doctor", ErrNoParents)
	}
	if len(doctorIDs) > len(placeIDs) {
		return 0, fmt.Errorf("doctor schedule: %w: doctors=%d places=%d", ErrNotEnoughPlaces, len(doctorIDs), len(placeIDs))
	}
	logger.L().Debugw("Preloaded parent ids", "doctors", len(doctorIDs), "places", len(placeIDs))

	q := g.st.Dialect().Insert("doctor_schedule", "doctor_id", "schedule_id", "place_id")
	total := 0
	for i := 0; i < days; i++ {
		date := g.day(i)
		err := g.st.WithTx(ctx, func(tx *sql.Tx) error {
			slotIDs, err := g.st.SelectIDs(ctx, tx, "SELECT id FROM schedule WHERE s_date = ? ORDER BY id", date)
			if err != nil {
				return fmt.Errorf("read slots: %w", err)
			}
			if len(slotIDs) == 0 {
				return fmt.Errorf("%w: schedule", ErrNoParents)
			}
			for _, slotID := range slotIDs {
				n, err := g.insertEach(ctx, tx, q, len(doctorIDs), func(j int) []any {
					return []any{doctorIDs[j], slotID, placeIDs[j]}
				})
				total += n
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return total, fmt.Errorf("doctor schedule %s: %w", date, err)
		}
		logger.L().Debugw("Assigned doctors for day", "date", date)
	}
	return total, nil
}

// FakeVisits pairs the first count patients with the first count
// registrations, both in id order.
func (g *Generator) FakeVisits(ctx context.Context, count int) (int, error) {
	logger.L().Infow("Generating visits", "count", count)
	q := g.st.Dialect().Insert("visit", "registration_id", "patient_id", "symptoms", "diagnosis")

	var inserted int
	err := g.st.WithTx(ctx, func(tx *sql.Tx) error {
		patientIDs, err := g.st.SelectIDs(ctx, tx, "SELECT id FROM patient ORDER BY id")
		if err != nil {
			return fmt.Errorf("read patients: %w", err)
		}
		registrationIDs, err := g.st.SelectIDs(ctx, tx, "SELECT id FROM doctor_schedule ORDER BY id")
		if err != nil {
			return fmt.Errorf("read registrations: %w", err)
		}
		if len(patientIDs) == 0 && count > 0 {
			return fmt.Errorf("%w: patient", ErrNoParents)
		}

		k := min(count, len(patientIDs))
		if len(registrationIDs) < k {
			return fmt.Errorf("%w: visits=%d registrations=%d", ErrNotEnoughRegistrations, k, len(registrationIDs))
		}

		inserted, err = g.insertEach(ctx, tx, q, k, func(i int) []any {
			return []any{
				registrationIDs[i],
				patientIDs[i],
				g.synth.Sentence(sentenceWords),
				g.synth.Sentence(sentenceWords),
			}
		})
		return err
	})
	if err != nil {
		return inserted, fmt.Errorf("visits: %w", err)
	}
	return inserted, nil
}

// FakeAppointments gives every existing visit one random medicine.
func (g *Generator) FakeAppointments(ctx context.Context) (int, error) {
	logger.L().Infow("Generating appointments")
	q := g.st.Dialect().Insert("appointment", "visit_id", "medicine_id", "amount")

	var inserted int
	err := g.st.WithTx(ctx, func(tx *sql.Tx) error {
		visitIDs, err := g.st.SelectIDs(ctx, tx, "SELECT id FROM visit ORDER BY id")
		if err != nil {
			return fmt.Errorf("read visits: %w", err)
		}
		if len(visitIDs) == 0 {
			return nil
		}
		medicineIDs, err := g.st.SelectIDs(ctx, tx, "SELECT id FROM medicine ORDER BY id")
		if err != nil {
			return fmt.Errorf("read medicines: %w", err)
		}
		if len(medicineIDs) == 0 {
			return fmt.Errorf("%w: medicine", ErrNoParents)
		}

		inserted, err = g.insertEach(ctx, tx, q, len(visitIDs), func(i int) []any {
			return []any{visitIDs[i], pick(g.synth, medicineIDs), g.synth.Number(MinAmount, MaxAmount)}
		})
		return err
	})
	if err != nil {
		return inserted, fmt.Errorf("appointments: %w", err)
	}
	return inserted, nil
}
