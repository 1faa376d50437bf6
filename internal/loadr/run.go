package loadr

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/vaibhaw-/medsched/internal/medsched/logger"
)

// ------------------- Plan -------------------

// Plan describes the row counts for one generator run.
type Plan struct {
	Seed            int64
	Specializations int
	Places          int
	Medicines       int
	Patients        int
	Doctors         int
	ScheduleDays    int
	AssignmentDays  int // days of doctor_schedule, starting today
	Visits          int
}

// DefaultPlan matches the classic clinic dataset: doctor_schedule for today
// gets 10 doctors x 12 slots = 120 rows.
func DefaultPlan() Plan {
	return Plan{
		Specializations: 9,
		Places:          10,
		Medicines:       10,
		Patients:        30,
		Doctors:         10,
		ScheduleDays:    10,
		AssignmentDays:  1,
		Visits:          4,
	}
}

// Validate rejects negative counts.
func (p Plan) Validate() error {
	counts := map[string]int{
		"specializations": p.Specializations,
		"places":          p.Places,
		"medicines":       p.Medicines,
		"patients":        p.Patients,
		"doctors":         p.Doctors,
		"schedule_days":   p.ScheduleDays,
		"assignment_days": p.AssignmentDays,
		"visits":          p.Visits,
	}
	for name, n := range counts {
		if n < 0 {
			return fmt.Errorf("invalid plan: %s must not be negative (got %d)", name, n)
		}
	}
	return nil
}

// ------------------- Summary -------------------

// TableCount is the number of rows one pass wrote.
type TableCount struct {
	Table    string
	Inserted int
}

// Summary describes a completed (or aborted) generator run.
type Summary struct {
	RunID    string
	Started  time.Time
	Elapsed  time.Duration
	Inserted []TableCount
}

// Total returns the number of rows written across all passes.
func (s *Summary) Total() int {
	total := 0
	for _, c := range s.Inserted {
		total += c.Inserted
	}
	return total
}

// Get returns the inserted count for table, 0 if the pass did not run.
func (s *Summary) Get(table string) int {
	for _, c := range s.Inserted {
		if c.Table == table {
			return c.Inserted
		}
	}
	return 0
}

// PrintSummary prints per-table counts in pass order.
func (s *Summary) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Run: %s\n", s.RunID)
	fmt.Fprintf(w, "  Elapsed: %s\n", s.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Inserted:\n")
	for _, c := range s.Inserted {
		fmt.Fprintf(w, "    %s: %d\n", c.Table, c.Inserted)
	}
	fmt.Fprintf(w, "\n")
	fmt.Fprintf(w, "  Total rows: %d\n", s.Total())
}

// ------------------- Entry Point -------------------

// Run executes every pass of plan in dependency order. It stops at the first
// failing pass; the returned summary covers the passes that ran.
func (g *Generator) Run(ctx context.Context, plan Plan) (*Summary, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	sum := &Summary{RunID: uuid.NewString(), Started: time.Now()}
	log := logger.L().With("run_id", sum.RunID)
	log.Infow("Starting fixture run",
		"dialect", g.st.Dialect(),
		"seed", plan.Seed,
		"patients", plan.Patients,
		"doctors", plan.Doctors,
		"schedule_days", plan.ScheduleDays)

	passes := []struct {
		table string
		run   func(context.Context) (int, error)
	}{
		{"specialization", func(ctx context.Context) (int, error) { return g.FakeSpecializations(ctx, plan.Specializations) }},
		{"place", func(ctx context.Context) (int, error) { return g.FakePlaces(ctx, plan.Places) }},
		{"medicine", func(ctx context.Context) (int, error) { return g.FakeMedicines(ctx, plan.Medicines) }},
		{"patient", func(ctx context.Context) (int, error) { return g.FakePatients(ctx, plan.Patients) }},
		{"doctor", func(ctx context.Context) (int, error) { return g.FakeDoctors(ctx, plan.Doctors) }},
		{"schedule", func(ctx context.Context) (int, error) { return g.FakeSchedule(ctx, plan.ScheduleDays) }},
		{"doctor_schedule", func(ctx context.Context) (int, error) { return g.FakeDoctorSchedule(ctx, plan.AssignmentDays) }},
		{"visit", func(ctx context.Context) (int, error) { return g.FakeVisits(ctx, plan.Visits) }},
		{"appointment", g.FakeAppointments},
	}

	for _, p := range passes {
		if err := ctx.Err(); err != nil {
			sum.Elapsed = time.Since(sum.Started)
			return sum, err
		}
		n, err := p.run(ctx)
		sum.Inserted = append(sum.Inserted, TableCount{Table: p.table, Inserted: n})
		if err != nil {
			sum.Elapsed = time.Since(sum.Started)
			log.Errorw("Fixture pass failed", "table", p.table, "inserted", n, "err", err.Error())
			return sum, err
		}
	}

	sum.Elapsed = time.Since(sum.Started)
	log.Infow("Generation complete", "total_rows", sum.Total(), "elapsed", sum.Elapsed.String())
	return sum, nil
}
