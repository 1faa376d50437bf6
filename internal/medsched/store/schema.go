package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/vaibhaw-/medsched/internal/medsched/logger"
)

// Tables lists every table in dependency order: a table only references
// tables before it.
var Tables = []string{
	"specialization",
	"place",
	"medicine",
	"patient",
	"doctor",
	"schedule",
	"doctor_schedule",
	"visit",
	"appointment",
}

// column types that differ between dialects
type typeSet struct {
	id, text, name, date, integer, suffix string
}

func (d Dialect) types() typeSet {
	switch d {
	case MySQL:
		return typeSet{
			id:      "INT AUTO_INCREMENT PRIMARY KEY",
			text:    "TEXT",
			name:    "VARCHAR(255)",
			date:    "DATE",
			integer: "INT",
			suffix:  " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
		}
	case Postgres:
		return typeSet{id: "SERIAL PRIMARY KEY", text: "TEXT", name: "TEXT", date: "DATE", integer: "INTEGER"}
	default:
		return typeSet{id: "INTEGER PRIMARY KEY AUTOINCREMENT", text: "TEXT", name: "TEXT", date: "TEXT", integer: "INTEGER"}
	}
}

// DDL returns the CREATE TABLE statements for the dialect, in Tables order.
//
// visit.patient_id has no foreign key: purging patients leaves their visits
// behind. doctor_schedule.doctor_id is nullable.
func (d Dialect) DDL() []string {
	t := d.types()
	usage := d.Quote("usage")

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS specialization (
    id %s,
    name %s NOT NULL UNIQUE
)%s`, t.id, t.name, t.suffix),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS place (
    id %s,
    name %s NOT NULL UNIQUE
)%s`, t.id, t.name, t.suffix),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS medicine (
    id %s,
    name %s NOT NULL,
    %s %s,
    actions %s,
    effects %s
)%s`, t.id, t.name, usage, t.text, t.text, t.text, t.suffix),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS patient (
    id %s,
    full_name %s NOT NULL,
    address %s,
    sex CHAR(1),
    birthday %s
)%s`, t.id, t.name, t.text, t.date, t.suffix),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS doctor (
    id %s,
    spec_id %s NOT NULL,
    full_name %s NOT NULL,
    sex CHAR(1),
    address %s,
    phone %s,
    work_experience %s,
    FOREIGN KEY (spec_id) REFERENCES specialization(id)
)%s`, t.id, t.integer, t.name, t.text, t.name, t.integer, t.suffix),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS schedule (
    id %s,
    s_date %s NOT NULL,
    starting %s NOT NULL,
    ending %s NOT NULL
)%s`, t.id, t.date, t.integer, t.integer, t.suffix),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS doctor_schedule (
    id %s,
    doctor_id %s,
    schedule_id %s NOT NULL,
    place_id %s NOT NULL,
    FOREIGN KEY (doctor_id) REFERENCES doctor(id),
    FOREIGN KEY (schedule_id) REFERENCES schedule(id),
    FOREIGN KEY (place_id) REFERENCES place(id)
)%s`, t.id, t.integer, t.integer, t.integer, t.suffix),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS visit (
    id %s,
    registration_id %s NOT NULL,
    patient_id %s NOT NULL,
    symptoms %s,
    diagnosis %s,
    FOREIGN KEY (registration_id) REFERENCES doctor_schedule(id)
)%s`, t.id, t.integer, t.integer, t.text, t.text, t.suffix),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS appointment (
    id %s,
    visit_id %s NOT NULL,
    medicine_id %s NOT NULL,
    amount %s NOT NULL CHECK (amount > 0),
    FOREIGN KEY (visit_id) REFERENCES visit(id),
    FOREIGN KEY (medicine_id) REFERENCES medicine(id)
)%s`, t.id, t.integer, t.integer, t.integer, t.suffix),
	}
}

// EnsureSchema creates any missing tables.
func (s *Store) EnsureSchema(ctx context.Context) error {
	logger.L().Infow("Ensuring schema", "dialect", s.dialect, "tables", len(Tables))
	for i, stmt := range s.dialect.DDL() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create table %s: %w", Tables[i], err)
		}
	}
	return nil
}

// DropSchema drops every table in reverse dependency order.
func (s *Store) DropSchema(ctx context.Context) error {
	logger.L().Warnw("Dropping schema", "dialect", s.dialect, "tables", strings.Join(Tables, ","))
	for i := len(Tables) - 1; i >= 0; i-- {
		if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+Tables[i]); err != nil {
			return fmt.Errorf("drop table %s: %w", Tables[i], err)
		}
	}
	return nil
}
