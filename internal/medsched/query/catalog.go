package query

import (
	"errors"
	"fmt"

	"github.com/vaibhaw-/medsched/internal/medsched/store"
)

// ErrUnknownReport is returned when a requested report is not in the catalog.
var ErrUnknownReport = errors.New("unknown report")

const doctorsSQL = `
SELECT d.full_name, d.address, d.phone, s.name AS specialization
FROM doctor d
    JOIN specialization s ON s.id = d.spec_id
WHERE d.sex = ?
  AND s.name = ?
ORDER BY d.full_name DESC`

const workloadSQL = `
SELECT d.full_name AS doctor, s.s_date AS work_date, COUNT(*) AS hours
FROM doctor_schedule ds
    JOIN doctor d ON d.id = ds.doctor_id
    JOIN schedule s ON s.id = ds.schedule_id
WHERE s.s_date = ?
GROUP BY d.id, d.full_name, s.s_date
ORDER BY d.full_name`

const doctorsPerSpecializationSQL = `
SELECT s.name AS specialization, COUNT(d.id) AS doctors
FROM specialization s
    JOIN doctor d ON d.spec_id = s.id
GROUP BY s.name
ORDER BY s.name`

const visitFrequencySQL = `
SELECT s.name AS specialization, COUNT(s.name) AS visits
FROM visit v
    JOIN doctor_schedule ds ON ds.id = v.registration_id
    JOIN doctor d ON d.id = ds.doctor_id
    JOIN specialization s ON s.id = d.spec_id
    JOIN patient p ON p.id = v.patient_id
WHERE EXISTS (SELECT 1 FROM visit pv WHERE pv.patient_id = p.id)
GROUP BY s.name
ORDER BY s.name`

const experiencedDoctorsSQL = `
SELECT d.full_name AS doctor, d.work_experience AS experience, s.name AS specialization
FROM doctor d
    JOIN specialization s ON s.id = d.spec_id
WHERE d.work_experience > (SELECT AVG(work_experience) FROM doctor)
ORDER BY d.work_experience DESC, d.full_name`

// patientVisitsSQL formats each visit slot as "<date>, <start>:00-<end>:00".
func patientVisitsSQL(d store.Dialect) string {
	slot := d.Concat("s.s_date", "', '", "s.starting", "':00-'", "s.ending", "':00'")
	return `
SELECT p.full_name AS patient, d.full_name AS doctor, ` + slot + ` AS visit_time, v.diagnosis
FROM patient p
    JOIN visit v ON v.patient_id = p.id
    JOIN doctor_schedule ds ON ds.id = v.registration_id
    JOIN doctor d ON d.id = ds.doctor_id
    JOIN schedule s ON s.id = ds.schedule_id
WHERE EXISTS (SELECT 1 FROM visit pv WHERE pv.patient_id = p.id)
ORDER BY p.full_name, v.id`
}

func static(q string) func(store.Dialect) string {
	return func(store.Dialect) string { return q }
}

func noArgs(Params) []any { return nil }

var catalog = []Report{
	{
		Name:  "doctors",
		Title: "Doctors by specialization and sex",
		SQL:   static(doctorsSQL),
		Args:  func(p Params) []any { return []any{p.Sex, p.Specialization} },
	},
	{
		Name:  "patient-visits",
		Title: "Doctors visited by each patient",
		SQL:   patientVisitsSQL,
		Args:  noArgs,
	},
	{
		Name:  "workload",
		Title: "Scheduled hours per doctor",
		SQL:   static(workloadSQL),
		Args:  func(p Params) []any { return []any{p.Date} },
	},
	{
		Name:  "doctors-per-specialization",
		Title: "Doctors per specialization",
		SQL:   static(doctorsPerSpecializationSQL),
		Args:  noArgs,
	},
	{
		Name:  "visit-frequency",
		Title: "Visit frequency by specialization",
		SQL:   static(visitFrequencySQL),
		Args:  noArgs,
	},
	{
		// Same body as visit-frequency; kept as its own catalog entry.
		Name:  "visit-frequency-repeat",
		Title: "Visit frequency by specialization (repeat)",
		SQL:   static(visitFrequencySQL),
		Args:  noArgs,
	},
	{
		Name:  "experienced-doctors",
		Title: "Doctors with above-average work experience",
		SQL:   static(experiencedDoctorsSQL),
		Args:  noArgs,
	},
}

// Catalog returns the read reports in run order.
func Catalog() []Report {
	out := make([]Report, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a report by name.
func Lookup(name string) (Report, error) {
	for _, r := range catalog {
		if r.Name == name {
			return r, nil
		}
	}
	return Report{}, fmt.Errorf("%w: %q", ErrUnknownReport, name)
}

// Select resolves names to reports, preserving the requested order.
// No names selects the whole catalog.
func Select(names []string) ([]Report, error) {
	if len(names) == 0 {
		return Catalog(), nil
	}
	reports := make([]Report, 0, len(names))
	for _, n := range names {
		r, err := Lookup(n)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}
