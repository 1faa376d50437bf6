package query

import "github.com/vaibhaw-/medsched/internal/medsched/store"

// Params carries the bound inputs of the read reports.
type Params struct {
	Specialization string // doctors: specialization name
	Sex            string // doctors: "M" or "F"
	Date           string // workload: YYYY-MM-DD
}

// Report is one entry of the read-only catalog.
type Report struct {
	Name  string
	Title string
	// SQL returns the query text for a dialect, with `?` placeholders.
	SQL func(d store.Dialect) string
	// Args returns the bound arguments, in placeholder order.
	Args func(p Params) []any
}

// Result is a rendered-ready query result.
type Result struct {
	Name    string
	Title   string
	Columns []string
	Rows    [][]any
}

// ReassignParams selects the doctor whose schedule moves and the date the
// replacement must be free on. An empty Specialization means the doctor's own.
type ReassignParams struct {
	DoctorID       int64
	Specialization string
	Date           string
}

// PurgeParams deletes patients born on or before BornOnOrBefore (YYYY-MM-DD).
type PurgeParams struct {
	BornOnOrBefore string
}

// Options contains everything one report run needs.
// Reassign and Purge are skipped when nil.
type Options struct {
	Reports    []string // catalog names, empty means all in catalog order
	Format     string   // table, json or yaml
	OutputFile string   // empty means stdout
	Params     Params
	Reassign   *ReassignParams
	Purge      *PurgeParams
}
