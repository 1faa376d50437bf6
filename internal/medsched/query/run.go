package query

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vaibhaw-/medsched/internal/medsched/logger"
	"github.com/vaibhaw-/medsched/internal/medsched/store"
)

// RunSummary counts what one report run produced.
type RunSummary struct {
	Reports    int
	Rows       int
	Reassigned *ReassignResult
	// NoReplacement is set when reassign found no free doctor and moved nothing.
	NoReplacement bool
	Purged        int64
	PurgeRan      bool
}

// PrintSummary prints the run counters.
func (s *RunSummary) PrintSummary(w io.Writer) {
	fmt.Fprintf(w, "Summary:\n")
	fmt.Fprintf(w, "  Reports: %d\n", s.Reports)
	fmt.Fprintf(w, "  Rows: %d\n", s.Rows)
	if s.Reassigned != nil {
		fmt.Fprintf(w, "  Reassigned: %d rows (doctor %d -> %d)\n",
			s.Reassigned.Affected, s.Reassigned.FromDoctor, s.Reassigned.ToDoctor)
	}
	if s.NoReplacement {
		fmt.Fprintf(w, "  Reassigned: none (no replacement doctor available)\n")
	}
	if s.PurgeRan {
		fmt.Fprintf(w, "  Purged patients: %d\n", s.Purged)
	}
}

// Run renders the selected read reports, then applies the maintenance
// queries that opts enables, in catalog order: reassign before purge.
func Run(ctx context.Context, st *store.Store, opts Options) (*RunSummary, error) {
	reports, err := Select(opts.Reports)
	if err != nil {
		return nil, err
	}

	output, err := openOutput(opts.OutputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open output: %w", err)
	}
	if closer, ok := output.(io.Closer); ok && output != os.Stdout {
		defer closer.Close()
	}

	rw, err := NewResultWriter(output, opts.Format)
	if err != nil {
		return nil, err
	}

	sum := &RunSummary{}
	for _, r := range reports {
		res, err := Execute(ctx, st.DB(), st.Dialect(), r, opts.Params)
		if err != nil {
			return sum, err
		}
		if err := rw.Write(res); err != nil {
			return sum, err
		}
		sum.Reports++
		sum.Rows += len(res.Rows)
	}

	if opts.Reassign != nil {
		rr, err := Reassign(ctx, st, *opts.Reassign)
		switch {
		case errors.Is(err, ErrNoReplacement):
			// Nothing moved; the purge still runs.
			logger.L().Warnw("Reassign skipped", "doctor_id", opts.Reassign.DoctorID, "date", opts.Reassign.Date, "err", err.Error())
			sum.NoReplacement = true
			if err := rw.Write(noReplacementResult(*opts.Reassign)); err != nil {
				return sum, err
			}
		case err != nil:
			return sum, err
		default:
			sum.Reassigned = rr
			if err := rw.Write(reassignResult(rr)); err != nil {
				return sum, err
			}
		}
	}

	if opts.Purge != nil {
		n, err := PurgePatients(ctx, st, *opts.Purge)
		if err != nil {
			return sum, err
		}
		sum.Purged, sum.PurgeRan = n, true
		if err := rw.Write(purgeResult(*opts.Purge, n)); err != nil {
			return sum, err
		}
	}

	if err := rw.Close(); err != nil {
		return sum, err
	}
	logger.L().Infow("Report run complete", "reports", sum.Reports, "rows", sum.Rows)
	return sum, nil
}

func reassignResult(r *ReassignResult) *Result {
	return &Result{
		Name:    "reassign",
		Title:   "Schedule reassignment",
		Columns: []string{"from_doctor", "to_doctor", "specialization", "date", "affected"},
		Rows:    [][]any{{r.FromDoctor, r.ToDoctor, r.Specialization, r.Date, r.Affected}},
	}
}

// noReplacementResult is the reassign row when no doctor was free: to_doctor is NULL.
func noReplacementResult(p ReassignParams) *Result {
	return &Result{
		Name:    "reassign",
		Title:   "Schedule reassignment",
		Columns: []string{"from_doctor", "to_doctor", "specialization", "date", "affected"},
		Rows:    [][]any{{p.DoctorID, nil, p.Specialization, p.Date, int64(0)}},
	}
}

func purgeResult(p PurgeParams, n int64) *Result {
	return &Result{
		Name:    "purge",
		Title:   "Patient purge",
		Columns: []string{"born_on_or_before", "deleted"},
		Rows:    [][]any{{p.BornOnOrBefore, n}},
	}
}

// openOutput returns stdout for an empty name, otherwise creates the file.
func openOutput(outputFile string) (io.Writer, error) {
	if outputFile == "" {
		return os.Stdout, nil
	}
	file, err := os.Create(outputFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file %s: %w", outputFile, err)
	}
	return file, nil
}
