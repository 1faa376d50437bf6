package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/medsched/internal/medsched/config"
	"github.com/vaibhaw-/medsched/internal/medsched/query"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the reporting queries, then reassign and purge",
	Long: `Run the read-only report catalog in order, then the two maintenance
queries: move a doctor's schedule to a free colleague and delete patients
born on or before a cutoff date. Use --skip-maintenance to only read.`,
	RunE: runReport,
}

var (
	flagOnly            []string
	flagFormat          string
	flagReportOutput    string
	flagDate            string
	flagSpecialization  string
	flagSex             string
	flagSkipMaintenance bool
	flagReassignDoctor  int64
	flagReassignDate    string
	flagPurgeBefore     string
	flagList            bool
)

func init() {
	f := reportCmd.Flags()
	f.StringSliceVar(&flagOnly, "only", nil, "comma-separated report names (default all)")
	f.StringVar(&flagFormat, "format", "", "output format: table|json|yaml")
	f.StringVar(&flagReportOutput, "output", "", "output file (default stdout)")
	f.StringVar(&flagDate, "date", "", "workload date (default today)")
	f.StringVar(&flagSpecialization, "specialization", "", "specialization for the doctors report")
	f.StringVar(&flagSex, "sex", "", "sex for the doctors report: M|F")
	f.BoolVar(&flagSkipMaintenance, "skip-maintenance", false, "do not run reassign and purge")
	f.Int64Var(&flagReassignDoctor, "reassign-doctor", 0, "doctor whose schedule is reassigned")
	f.StringVar(&flagReassignDate, "reassign-date", "", "date the replacement must be free on (default today)")
	f.StringVar(&flagPurgeBefore, "purge-before", "", "delete patients born on or before this date")
	f.BoolVar(&flagList, "list", false, "list the report catalog and exit")
}

// reportOptions merges the report config with changed flags and normalizes
// dates and sex.
func reportOptions(cmd *cobra.Command, rc config.ReportCfg, now time.Time) (query.Options, error) {
	flags := cmd.Flags()
	if flags.Changed("format") {
		rc.Format = flagFormat
	}
	if flags.Changed("output") {
		rc.Output = flagReportOutput
	}
	if flags.Changed("date") {
		rc.Date = flagDate
	}
	if flags.Changed("specialization") {
		rc.Specialization = flagSpecialization
	}
	if flags.Changed("sex") {
		rc.Sex = flagSex
	}
	if flags.Changed("reassign-doctor") {
		rc.Reassign.DoctorID = flagReassignDoctor
	}
	if flags.Changed("reassign-date") {
		rc.Reassign.Date = flagReassignDate
	}
	if flags.Changed("purge-before") {
		rc.Purge.BornBefore = flagPurgeBefore
	}

	date, err := query.NormalizeDate(rc.Date, now)
	if err != nil {
		return query.Options{}, err
	}
	sex, err := query.NormalizeSex(rc.Sex)
	if err != nil {
		return query.Options{}, err
	}

	opts := query.Options{
		Reports:    flagOnly,
		Format:     rc.Format,
		OutputFile: rc.Output,
		Params: query.Params{
			Specialization: rc.Specialization,
			Sex:            sex,
			Date:           date,
		},
	}
	if flagSkipMaintenance {
		return opts, nil
	}

	reassignDate, err := query.NormalizeDate(rc.Reassign.Date, now)
	if err != nil {
		return query.Options{}, err
	}
	opts.Reassign = &query.ReassignParams{
		DoctorID:       rc.Reassign.DoctorID,
		Specialization: rc.Reassign.Specialization,
		Date:           reassignDate,
	}

	if rc.Purge.BornBefore != "" {
		cutoff, err := query.NormalizeDate(rc.Purge.BornBefore, now)
		if err != nil {
			return query.Options{}, err
		}
		opts.Purge = &query.PurgeParams{BornOnOrBefore: cutoff}
	}
	return opts, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	if flagList {
		for _, r := range query.Catalog() {
			fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", r.Name, r.Title)
		}
		return nil
	}

	opts, err := reportOptions(cmd, config.Get().Report, time.Now())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	sum, err := query.Run(ctx, st, opts)
	if sum != nil {
		sum.PrintSummary(cmd.ErrOrStderr())
	}
	return err
}
