package main

import (
	"github.com/spf13/cobra"

	"github.com/vaibhaw-/medsched/internal/loadr"
	"github.com/vaibhaw-/medsched/internal/medsched/config"
)

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "Fill the clinic database with synthetic data",
	Long: `Generate specializations, places, medicines, patients, doctors, the slot
schedule, doctor assignments, visits and appointments, in that order.
Counts come from the fixtures section of the config; flags override them.`,
	RunE: runFixtures,
}

var (
	flagSeed           int64
	flagPatients       int
	flagDoctors        int
	flagScheduleDays   int
	flagAssignmentDays int
	flagVisits         int
	flagNoSchema       bool
)

func init() {
	fixturesCmd.Flags().Int64Var(&flagSeed, "seed", 0, "random seed, 0 for a random run")
	fixturesCmd.Flags().IntVar(&flagPatients, "patients", 0, "number of patients")
	fixturesCmd.Flags().IntVar(&flagDoctors, "doctors", 0, "number of doctors")
	fixturesCmd.Flags().IntVar(&flagScheduleDays, "schedule-days", 0, "days of hourly slots, starting today")
	fixturesCmd.Flags().IntVar(&flagAssignmentDays, "assignment-days", 0, "days of doctor assignments, starting today")
	fixturesCmd.Flags().IntVar(&flagVisits, "visits", 0, "number of patients that get a visit")
	fixturesCmd.Flags().BoolVar(&flagNoSchema, "no-schema", false, "do not create missing tables first")
}

// planFromConfig builds a generator plan from config, with changed flags on top.
func planFromConfig(cmd *cobra.Command, fc config.FixturesCfg) loadr.Plan {
	plan := loadr.Plan{
		Seed:            fc.Seed,
		Specializations: fc.Specializations,
		Places:          fc.Places,
		Medicines:       fc.Medicines,
		Patients:        fc.Patients,
		Doctors:         fc.Doctors,
		ScheduleDays:    fc.ScheduleDays,
		AssignmentDays:  fc.AssignmentDays,
		Visits:          fc.Visits,
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		plan.Seed = flagSeed
	}
	if flags.Changed("patients") {
		plan.Patients = flagPatients
	}
	if flags.Changed("doctors") {
		plan.Doctors = flagDoctors
	}
	if flags.Changed("schedule-days") {
		plan.ScheduleDays = flagScheduleDays
	}
	if flags.Changed("assignment-days") {
		plan.AssignmentDays = flagAssignmentDays
	}
	if flags.Changed("visits") {
		plan.Visits = flagVisits
	}
	return plan
}

func runFixtures(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	plan := planFromConfig(cmd, config.Get().Fixtures)
	if err := plan.Validate(); err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if !flagNoSchema {
		if err := st.EnsureSchema(ctx); err != nil {
			return err
		}
	}

	gen := loadr.NewGenerator(st, loadr.NewFakeSynthesizer(uint64(plan.Seed)))
	sum, err := gen.Run(ctx, plan)
	if sum != nil {
		sum.PrintSummary(cmd.ErrOrStderr())
	}
	return err
}
