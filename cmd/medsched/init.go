package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaibhaw-/medsched/internal/medsched/logger"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the clinic schema",
	RunE:  runInit,
}

var flagReset bool

func init() {
	initCmd.Flags().BoolVar(&flagReset, "reset", false, "drop all tables before creating them")
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	st, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	if flagReset {
		if err := st.DropSchema(ctx); err != nil {
			return err
		}
	}
	if err := st.EnsureSchema(ctx); err != nil {
		return err
	}

	logger.L().Infow("Schema ready", "dialect", st.Dialect(), "reset", flagReset)
	fmt.Fprintln(cmd.OutOrStdout(), "Schema ready")
	return nil
}
