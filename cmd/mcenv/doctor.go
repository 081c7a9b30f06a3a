package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/archsim-tools/mcenv/internal/doctor"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the external build tools are available",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		report, healthy := doctor.Report(doctor.Check())
		fmt.Fprint(cmd.OutOrStdout(), report)
		if !healthy {
			return fmt.Errorf("some required tools are missing")
		}
		return nil
	},
}
