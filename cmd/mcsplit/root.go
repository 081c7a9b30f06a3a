package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/archsim-tools/mcenv/internal/logx"
	"github.com/archsim-tools/mcenv/internal/splitter"
)

// Version is the semantic version (set via -ldflags).
var Version = "dev"

var (
	flagVerbose bool

	rootCmd = &cobra.Command{
		Use:   "mcsplit [TEMPLATE]",
		Short: "Split a McPAT report stream into numbered files",
		Long: `mcsplit reads simulator output on stdin and starts a new output file
every time a McPAT report header line appears. Files are created in the
current directory and named by expanding TEMPLATE (default "` +
			splitter.DefaultTemplate + `"): %d is the 1-based report counter,
%% a literal percent sign. Pre-existing files are overwritten.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runSplit,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable debug logging")
}

// Execute runs the root command. Called by main.main.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(Version)); err != nil {
		os.Exit(1)
	}
}

func runSplit(cmd *cobra.Command, args []string) error {
	logx.Setup(flagVerbose)

	template := splitter.DefaultTemplate
	if len(args) == 1 {
		template = args[0]
	}

	s := &splitter.Splitter{Template: template}
	n, err := s.Split(cmd.InOrStdin())
	if err != nil {
		return err
	}
	log.Info().Msgf("wrote %d report file(s)", n)
	return nil
}
