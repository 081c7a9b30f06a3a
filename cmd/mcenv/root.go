package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/fang"
	ct "github.com/daviddengcn/go-colortext"
	"github.com/spf13/cobra"

	"github.com/archsim-tools/mcenv/internal/config"
	"github.com/archsim-tools/mcenv/internal/installer"
	"github.com/archsim-tools/mcenv/internal/logx"
	"github.com/archsim-tools/mcenv/internal/project"
)

// Version is the semantic version (set via -ldflags).
var Version = "dev"

var (
	flagJobs    int
	flagServer  string
	flagInclude string
	flagExclude string
	flagConfig  string
	flagVerbose bool

	rootCmd = &cobra.Command{
		Use:   "mcenv [flags] [PREFIX]",
		Short: "Install and update the simulator source tree",
		Long: `mcenv clones a fixed set of architecture-simulation projects
(cacti, mcpat, hotspot, dramsim2, dsent, gem5) under PREFIX, keeps them up to
date, and builds each one with its own toolchain. Projects are processed in
dependency order; a failing project is reported and skipped, never aborting
the rest of the batch.

Each project records its setup, pull, and build output in
<PREFIX>/<name>/install.log. After the batch, mcenv prints the PATH additions
to put in your shell profile.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runInstall,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.Flags().IntVarP(&flagJobs, "jobs", "j", 1,
		"build parallelism handed to make and scons")
	rootCmd.Flags().StringVarP(&flagServer, "server", "g", "",
		"remote location (trailing / means a path, trailing : a host)")
	rootCmd.Flags().StringVarP(&flagInclude, "projects", "p", "",
		"space-separated projects to install (default: all)")
	rootCmd.Flags().StringVarP(&flagExclude, "exclude", "P", "",
		"space-separated projects to skip")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"config file (default $XDG_CONFIG_HOME/mcenv/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"echo build output to the console and enable debug logging")

	rootCmd.AddCommand(doctorCmd)
}

// Execute runs the root command. Called by main.main.
func Execute() {
	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(Version)); err != nil {
		os.Exit(1)
	}
}

func runInstall(cmd *cobra.Command, args []string) error {
	logx.Setup(flagVerbose)

	cfg, err := config.Load(cmd.Flags(), flagConfig)
	if err != nil {
		return err
	}

	prefix := "."
	if len(args) == 1 {
		prefix = args[0]
	}
	abs, err := filepath.Abs(prefix)
	if err != nil {
		return fmt.Errorf("resolve prefix: %w", err)
	}
	cfg.Prefix = abs

	// Flag selections replace, not merge with, any config-file selection.
	if cmd.Flags().Changed("projects") {
		cfg.Include = strings.Fields(flagInclude)
	}
	if cmd.Flags().Changed("exclude") {
		cfg.Exclude = strings.Fields(flagExclude)
	}

	projects, err := project.Resolve(project.Defaults(), cfg.Include, cfg.Exclude)
	if err != nil {
		return err
	}

	ins, err := installer.New(cfg, projects)
	if err != nil {
		return err
	}

	results := ins.InstallAll()
	printSummary(results)

	if suggestion := ins.PathSuggestion(); suggestion != "" {
		fmt.Println()
		fmt.Println("Add this line to your shell profile to pick up the installed binaries:")
		fmt.Println("  " + suggestion)
	}

	// Per-project failures were reported above; they never fail the run.
	return nil
}

func printSummary(results []installer.Result) {
	fmt.Println()
	for _, res := range results {
		fmt.Printf("%-10s ", res.Project)
		if res.Err == nil {
			ct.ChangeColor(ct.Green, false, ct.None, false)
			fmt.Print("ok")
			ct.ResetColor()
			fmt.Println()
		} else {
			ct.ChangeColor(ct.Red, true, ct.None, false)
			fmt.Print("failed")
			ct.ResetColor()
			fmt.Printf("  see %s\n", res.LogPath)
		}
	}
}
