// Package cmd wires the launcher together: CLI flags, config loading, the
// bubbletea program, and the executor that handles the submitted selection.
package cmd

import (
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oakwood-commons/mx/internal/config"
	"github.com/oakwood-commons/mx/internal/engine"
	"github.com/oakwood-commons/mx/internal/keybind"
	"github.com/oakwood-commons/mx/internal/ui"
	"github.com/oakwood-commons/mx/pkg/logger"
)

// ErrNoSelection is returned when the user exits without submitting anything.
// main maps it to exit code 130 so scripts can tell "quit" from "picked".
var ErrNoSelection = errors.New("exited without a selection")

var (
	execFlag  bool
	execWith  string
	transient bool
	logLevel  int8
)

var rootCmd = &cobra.Command{
	Use:           "mx <config>",
	Short:         "A multi-page fuzzy launcher for your terminal",
	Long: `mx presents the menus declared in a config file, filters their entries as
you type, and hands the selected entry's command to an executor.

By default the selection is printed to stdout so mx composes in pipelines.
With --exec or --exec-with the selection is spawned instead, and mx stays
resident for further selections unless --transient is set.`,
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVarP(&execFlag, "exec", "x", false,
		"execute the selection, detached via nohup")
	rootCmd.Flags().StringVarP(&execWith, "exec-with", "w", "",
		"execute the selection with the provided command prefix")
	rootCmd.Flags().BoolVarP(&transient, "transient", "t", false,
		"exit immediately after executing instead of staying resident")
	rootCmd.Flags().Int8Var(&logLevel, "log-level", 0,
		"minimum log level (-1 debug, 0 info, 1 warn, 2 error)")
	rootCmd.MarkFlagsMutuallyExclusive("exec", "exec-with")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	log := logger.Get(logLevel)

	cfg, err := config.Load(args[0])
	if err != nil {
		return err
	}

	bindings := cfg.Keybinds
	if bindings == nil {
		bindings = keybind.DefaultBindings()
	}
	table, err := keybind.NewTable(bindings)
	if err != nil {
		return err
	}

	theme, err := ui.BuildTheme(cfg.Theme)
	if err != nil {
		return err
	}

	exec := newExecutor(execFlag, execWith, cmd.OutOrStdout())

	opts, cleanup := programOptions()
	defer cleanup()

	submitted := false
	for {
		eng := engine.New(cfg.Menus, table, engine.Options{
			HideUnmatched: cfg.Behavior.HideUnmatched,
		})
		model := ui.New(eng, theme, table)

		final, err := tea.NewProgram(model, opts...).Run()
		if err != nil {
			return fmt.Errorf("run interface: %w", err)
		}
		m, ok := final.(*ui.Model)
		if !ok {
			return fmt.Errorf("unexpected final model %T", final)
		}

		selection, ok := m.Selection()
		if !ok {
			// Exit pressed. A resident session that already executed
			// something still counts as success.
			if submitted {
				return nil
			}
			return ErrNoSelection
		}

		log.V(1).Info("selection submitted", "command", exec.commandLine(selection))
		if err := exec.Run(selection); err != nil {
			return fmt.Errorf("execute selection: %w", err)
		}
		submitted = true

		// Print mode must exit to emit its output; exec modes stay resident
		// unless --transient asked otherwise.
		if transient || !exec.spawns() {
			return nil
		}
	}
}

// programOptions keeps the interface on the real terminal when stdin or
// stdout is piped, so the selection can flow through a pipeline while the UI
// is drawn on /dev/tty.
func programOptions() ([]tea.ProgramOption, func()) {
	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))
	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if stdinTTY && stdoutTTY {
		return nil, func() {}
	}

	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		// No controlling terminal; fall back to the std streams.
		return nil, func() {}
	}

	var opts []tea.ProgramOption
	if !stdinTTY {
		opts = append(opts, tea.WithInput(tty))
	}
	if !stdoutTTY {
		opts = append(opts, tea.WithOutput(tty))
	}
	return opts, func() { _ = tty.Close() }
}
