package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"productivity-hub/internal/ui"
	"productivity-hub/pkg/datemath"
	"productivity-hub/pkg/directive"
)

type rootOptions struct {
	now        func() time.Time
	configPath string
	timezone   string
	prefs      prefs
}

// calendar returns the clock for the --tz flag, falling back to the prefs timezone.
func (o *rootOptions) calendar() (*datemath.Calendar, error) {
	tz := o.timezone
	if tz == "" {
		tz = o.prefs.Timezone
	}
	return datemath.NewCalendar(tz, datemath.WithClock(o.now))
}

func newRootCmd(now func() time.Time) *cobra.Command {
	opts := &rootOptions{now: now}

	rootCmd := &cobra.Command{
		Use:           "quickadd",
		Short:         "Parse quick-add task text (P1/P2/P3 priorities, M/D due dates)",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, explicit := opts.configPath, cmd.Flags().Changed("config")
			if !explicit {
				path = defaultPrefsPath()
			}
			p, err := loadPrefs(path, explicit)
			if err != nil {
				return err
			}
			opts.prefs = p
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Preferences file (default ~/.config/quickadd/config.toml)")
	rootCmd.PersistentFlags().StringVar(&opts.timezone, "tz", "", "IANA timezone used for \"today\" (overrides prefs)")

	rootCmd.AddCommand(parseCmd(opts))
	rootCmd.AddCommand(interactiveCmd(opts))

	return rootCmd
}

func parseCmd(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Print the title, priority and due date parsed from text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clock, err := opts.calendar()
			if err != nil {
				return err
			}

			input := strings.Join(args, " ")
			format := opts.prefs.Output
			if asJSON {
				format = outputJSON
			}
			out := newParseOutput(input, directive.Parse(input, clock.Now()))
			return writeParseOutput(cmd.OutOrStdout(), format, out)
		},
	}

	cmd.Flags().BoolVarP(&asJSON, "json", "j", false, "Output as JSON")
	return cmd
}

func interactiveCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Type a task and watch it parse on every keystroke",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			clock, err := opts.calendar()
			if err != nil {
				return err
			}

			res, err := ui.RunQuickAdd(cmd.Context(), clock)
			if err != nil {
				return err
			}
			if !res.Submitted {
				cmd.PrintErrln("Cancelled")
				return nil
			}
			return writeParseOutput(cmd.OutOrStdout(), opts.prefs.Output, newParseOutput(res.Input, res.Parsed))
		},
	}
}
