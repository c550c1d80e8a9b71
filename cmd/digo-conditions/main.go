// Command digo-conditions evaluates the web-application condition against a
// YAML snapshot of a container context.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/centraunit/digo"
	"github.com/centraunit/digo/condition"
	"github.com/centraunit/digo/config"
)

// cliSource names the configuration unit evaluate registers.
const cliSource = "digo-conditions"

var errNoMatch = errors.New("condition did not match")

type options struct {
	verbose    bool
	configPath string
	web        bool
	notWeb     bool
	strict     bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "digo-conditions",
		Short: "Evaluate digo configuration conditions",
		Long: `digo-conditions loads a container context snapshot and reports
whether a configuration unit guarded by the web-application condition
would be activated at boot.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zapConfig := zap.NewProductionConfig()
			if opts.verbose {
				zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := zapConfig.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			digo.SetLogger(logger)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	evaluate := &cobra.Command{
		Use:   "evaluate",
		Short: "Evaluate the web-application condition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd.OutOrStdout(), opts)
		},
	}
	evaluate.Flags().StringVarP(&opts.configPath, "config", "c", "", "container context snapshot (YAML)")
	evaluate.Flags().BoolVar(&opts.web, "web", false, "the configuration unit requires a web application")
	evaluate.Flags().BoolVar(&opts.notWeb, "not-web", false, "the configuration unit requires a non-web application")
	evaluate.Flags().BoolVar(&opts.strict, "strict", false, "exit with an error when the condition does not match")
	evaluate.MarkFlagsMutuallyExclusive("web", "not-web")

	root.AddCommand(evaluate)
	return root
}

func runEvaluate(out io.Writer, opts *options) error {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	digo.Reset()
	defer digo.Reset()
	if err := cfg.Apply(nil); err != nil {
		return err
	}

	unit := digo.Configuration{Name: cliSource}
	switch {
	case opts.web:
		unit = digo.OnWebApplication(unit)
	case opts.notWeb:
		unit = digo.OnNotWebApplication(unit)
	default:
		unit.Conditions = []condition.Condition{condition.OnWebApplication{}}
	}
	if err := digo.RegisterConfiguration(unit); err != nil {
		return err
	}
	if err := digo.Boot(); err != nil {
		return err
	}

	report := digo.ConditionReport()
	for _, entry := range report.OutcomesFor(cliSource) {
		fmt.Fprintln(out, formatOutcome(entry.Outcome))
	}
	matched := report.FullMatch(cliSource)
	opts.logger.Info("web application condition evaluated",
		zap.String("config", opts.configPath),
		zap.Bool("match", matched))

	if opts.strict && !matched {
		return errNoMatch
	}
	return nil
}

func formatOutcome(o condition.Outcome) string {
	if o.IsMatch() {
		return "MATCH: " + o.Message
	}
	return "NO MATCH: " + o.Message
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
