// cmd/papub/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/infinisean/papub/internal/capture"
	"github.com/infinisean/papub/internal/check"
	"github.com/infinisean/papub/internal/compare"
	"github.com/infinisean/papub/internal/config"
	"github.com/infinisean/papub/internal/logger"
	"github.com/infinisean/papub/internal/report"
	"github.com/infinisean/papub/internal/watch"
)

// errChecksFailed makes the process exit 1 without printing anything more
var errChecksFailed = errors.New("one or more comparisons failed")

// app holds what every subcommand needs once flags and config are resolved
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	registry *compare.Registry
	runner   *check.Runner
	out      report.Renderer
}

type flags struct {
	configFile  string
	outputDir   string
	logLevel    string
	logFormat   string
	output      string
	failOnError bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var (
		f flags
		a app
	)

	rootCmd := &cobra.Command{
		Use:           "papub",
		Short:         "Compare pre/post-change firewall captures",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(f, stdout, stderr)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&f.configFile, "config", "c", "", "config file (YAML)")
	pf.StringVar(&f.outputDir, "output-dir", "", "capture root directory (overrides config)")
	pf.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&f.logFormat, "log-format", "", "log format: auto, terminal, text, json")
	pf.StringVarP(&f.output, "output", "o", "text", "output format: text, json")

	hostsCmd := &cobra.Command{
		Use:   "hosts",
		Short: "List hosts with captures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hosts, err := capture.Hosts(a.cfg.OutputDir)
			if err != nil {
				return fmt.Errorf("list hosts: %w", err)
			}
			if len(hosts) == 0 {
				a.log.Warn("no hosts found", "dir", a.cfg.OutputDir)
			}
			for _, h := range hosts {
				fmt.Fprintln(stdout, h)
			}
			return nil
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check <host>",
		Short: "Compare the newest pre/post captures of a host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := a.runner.CheckHost(a.cfg.OutputDir, args[0])
			if err != nil {
				return err
			}
			if err := a.out.Report(rep); err != nil {
				return err
			}
			if f.failOnError && rep.Summary.Failed() {
				return errChecksFailed
			}
			return nil
		},
	}
	checkCmd.Flags().BoolVar(&f.failOnError, "fail-on-error", true, "exit 1 when any comparison is ERROR")

	compareCmd := &cobra.Command{
		Use:   "compare <command> <pre-file> <post-file>",
		Short: "Compare two explicit capture files",
		Example: `  papub compare show_arp_all arp-pre.txt arp-post.txt
  papub compare "show session all" pre.txt post.txt`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := capture.CommandID(args[0])
			c, ok := a.registry.Lookup(id)
			if !ok {
				return fmt.Errorf("unsupported command %q (supported: %s)", args[0], strings.Join(a.registry.Commands(), ", "))
			}
			return a.out.Result(id, compare.CompareFiles(c, args[1], args[2]))
		},
	}

	commandsCmd := &cobra.Command{
		Use:   "commands",
		Short: "List supported command identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range a.registry.Commands() {
				fmt.Fprintf(stdout, "%-36s %s\n", id, a.registry.Name(id))
			}
			return nil
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch <host>",
		Short: "Re-check a host whenever new captures land",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := watch.New(a.runner, a.log, a.cfg.OutputDir, args[0], watch.Options{
				Debounce:  a.cfg.Watch.Debounce,
				StateFile: a.cfg.Watch.StateFile,
			}, a.out.Report)
			return w.Run(ctx)
		},
	}

	rootCmd.AddCommand(hostsCmd, checkCmd, compareCmd, commandsCmd, watchCmd)
	return rootCmd
}

// setup loads config and builds the logger, registry, runner and renderer.
// Flags win over the config file and environment.
func (a *app) setup(f flags, stdout, stderr io.Writer) error {
	cfg, err := config.Load(f.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if f.outputDir != "" {
		cfg.OutputDir = f.outputDir
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	if f.logFormat != "" {
		cfg.LogFormat = f.logFormat
	}

	out, err := report.New(f.output, stdout)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.log = logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Writer: stderr})
	a.registry = compare.DefaultRegistry(cfg.Thresholds)
	a.runner = check.New(a.registry, a.log, cfg.StaleAfter)
	a.out = out
	return nil
}

func run(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintln(stderr, err)
		}
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
