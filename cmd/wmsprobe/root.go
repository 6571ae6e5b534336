package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/wmsprobe/internal/config"
	"github.com/crimson-sun/wmsprobe/internal/logging"
	"github.com/crimson-sun/wmsprobe/internal/output"
	"github.com/crimson-sun/wmsprobe/internal/output/file"
	"github.com/crimson-sun/wmsprobe/internal/output/multi"
	"github.com/crimson-sun/wmsprobe/internal/output/stdout"
	"github.com/crimson-sun/wmsprobe/internal/output/webhook"
	"github.com/crimson-sun/wmsprobe/internal/wms"
)

// globalFlags override the environment configuration.
type globalFlags struct {
	endpoint string
	dataset  string
	logLevel string
	outPath  string
	tee      bool
	postURL  string
}

// app is the state shared by subcommands once flags are parsed.
type app struct {
	cfg    config.Config
	client *wms.Client
	out    output.Output
}

// run executes the command line in args and closes the outputs whether or
// not the command succeeded.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	root, a := newRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err := root.ExecuteContext(ctx)
	return errors.Join(err, a.close())
}

func newRootCmd() (*cobra.Command, *app) {
	var flags globalFlags
	a := &app{}

	root := &cobra.Command{
		Use:   "wmsprobe",
		Short: "Exercise a WMS server's layer menu and SLD GetMap requests",
		Long: `wmsprobe talks to a WMS map server the way its demo page does.

It renders the layer menu as nested HTML, fetches documents, builds GetMap
URLs from SLD text, loads sample SLD files, and can serve the demo page.

Configuration comes from WMSPROBE_* environment variables; flags override them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd, flags)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.endpoint, "endpoint", "", "WMS endpoint URL (env WMSPROBE_ENDPOINT)")
	pf.StringVar(&flags.dataset, "dataset", "", "restrict the menu to one dataset (env WMSPROBE_DATASET)")
	pf.StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (env WMSPROBE_LOG_LEVEL)")
	pf.StringVarP(&flags.outPath, "out", "o", "", "write results to this file instead of stdout")
	pf.BoolVar(&flags.tee, "tee", false, "with --out, also write results to stdout")
	pf.StringVar(&flags.postURL, "post", "", "also POST each result to this URL")

	root.AddCommand(
		newMenuCmd(a),
		newGetCmd(a),
		newGetMapCmd(a),
		newSampleCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root, a
}

// close flushes and closes the outputs opened by setup, if any.
func (a *app) close() error {
	if a.out == nil {
		return nil
	}
	out := a.out
	a.out = nil
	return out.Close()
}

func (a *app) setup(cmd *cobra.Command, flags globalFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if flags.endpoint != "" {
		cfg.WMS.Endpoint = flags.endpoint
	}
	if flags.dataset != "" {
		cfg.WMS.Dataset = flags.dataset
	}
	if flags.logLevel != "" {
		cfg.Log.Level = flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.Init(cfg.Log.JSON, logging.ParseLevel(cfg.Log.Level))

	a.cfg = cfg
	a.client = wms.New(cfg.WMS.Endpoint,
		wms.WithTimeout(cfg.WMS.Timeout),
		wms.WithUserAgent("wmsprobe/"+config.Version),
	)
	a.out, err = openOutput(cmd.OutOrStdout(), flags)
	return err
}

// openOutput picks where results go: stdout by default, a file with --out
// (plus stdout with --tee), and a webhook with --post.
func openOutput(w io.Writer, flags globalFlags) (output.Output, error) {
	console := stdout.NewWriter(w)
	var outs []output.Output
	if flags.outPath == "" || flags.tee {
		outs = append(outs, console)
	}
	if flags.outPath != "" {
		// Opened on first write so a failing command leaves the file alone.
		f, err := file.New(flags.outPath, file.WithLazyOpen())
		if err != nil {
			return nil, err
		}
		outs = append([]output.Output{f}, outs...)
	}
	if flags.postURL != "" {
		outs = append(outs, webhook.New(flags.postURL))
	}
	if len(outs) == 1 {
		return outs[0], nil
	}
	return multi.New(outs...), nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the wmsprobe version",
		Args:  cobra.NoArgs,
		// Skip configuration and output setup.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "wmsprobe", config.Version)
			return err
		},
	}
}
