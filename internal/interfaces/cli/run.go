package cli

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/chem2smiles/internal/batch"
	"github.com/turtacn/chem2smiles/internal/governor"
	"github.com/turtacn/chem2smiles/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/chem2smiles/internal/infrastructure/monitoring/metrics"
	"github.com/turtacn/chem2smiles/internal/render"
	"github.com/turtacn/chem2smiles/internal/resolver"
	"github.com/turtacn/chem2smiles/internal/sink"
	"github.com/turtacn/chem2smiles/pkg/errors"
)

// runConvert is the whole tool: read names, resolve them through the
// governed pipeline, then deliver results to the terminal or a file.
func runConvert(cmd *cobra.Command, args []string, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg, opts)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "configuration invalid after flag overrides")
	}

	log, err := initLogger(cfg)
	if err != nil {
		return err
	}

	m := metrics.New()
	if cfg.Metrics.Listen != "" {
		shutdown := m.Serve(cfg.Metrics.Listen, log)
		defer shutdown(context.Background())
	}

	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	names, single, err := readInput(arg, opts.batch, cmd.InOrStdin())
	if err != nil {
		return err
	}

	svc := resolver.NewPubChemService(cfg.Resolver)
	res := resolver.New(svc, cfg.Resolver.Timeout, log, m)
	gov := governor.New(res, cfg.Batch.Workers, cfg.Batch.MinInterval)
	orch := batch.New(gov, log, m)

	outcome, err := orch.Run(cmd.Context(), names)
	if err != nil {
		return err
	}

	out := newPrinter(cmd.OutOrStdout(), opts.noColor)

	var renderer render.Renderer
	if opts.image != "" || opts.imageDir != "" {
		renderer = render.NewPubChemRenderer(cfg.Resolver, cfg.Image.Size)
	}

	if single {
		if err := deliverSingle(cmd.Context(), outcome.Results[0], opts, out, renderer, log, m); err != nil {
			return err
		}
		return nil
	}

	renderImages(cmd.Context(), outcome.Results, opts.imageDir, out, renderer, log, m)

	if opts.output != "" {
		format := sink.DetectFormat(opts.output, cfg.Output.Format)
		if err := sink.Write(outcome.Results, opts.output, format); err != nil {
			return err
		}
		out.successf("Results written to %s", opts.output)
	} else {
		out.resultTable(outcome.Results)
	}

	out.summary(outcome.Summary)
	return nil
}

// readInput turns the positional argument into the ordered name list.
// single is true only for a literal one-name invocation.
func readInput(arg string, batchMode bool, stdin io.Reader) (names []string, single bool, err error) {
	switch {
	case arg == "" || arg == "-":
		names, err = readNames(stdin)
		if err != nil {
			return nil, false, errors.Wrap(err, errors.ErrCodeInputUnreadable, "failed to read names from stdin")
		}
		return names, false, nil

	case batchMode:
		f, err := os.Open(arg)
		if err != nil {
			return nil, false, errors.Wrapf(err, errors.ErrCodeInputUnreadable, "cannot open name list %q", arg)
		}
		defer f.Close()
		names, err = readNames(f)
		if err != nil {
			return nil, false, errors.Wrapf(err, errors.ErrCodeInputUnreadable, "failed to read name list %q", arg)
		}
		return names, false, nil

	default:
		return []string{arg}, true, nil
	}
}

// readNames scans one name per line, trimming whitespace and skipping
// blank lines.
func readNames(r io.Reader) ([]string, error) {
	names := []string{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// deliverSingle reports a one-name result: bare SMILES on stdout or in the
// output file, plus the optional structure image.  An unresolved name is
// reported but is not a process failure.
func deliverSingle(ctx context.Context, res resolver.Result, opts *rootOptions, out *printer, renderer render.Renderer, log logging.Logger, m *metrics.Metrics) error {
	if !res.Resolved() {
		out.failf("Could not convert %q: %s", res.Name, res.Reason)
		return nil
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(res.SMILES+"\n"), 0o644); err != nil {
			return errors.Wrapf(err, errors.ErrCodeOutputUnwritable, "cannot write SMILES to %q", opts.output)
		}
		out.successf("SMILES written to %s", opts.output)
	} else {
		out.println(res.SMILES)
	}

	if opts.image != "" && renderer != nil {
		if err := renderer.Render(ctx, res.SMILES, opts.image); err != nil {
			m.ObserveRender(metrics.RenderFailed)
			log.Warn("image render failed",
				logging.String("name", res.Name),
				logging.Err(err))
			out.failf("Could not render %q: %v", res.Name, err)
		} else {
			m.ObserveRender(metrics.RenderOK)
			out.successf("Molecular structure saved to %s", opts.image)
		}
	}
	return nil
}

// renderImages renders one depiction per resolved entry into dir.  Render
// failures are per-name: reported, counted, and never fatal.
func renderImages(ctx context.Context, results []resolver.Result, dir string, out *printer, renderer render.Renderer, log logging.Logger, m *metrics.Metrics) {
	if dir == "" || renderer == nil {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("cannot create image directory", logging.String("dir", dir), logging.Err(err))
		out.failf("Could not create image directory %q: %v", dir, err)
		return
	}

	for i, res := range results {
		if !res.Resolved() {
			continue
		}
		path := imagePath(dir, i, res.Name)
		if err := renderer.Render(ctx, res.SMILES, path); err != nil {
			m.ObserveRender(metrics.RenderFailed)
			log.Warn("image render failed",
				logging.String("name", res.Name),
				logging.Err(err))
			out.failf("Could not render %q: %v", res.Name, err)
			continue
		}
		m.ObserveRender(metrics.RenderOK)
	}
}
