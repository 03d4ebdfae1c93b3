package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/sync/errgroup"

	"saldo/internal/cli"
	"saldo/internal/client"
	"saldo/internal/config"
	"saldo/internal/core"
	"saldo/internal/log"
)

const usage = `usage: saldo <command> [flags]

commands:
  list [--all]          show recent transactions
  summary               show income, expense, balance and categories
  add                   record a transaction
  register              create an account
  export [--transactions] [-o file]
                        write the summary (or every transaction) as CSV
  dashboard [--all]     list, summary and service health in one screen
`

type app struct {
	cfg    *config.Config
	logger *log.Logger
	client *client.Client
	render *cli.Renderer
	stdin  io.Reader
}

func main() {
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(os.Stderr)
	logger := cli.SetupLogger(cfg, os.Stderr, log.ComponentClient)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	a := &app{
		cfg:    cfg,
		logger: logger,
		client: client.New(cfg.APIBaseURL,
			client.WithLogger(logger),
			client.WithCacheTTL(cfg.CacheTTL),
			client.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		),
		render: &cli.Renderer{Out: os.Stdout, Color: isatty.IsTerminal(os.Stdout.Fd())},
		stdin:  os.Stdin,
	}

	if err := a.run(ctx, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "saldo:", client.UserMessage(err))
		logger.Debug("Command failed", log.FieldError, err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return flag.ErrHelp
	}

	cmd, args := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	switch cmd {
	case "list":
		all := fs.Bool("all", false, "show every transaction")
		if err := fs.Parse(args); err != nil {
			return err
		}
		txs, err := a.client.ListTransactions(ctx)
		if err != nil {
			return err
		}
		a.render.Transactions(txs, *all)
		return nil

	case "summary":
		if err := fs.Parse(args); err != nil {
			return err
		}
		sum, _, err := a.client.Summary(ctx)
		if err != nil {
			return err
		}
		a.render.Summary(sum)
		return nil

	case "add":
		if err := fs.Parse(args); err != nil {
			return err
		}
		p := cli.NewPrompter(a.stdin, a.render)
		p.Logger = a.logger
		return p.AddTransaction(ctx, a.client)

	case "register":
		if err := fs.Parse(args); err != nil {
			return err
		}
		return cli.NewPrompter(a.stdin, a.render).Register(ctx, a.client)

	case "export":
		txsOnly := fs.Bool("transactions", false, "export every transaction instead of the summary")
		out := fs.String("o", "", "output file (default stdout)")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return a.export(ctx, *out, *txsOnly)

	case "dashboard":
		all := fs.Bool("all", false, "show every transaction")
		if err := fs.Parse(args); err != nil {
			return err
		}
		return a.dashboard(ctx, *all)

	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return nil

	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) export(ctx context.Context, path string, txsOnly bool) (err error) {
	sum, txs, err := a.client.Summary(ctx)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if path != "" {
		f, cerr := os.Create(path)
		if cerr != nil {
			return fmt.Errorf("create %s: %w", path, cerr)
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if txsOnly {
		err = cli.WriteTransactionsCSV(w, txs)
	} else {
		err = cli.WriteSummaryCSV(w, sum)
	}
	if err != nil {
		return err
	}
	if path != "" {
		a.logger.Info("Report exported", "path", path, log.FieldCount, len(txs))
	}
	return nil
}

// dashboard fetches the list and probes the service health concurrently,
// then renders the home screen. A failing health probe is reported but
// does not hide data that was fetched.
func (a *app) dashboard(ctx context.Context, showAll bool) error {
	var (
		txs       []core.Transaction
		healthErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = a.client.Refresh(gctx)
		return err
	})
	g.Go(func() error {
		healthErr = a.client.Health(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	status := "ok"
	if healthErr != nil {
		status = client.UserMessage(healthErr)
	}
	a.render.Message(fmt.Sprintf("Service %s: %s", a.cfg.APIBaseURL, status))
	a.render.Summary(core.Aggregate(txs))
	a.render.Transactions(txs, showAll)
	return nil
}
