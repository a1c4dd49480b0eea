package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/goserg/jassrating/internal/audit"
	"github.com/goserg/jassrating/internal/cache/mem"
	"github.com/goserg/jassrating/internal/config"
	"github.com/goserg/jassrating/internal/logger"
	"github.com/goserg/jassrating/internal/metrics"
	"github.com/goserg/jassrating/internal/rebuild"
	"github.com/goserg/jassrating/internal/service"
	"github.com/goserg/jassrating/internal/storage/sqlite"
	"github.com/goserg/jassrating/internal/web"
	"github.com/sirupsen/logrus"
)

const usage = `usage: jassrating [-config file] <command> [arguments]

commands:
  rebuild <scope|all> [--dry-run|--confirm]   replay a scope and replace its derived state
  audit <scope> [--player <id|name>]          cross-check ledger, snapshots and current ratings
  players <scope>                             list current standings of a scope
  import <file.json>                          import players, sessions and tournaments
  export <scope> <file.json|->                export the raw records of a scope
  serve                                       run the HTTP API
`

var (
	errUsage      = errors.New("invalid usage")
	errDivergence = errors.New("audit found divergences")
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Println(err.Error())
		if errors.Is(err, errUsage) {
			fmt.Print(usage)
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type app struct {
	cfg     config.Config
	log     *logrus.Logger
	service *service.Service
	metrics *metrics.Manager
	out     io.Writer
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("jassrating", flag.ContinueOnError)
	configPath := fs.String("config", "configs/engine.toml", "config file")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.New(*configPath)
	if err != nil {
		return err
	}
	l, err := logger.New(cfg.Log.Level)
	if err != nil {
		return err
	}
	calc, err := cfg.Calculator()
	if err != nil {
		return err
	}

	store, err := sqlite.New(l, cfg.Storage.SqliteFile)
	if err != nil {
		return err
	}
	defer store.Close()

	m := metrics.NewManager()
	cache := mem.New()
	orchestrator := rebuild.New(rebuild.Config{
		Calculator: calc,
		Baseline:   cfg.Rating.Baseline,
		BatchSize:  cfg.Rebuild.BatchSize,
	}, store, store, store, store, l, m)
	auditor := audit.New(store, store, cache, cfg.Rating.Baseline, l, m)

	a := app{
		cfg:     cfg,
		log:     l,
		service: service.New(store, orchestrator, auditor, cache, l),
		metrics: m,
		out:     out,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "rebuild":
		return a.rebuild(ctx, cmdArgs)
	case "audit":
		return a.audit(ctx, cmdArgs)
	case "players":
		return a.players(ctx, cmdArgs)
	case "import":
		return a.importRecords(ctx, cmdArgs)
	case "export":
		return a.exportRecords(ctx, cmdArgs)
	case "serve":
		return a.serve(ctx)
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

// parseArgs parses flags that may follow positional arguments.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %v", errUsage, err)
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}

func (a app) rebuild(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("rebuild", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", false, "report without writing")
	confirm := fs.Bool("confirm", false, "replace the stored derived state")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: rebuild needs exactly one scope", errUsage)
	}
	if *dryRun && *confirm {
		return fmt.Errorf("%w: --dry-run and --confirm are mutually exclusive", errUsage)
	}

	reports, err := a.service.Rebuild(ctx, positional[0], rebuild.Options{DryRun: *dryRun, Confirm: *confirm})
	for _, r := range reports {
		if r.Scope != "" {
			printRebuild(a.out, r)
		}
	}
	return err
}

func printRebuild(out io.Writer, r rebuild.Report) {
	mode := "rebuilt"
	if r.DryRun {
		mode = "dry run"
	}
	fmt.Fprintf(out, "%s %s: %d parents, %d events, %d ledger entries, %d players (%s)\n",
		mode, r.Scope, r.Parents, r.Events, r.Entries, len(r.Ratings), r.Duration.Round(time.Millisecond))
	if r.RunID != uuid.Nil {
		fmt.Fprintf(out, "  run %s\n", r.RunID)
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(out, "  skipped %s #%d (%s): %s\n", s.Parent, s.Position, s.Reason, s.Detail)
	}
	if r.DryRun {
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		for _, st := range r.Ratings {
			fmt.Fprintf(w, "  %s\t%.3f\t%d\n", st.PlayerID, st.Rating, st.GamesPlayed)
		}
		w.Flush()
		if len(r.Ratings) > 0 {
			fmt.Fprintln(out, "  nothing written, pass --confirm to replace the stored state")
		}
	}
}

func (a app) audit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("audit", flag.ContinueOnError)
	player := fs.String("player", "", "player id or name")
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: audit needs exactly one scope", errUsage)
	}

	var playerID string
	if *player != "" {
		playerID, err = a.service.ResolvePlayer(ctx, *player)
		if err != nil {
			return err
		}
	}
	reports, err := a.service.Audit(ctx, positional[0], playerID)
	if err != nil {
		return err
	}
	divergent := 0
	for _, r := range reports {
		printAudit(a.out, r)
		if !r.Consistent() {
			divergent++
		}
	}
	fmt.Fprintf(a.out, "%d players audited, %d not consistent\n", len(reports), divergent)
	if divergent > 0 {
		return errDivergence
	}
	return nil
}

func printAudit(out io.Writer, r audit.Report) {
	name := r.PlayerID
	if r.PlayerName != "" && r.PlayerName != r.PlayerID {
		name = fmt.Sprintf("%s (%s)", r.PlayerName, r.PlayerID)
	}
	fmt.Fprintf(out, "%s in %s: %s, %d ledger entries, %d snapshots\n", name, r.Scope, r.Status, r.Entries, r.Snapshots)
	for _, f := range r.Findings {
		fmt.Fprintf(out, "  %s: %s\n", f.Kind, f.Detail)
	}
	if r.Remedy != audit.RemedyNone {
		fmt.Fprintf(out, "  remedy: %s\n", r.Remedy)
	}
}

func (a app) players(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: players needs exactly one scope", errUsage)
	}
	standings, err := a.service.Standings(ctx, args[0])
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "rank\tplayer\tid\trating\tgames")
	for _, s := range standings {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.3f\t%d\n", s.Rank, s.Player.Name, s.Player.ID, s.Rating, s.GamesPlayed)
	}
	return w.Flush()
}

func (a app) importRecords(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: import needs a file", errUsage)
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	return a.service.Import(ctx, data)
}

func (a app) exportRecords(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: export needs a scope and a file", errUsage)
	}
	data, err := a.service.Export(ctx, args[0])
	if err != nil {
		return err
	}
	if args[1] == "-" {
		_, err = a.out.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(args[1], data, 0o644)
}

func (a app) serve(ctx context.Context) error {
	server := web.New(a.service, a.cfg.Server, a.log, a.metrics)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Serve()
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.log.Info("shutting down")
		return server.Shutdown()
	}
}
