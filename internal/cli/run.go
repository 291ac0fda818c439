// Package cli implements bulkctl, which drives the bulk endpoints the way a
// list view does: build a selection, confirm, dispatch.
package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	clientBulk "github.com/horilla-hris/hris-bulk-go/internal/client/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/client/prompt"
	bulkDomain "github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/logger"
)

const (
	ExitOK = iota
	ExitFailure
	ExitUsage
	// ExitNothingDone covers an empty selection and a declined confirmation.
	ExitNothingDone
)

const filterFormSelector = "#filterForm"

const usage = `usage: bulkctl [flags] <module> <entity> <action> [ids...]

actions: delete, approve, reject, archive, unarchive, export

flags:
`

// listPath is the list view a saved filter is keyed by.
func listPath(module, entity string) string {
	return "/" + module + "/" + entity + "-view"
}

// Run executes bulkctl with args (without the program name) and returns the exit code.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("bulkctl", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}

	configPath := flags.String("config", "", "config file (default "+DefaultConfigPath()+")")
	filterJSON := flags.String("filter", "", "select-all filter as a JSON object; saved for the next -all")
	selectAll := flags.Bool("all", false, "select every row matching the filter (or the saved filter)")
	idsJSON := flags.String("ids", "", "selection as a JSON array, as carried by data-ids")
	yes := flags.Bool("yes", false, "skip the confirmation dialog")
	outDir := flags.String("out", "", "directory exports are written to")

	if err := flags.Parse(args); err != nil {
		return ExitUsage
	}
	if flags.NArg() < 3 {
		flags.Usage()
		return ExitUsage
	}
	module, entity, actionName := flags.Arg(0), flags.Arg(1), flags.Arg(2)

	key, err := bulkDomain.ParseActionKey(actionName)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	action, err := clientBulk.NewAction(module, entity, key)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, "config:", err)
		return ExitUsage
	}
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, Out: stderr})

	timeout, _ := cfg.TimeoutDuration()
	client, err := clientBulk.NewClient(clientBulk.ClientOptions{
		BaseURL: cfg.Server,
		Token:   cfg.Token,
		Timeout: timeout,
		Logger:  &log,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	store := clientBulk.NewStore(module, entity)
	if *idsJSON != "" {
		if err := store.Restore(*idsJSON); err != nil {
			log.Warn().Err(err).Msg("ignoring malformed ids")
		}
	}
	for _, id := range flags.Args()[3:] {
		store.Toggle(id, true)
	}

	filters := clientBulk.NewFilterStore(cfg.StateDir)
	var filter map[string]string
	if *filterJSON != "" {
		if err := json.Unmarshal([]byte(*filterJSON), &filter); err != nil {
			fmt.Fprintln(stderr, "invalid -filter:", err)
			return ExitUsage
		}
		if err := filters.Save(clientBulk.SavedFilter{
			CurrentPath:  listPath(module, entity),
			FormSelector: filterFormSelector,
			FilterData:   filter,
		}); err != nil {
			log.Warn().Err(err).Msg("could not save filter")
		}
	}

	if *selectAll {
		if filter == nil {
			saved, ok, err := filters.For(listPath(module, entity))
			if err != nil {
				log.Warn().Err(err).Msg("could not read saved filter")
			}
			if ok {
				filter = saved
				log.Info().Interface("filter", filter).Msg("re-applying saved filter")
			}
		}
		n, err := store.SelectAll(ctx, client, filter)
		if err != nil {
			fmt.Fprintln(stderr, "select all:", err)
			return ExitFailure
		}
		log.Debug().Int("selected", n).Msg("select all")
	}

	opts := []clientBulk.DispatcherOption{clientBulk.WithLogger(&log)}
	if code := cfg.LanguageCode(); code != "" {
		opts = append(opts, clientBulk.WithLanguage(code))
	}
	exportDir := cfg.ExportDir
	if *outDir != "" {
		exportDir = *outDir
	}
	if exportDir != "" {
		opts = append(opts, clientBulk.WithExportDir(exportDir))
	}

	var confirmer clientBulk.Confirmer = prompt.New(stdin, stdout)
	if *yes {
		confirmer = prompt.AutoConfirm{Out: stdout}
	}
	dispatcher := clientBulk.NewDispatcher(client, confirmer, prompt.NewNotifier(stdout), opts...)

	outcome, err := dispatcher.Dispatch(ctx, action, store.State())
	log.Debug().Str("state", string(outcome.State)).Strs("trace", traceStrings(outcome.Trace)).Msg("dispatch finished")
	if err != nil {
		return ExitFailure
	}
	switch outcome.State {
	case clientBulk.StateReloaded:
		if outcome.File != "" {
			fmt.Fprintln(stdout, outcome.File)
		}
		return ExitOK
	default:
		return ExitNothingDone
	}
}

func traceStrings(trace []clientBulk.State) []string {
	out := make([]string, len(trace))
	for i, s := range trace {
		out[i] = string(s)
	}
	return out
}
