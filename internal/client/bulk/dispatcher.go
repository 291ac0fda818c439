package bulk

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	bulkDomain "github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/i18n"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/logger"
)

// State is a step of one dispatch.
type State string

const (
	StateIdle       State = "idle"
	StateWarned     State = "warned"
	StateConfirming State = "confirming"
	StateAborted    State = "aborted"
	StateRequesting State = "requesting"
	StateReloaded   State = "reloaded"
)

// Dialog is the confirmation shown before a request is sent.
type Dialog struct {
	Text         string
	Severity     bulkDomain.Severity
	ConfirmLabel string
	CancelLabel  string
	Count        int
	// Badge is the localized "N selected" line.
	Badge string
}

type Confirmer interface {
	Confirm(ctx context.Context, dialog Dialog) (bool, error)
}

type Level string

const (
	LevelWarning Level = "warning"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notice is a toast shown after a dispatch ends.
type Notice struct {
	Level Level
	Text  string
}

type Notifier interface {
	Notify(notice Notice)
}

// Outcome reports where a dispatch ended and how it got there.
type Outcome struct {
	State     State
	Trace     []State
	Language  i18n.Code
	Requested int
	Result    bulkDomain.BulkResult
	// File is the path an export was written to.
	File    string
	Message string
}

func (o *Outcome) move(to State) {
	o.State = to
	o.Trace = append(o.Trace, to)
}

type Dispatcher struct {
	transport Transport
	confirmer Confirmer
	notifier  Notifier
	log       *logger.Logger
	exportDir string

	mu       sync.Mutex
	language i18n.Code
}

type DispatcherOption func(*Dispatcher)

// WithLanguage seeds the language cache, skipping the lookup request.
func WithLanguage(code i18n.Code) DispatcherOption {
	return func(d *Dispatcher) {
		if i18n.IsSupported(code) {
			d.language = code
		}
	}
}

func WithExportDir(dir string) DispatcherOption {
	return func(d *Dispatcher) { d.exportDir = dir }
}

func WithLogger(l *logger.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

func NewDispatcher(transport Transport, confirmer Confirmer, notifier Notifier, opts ...DispatcherOption) *Dispatcher {
	nop := logger.Nop()
	d := &Dispatcher{
		transport: transport,
		confirmer: confirmer,
		notifier:  notifier,
		log:       &nop,
		exportDir: ".",
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Language returns the cached language code, asking the server once. A failed
// lookup yields English and is retried on the next dispatch.
func (d *Dispatcher) Language(ctx context.Context) i18n.Code {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.language != "" {
		return d.language
	}
	code, err := d.transport.LanguageCode(ctx)
	if err != nil {
		d.log.Warn().Err(err).Msg("language lookup failed, using English")
		return i18n.Default
	}
	d.language = i18n.OrDefault(string(code))
	return d.language
}

// Dispatch runs one bulk action over the selection: warn when it is empty,
// confirm, send exactly one request, then report. The selection is cleared
// after a successful request.
func (d *Dispatcher) Dispatch(ctx context.Context, action Action, sel *selection.State) (Outcome, error) {
	out := Outcome{State: StateIdle, Trace: []State{StateIdle}}
	out.Language = d.Language(ctx)
	code := out.Language

	var ids []string
	if sel != nil {
		ids = sel.Selected.IDs()
	}
	out.Requested = len(ids)

	if len(ids) == 0 {
		out.Message = i18n.Lookup(i18n.NoRows, code)
		d.notifier.Notify(Notice{Level: LevelWarning, Text: out.Message})
		out.move(StateWarned)
		return out, nil
	}

	out.move(StateConfirming)
	ok, err := d.confirmer.Confirm(ctx, Dialog{
		Text:         i18n.Lookup(action.Confirm, code),
		Severity:     action.Severity(),
		ConfirmLabel: i18n.Lookup(i18n.ConfirmButton, code),
		CancelLabel:  i18n.Lookup(i18n.CancelButton, code),
		Count:        len(ids),
		Badge:        i18n.SelectedBadge.Format(code, len(ids)),
	})
	if err != nil || !ok {
		out.move(StateAborted)
		if err != nil && !errors.Is(err, context.Canceled) {
			return out, fmt.Errorf("confirmation failed: %w", err)
		}
		return out, nil
	}

	out.move(StateRequesting)
	if err := d.request(ctx, action, ids, &out); err != nil {
		d.log.Error().Err(err).Str("view", action.View()).Str("action", string(action.Key)).Int("requested", len(ids)).Msg("bulk action failed")
		out.Message = action.failure(code, err)
		d.notifier.Notify(Notice{Level: LevelError, Text: out.Message})
		out.move(StateIdle)
		return out, err
	}

	d.notifier.Notify(Notice{Level: LevelSuccess, Text: out.Message})
	sel.Selected.Clear()
	sel.Clicked = selection.FlagAbsent
	out.move(StateReloaded)
	return out, nil
}

func (a Action) failure(code i18n.Code, err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.Message != "" {
		return i18n.ActionFailed.Format(code, statusErr.Message)
	}
	return i18n.ActionFailed.Format(code, err.Error())
}

func (d *Dispatcher) request(ctx context.Context, action Action, ids []string, out *Outcome) error {
	if action.Key == bulkDomain.ActionExport {
		download, err := d.transport.Export(ctx, action.Path(), ids)
		if err != nil {
			return err
		}
		file, err := d.save(download)
		if err != nil {
			return err
		}
		out.File = file
		out.Message = action.Success.Format(out.Language, filepath.Base(file))
		return nil
	}

	reply, err := d.transport.PostIDs(ctx, action.Path(), action.Query(), ids)
	if err != nil {
		return err
	}
	out.Result = reply.Result
	out.Message = action.Success.Format(out.Language, reply.Result.Affected)
	return nil
}

func (d *Dispatcher) save(download Download) (string, error) {
	if err := os.MkdirAll(d.exportDir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	name := filepath.Base(download.Filename)
	if name == "." || name == string(filepath.Separator) {
		name = "export.xlsx"
	}
	file := filepath.Join(d.exportDir, name)
	if err := os.WriteFile(file, download.Data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return file, nil
}
