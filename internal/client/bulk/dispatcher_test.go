package bulk

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	bulkDomain "github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/domain/selection"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustAction(t *testing.T, module, entity string, key bulkDomain.ActionKey) Action {
	t.Helper()
	a, err := NewAction(module, entity, key)
	require.NoError(t, err)
	return a
}

func stateWith(ids ...string) *selection.State {
	s := selection.NewState("", "leave.holiday", "", timeZero)
	s.Selected.Add(ids...)
	return &s
}

func TestDispatch_EmptySelectionWarnsWithoutRequest(t *testing.T) {
	transport := &fakeTransport{}
	confirmer := &fakeConfirmer{answer: true}
	notifier := &recordingNotifier{}
	d := NewDispatcher(transport, confirmer, notifier)

	for _, sel := range []*selection.State{nil, stateWith()} {
		out, err := d.Dispatch(context.Background(), mustAction(t, "leave", "holiday", bulkDomain.ActionDelete), sel)
		require.NoError(t, err)
		assert.Equal(t, StateWarned, out.State)
		assert.Equal(t, []State{StateIdle, StateWarned}, out.Trace)
		assert.Equal(t, i18n.NoRows.Get(i18n.English), out.Message)
	}

	assert.Zero(t, transport.calls())
	assert.Empty(t, confirmer.dialogs)
	assert.Equal(t, Notice{Level: LevelWarning, Text: "Please select some rows."}, notifier.last())
}

func TestDispatch_MalformedIDsAreAnEmptySelection(t *testing.T) {
	transport := &fakeTransport{}
	notifier := &recordingNotifier{}
	d := NewDispatcher(transport, &fakeConfirmer{answer: true}, notifier)

	store := NewStore("leave", "holiday")
	store.Toggle("4", true)
	require.Error(t, store.Restore(`{"not":"an array"}`))

	out, err := d.Dispatch(context.Background(), mustAction(t, "leave", "holiday", bulkDomain.ActionDelete), store.State())
	require.NoError(t, err)
	assert.Equal(t, StateWarned, out.State)
	assert.Zero(t, transport.calls())
}

func TestDispatch_EmptyArrayWarningIsLocalized(t *testing.T) {
	store := NewStore("leave", "holiday")
	require.NoError(t, store.Restore("[]"))

	notifier := &recordingNotifier{}
	d := NewDispatcher(&fakeTransport{language: i18n.German}, &fakeConfirmer{answer: true}, notifier)
	out, err := d.Dispatch(context.Background(), mustAction(t, "leave", "holiday", bulkDomain.ActionDelete), store.State())
	require.NoError(t, err)
	assert.Equal(t, i18n.German, out.Language)
	assert.Equal(t, "Bitte wählen Sie einige Zeilen aus.", notifier.last().Text)
}

func TestDispatch_CancelSendsNothing(t *testing.T) {
	transport := &fakeTransport{}
	confirmer := &fakeConfirmer{answer: false}
	d := NewDispatcher(transport, confirmer, &recordingNotifier{})

	sel := stateWith("12", "7")
	out, err := d.Dispatch(context.Background(), mustAction(t, "leave", "request", bulkDomain.ActionApprove), sel)
	require.NoError(t, err)
	assert.Equal(t, StateAborted, out.State)
	assert.Equal(t, []State{StateIdle, StateConfirming, StateAborted}, out.Trace)
	assert.Zero(t, transport.calls())
	assert.Equal(t, 2, sel.Count(), "cancel keeps the selection")

	require.Len(t, confirmer.dialogs, 1)
	assert.Equal(t, "Do you really want to approve all the selected requests?", confirmer.dialogs[0].Text)
	assert.Equal(t, bulkDomain.SeverityInfo, confirmer.dialogs[0].Severity)
	assert.Equal(t, 2, confirmer.dialogs[0].Count)
	assert.Equal(t, "2 selected", confirmer.dialogs[0].Badge)
	assert.Equal(t, "Confirm", confirmer.dialogs[0].ConfirmLabel)
}

func TestDispatch_ConfirmerErrorAborts(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(transport, &fakeConfirmer{err: errors.New("no tty")}, &recordingNotifier{})

	out, err := d.Dispatch(context.Background(), mustAction(t, "leave", "holiday", bulkDomain.ActionDelete), stateWith("1"))
	require.Error(t, err)
	assert.Equal(t, StateAborted, out.State)
	assert.Zero(t, transport.calls())
}

func TestDispatch_ConfirmSendsExactlyOneRequest(t *testing.T) {
	transport := &fakeTransport{}
	notifier := &recordingNotifier{}
	confirmer := &fakeConfirmer{answer: true}
	d := NewDispatcher(transport, confirmer, notifier)

	store := NewStore("leave", "holiday")
	for _, id := range []string{"12", "7", "7", "3"} {
		store.Toggle(id, true)
	}

	out, err := d.Dispatch(context.Background(), mustAction(t, "leave", "holiday", bulkDomain.ActionDelete), store.State())
	require.NoError(t, err)
	assert.Equal(t, StateReloaded, out.State)
	assert.Equal(t, []State{StateIdle, StateConfirming, StateRequesting, StateReloaded}, out.Trace)

	require.Len(t, transport.posts, 1)
	assert.Equal(t, "/leave/holiday-bulk-delete", transport.posts[0].Path)
	assert.ElementsMatch(t, []string{"12", "7", "3"}, transport.posts[0].IDs)
	assert.Equal(t, bulkDomain.SeverityError, confirmer.dialogs[0].Severity)

	assert.Equal(t, Notice{Level: LevelSuccess, Text: "3 records deleted successfully."}, notifier.last())
	assert.Zero(t, store.Count(), "a reload clears the selection")
}

func TestDispatch_ArchiveCarriesIsActive(t *testing.T) {
	transport := &fakeTransport{}
	d := NewDispatcher(transport, &fakeConfirmer{answer: true}, &recordingNotifier{}, WithLanguage(i18n.French))

	_, err := d.Dispatch(context.Background(), mustAction(t, "leave", "holiday", bulkDomain.ActionArchive), stateWith("1"))
	require.NoError(t, err)
	_, err = d.Dispatch(context.Background(), mustAction(t, "leave", "holiday", bulkDomain.ActionUnarchive), stateWith("1"))
	require.NoError(t, err)

	require.Len(t, transport.posts, 2)
	assert.Equal(t, "/leave/holiday-bulk-archive", transport.posts[0].Path)
	assert.Equal(t, url.Values{"is_active": {"False"}}, transport.posts[0].Query)
	assert.Equal(t, url.Values{"is_active": {"True"}}, transport.posts[1].Query)
	assert.Zero(t, transport.languageN, "a seeded language skips the lookup")
}

func TestDispatch_FailureReturnsToIdle(t *testing.T) {
	transport := &fakeTransport{postErr: &StatusError{StatusCode: 403, Message: "Insufficient permissions"}}
	notifier := &recordingNotifier{}
	d := NewDispatcher(transport, &fakeConfirmer{answer: true}, notifier)

	sel := stateWith("1", "2")
	out, err := d.Dispatch(context.Background(), mustAction(t, "leave", "request", bulkDomain.ActionReject), sel)
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, 403, statusErr.StatusCode)
	assert.Equal(t, StateIdle, out.State)
	assert.Equal(t, []State{StateIdle, StateConfirming, StateRequesting, StateIdle}, out.Trace)
	assert.Equal(t, Notice{Level: LevelError, Text: "The action could not be completed: Insufficient permissions"}, notifier.last())
	assert.Equal(t, 2, sel.Count(), "a failed request keeps the selection")
	assert.Len(t, transport.posts, 1)
}

func TestDispatch_ExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	transport := &fakeTransport{download: Download{Filename: "../holiday_20240102_030405.xlsx", Data: []byte("xlsx")}}
	notifier := &recordingNotifier{}
	confirmer := &fakeConfirmer{answer: true}
	d := NewDispatcher(transport, confirmer, notifier, WithExportDir(dir))

	out, err := d.Dispatch(context.Background(), mustAction(t, "leave", "holiday", bulkDomain.ActionExport), stateWith("3", "7"))
	require.NoError(t, err)
	assert.Equal(t, StateReloaded, out.State)
	assert.Equal(t, filepath.Join(dir, "holiday_20240102_030405.xlsx"), out.File)
	assert.Equal(t, bulkDomain.SeverityQuestion, confirmer.dialogs[0].Severity)

	data, err := os.ReadFile(out.File)
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)

	require.Len(t, transport.exports, 1)
	assert.Equal(t, "/leave/holiday-info-export", transport.exports[0].Path)
	assert.Empty(t, transport.posts)
	assert.Equal(t, "Downloaded holiday_20240102_030405.xlsx.", notifier.last().Text)
}

func TestDispatcher_LanguageFallsBackAndRetries(t *testing.T) {
	transport := &fakeTransport{languageErr: errors.New("offline")}
	d := NewDispatcher(transport, &fakeConfirmer{}, &recordingNotifier{})

	assert.Equal(t, i18n.English, d.Language(context.Background()))
	transport.languageErr = nil
	transport.language = i18n.Spanish
	assert.Equal(t, i18n.Spanish, d.Language(context.Background()))
	assert.Equal(t, i18n.Spanish, d.Language(context.Background()))
	assert.Equal(t, 2, transport.languageN)
}

func TestNewAction(t *testing.T) {
	a := mustAction(t, "leave", "request", bulkDomain.ActionReject)
	assert.Equal(t, "leave.request", a.View())
	assert.Equal(t, "/leave/request-bulk-reject", a.Path())
	assert.Nil(t, a.Query())

	_, err := NewAction("leave", "request", "explode")
	assert.ErrorIs(t, err, bulkDomain.ErrActionNotSupported)
	_, err = NewAction("", "request", bulkDomain.ActionDelete)
	assert.Error(t, err)
}
