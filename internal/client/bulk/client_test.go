package bulk

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/horilla-hris/hris-bulk-go/internal/pkg/csrf"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCSRF = "csrf-cookie-value"

type fakeServer struct {
	*httptest.Server
	languageCalls atomic.Int32
	posts         atomic.Int32
	lastForm      chan map[string][]string
}

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	fs := &fakeServer{lastForm: make(chan map[string][]string, 4)}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /employee/get-language-code/", func(w http.ResponseWriter, r *http.Request) {
		fs.languageCalls.Add(1)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		http.SetCookie(w, &http.Cookie{Name: csrf.CookieName, Value: testCSRF, Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"language_code":"fr-FR"}`))
	})
	mux.HandleFunc("POST /leave/holiday-bulk-delete", func(w http.ResponseWriter, r *http.Request) {
		fs.posts.Add(1)
		assert.NoError(t, r.ParseForm())
		fs.lastForm <- r.PostForm
		cookie, err := r.Cookie(csrf.CookieName)
		if err != nil || cookie.Value != r.PostForm.Get(csrf.FormField) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"success":false,"error":{"code":"FORBIDDEN","message":"CSRF verification failed"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"2 records deleted successfully.","data":{"action":"delete","view":"leave.holiday","requested":2,"affected":2}}`))
	})
	mux.HandleFunc("POST /leave/holiday-bulk-approve", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		_, _ = w.Write([]byte(`{"success":false,"error":{"code":"METHOD_NOT_ALLOWED","message":"action not supported for entity"}}`))
	})
	mux.HandleFunc("POST /leave/holiday-bulk-archive", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	})
	mux.HandleFunc("GET /leave/holiday-info-export", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, `["3","7"]`, r.URL.Query().Get("ids"))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="holiday_20240102_030405.xlsx"`)
		_, _ = w.Write([]byte("PK"))
	})
	mux.HandleFunc("GET /leave/holiday-select-filter", func(w http.ResponseWriter, r *http.Request) {
		var filter map[string]string
		if raw := r.URL.Query().Get("filter"); raw != "" {
			assert.NoError(t, json.Unmarshal([]byte(raw), &filter))
		}
		ids := []string{"3", "7", "12"}
		if filter["company_id"] == "c1" {
			ids = []string{"7", "12"}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"ids": ids, "total_count": len(ids)})
	})
	mux.HandleFunc("GET /slow", func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})

	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	c, err := NewClient(ClientOptions{BaseURL: baseURL, Token: "tok", Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestNewClient_RejectsBadURL(t *testing.T) {
	_, err := NewClient(ClientOptions{BaseURL: "ftp://example.com"})
	assert.Error(t, err)
	_, err = NewClient(ClientOptions{BaseURL: "://"})
	assert.Error(t, err)
}

func TestClient_LanguageCode(t *testing.T) {
	srv := newFakeServer(t)
	c := newTestClient(t, srv.URL)

	code, err := c.LanguageCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, i18n.French, code)
}

func TestClient_PostIDsPrimesCSRFOnce(t *testing.T) {
	srv := newFakeServer(t)
	c := newTestClient(t, srv.URL)

	reply, err := c.PostIDs(context.Background(), "/leave/holiday-bulk-delete", nil, []string{"3", "7"})
	require.NoError(t, err)
	assert.Equal(t, "2 records deleted successfully.", reply.Message)
	assert.Equal(t, int64(2), reply.Result.Affected)

	form := <-srv.lastForm
	assert.Equal(t, []string{`["3","7"]`}, form["ids"])
	assert.Equal(t, []string{testCSRF}, form[csrf.FormField])

	_, err = c.PostIDs(context.Background(), "/leave/holiday-bulk-delete", nil, []string{"3"})
	require.NoError(t, err)
	assert.Equal(t, int32(1), srv.languageCalls.Load())
	assert.Equal(t, int32(2), srv.posts.Load())
}

func TestClient_StatusErrors(t *testing.T) {
	srv := newFakeServer(t)
	c := newTestClient(t, srv.URL)

	_, err := c.PostIDs(context.Background(), "/leave/holiday-bulk-approve", nil, []string{"3"})
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusMethodNotAllowed, statusErr.StatusCode)
	assert.Equal(t, "action not supported for entity", statusErr.Message)

	_, err = c.PostIDs(context.Background(), "/leave/holiday-bulk-archive", nil, []string{"3"})
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, "upstream exploded", statusErr.Message)
}

func TestClient_Export(t *testing.T) {
	srv := newFakeServer(t)
	c := newTestClient(t, srv.URL)

	download, err := c.Export(context.Background(), "/leave/holiday-info-export", []string{"3", "7"})
	require.NoError(t, err)
	assert.Equal(t, "holiday_20240102_030405.xlsx", download.Filename)
	assert.Equal(t, []byte("PK"), download.Data)
}

func TestClient_SelectFilter(t *testing.T) {
	srv := newFakeServer(t)
	c := newTestClient(t, srv.URL)

	ids, err := c.SelectFilter(context.Background(), "/leave/holiday-select-filter", map[string]string{"company_id": "c1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"7", "12"}, ids)

	ids, err = c.SelectFilter(context.Background(), "/leave/holiday-select-filter", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "7", "12"}, ids)
}

func TestClient_Timeout(t *testing.T) {
	srv := newFakeServer(t)
	c, err := NewClient(ClientOptions{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	require.NoError(t, err)

	resp, err := c.do(context.Background(), http.MethodGet, c.endpoint("/slow", nil), nil, "")
	if resp != nil {
		resp.Body.Close()
	}
	assert.Error(t, err)
}

func TestClient_DispatchEndToEnd(t *testing.T) {
	srv := newFakeServer(t)
	c := newTestClient(t, srv.URL)
	notifier := &recordingNotifier{}
	d := NewDispatcher(c, &fakeConfirmer{answer: true}, notifier)

	store := NewStore("leave", "holiday")
	_, err := store.SelectAll(context.Background(), c, map[string]string{"company_id": "c1"})
	require.NoError(t, err)

	out, err := d.Dispatch(context.Background(), mustAction(t, "leave", "holiday", "delete"), store.State())
	require.NoError(t, err)
	assert.Equal(t, StateReloaded, out.State)
	assert.Equal(t, i18n.French, out.Language)
	assert.Equal(t, "2 enregistrements supprimés avec succès.", notifier.last().Text)

	form := <-srv.lastForm
	var sent []string
	require.NoError(t, json.Unmarshal([]byte(form["ids"][0]), &sent))
	assert.ElementsMatch(t, []string{"7", "12"}, sent)
}
