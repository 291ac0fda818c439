package bulk

import (
	"context"
	"net/url"
	"sync"

	bulkDomain "github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/i18n"
)

type postCall struct {
	Path  string
	Query url.Values
	IDs   []string
}

type fakeTransport struct {
	mu sync.Mutex

	language    i18n.Code
	languageErr error
	languageN   int

	posts    []postCall
	postErr  error
	affected int64

	exports   []postCall
	download  Download
	exportErr error

	matching  map[string][]string // status filter value -> ids
	selectErr error
	filters   []map[string]string
}

func (f *fakeTransport) LanguageCode(ctx context.Context) (i18n.Code, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.languageN++
	if f.languageErr != nil {
		return i18n.Default, f.languageErr
	}
	if f.language == "" {
		return i18n.English, nil
	}
	return f.language, nil
}

func (f *fakeTransport) PostIDs(ctx context.Context, path string, query url.Values, ids []string) (Reply, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts = append(f.posts, postCall{Path: path, Query: query, IDs: append([]string(nil), ids...)})
	if f.postErr != nil {
		return Reply{}, f.postErr
	}
	affected := f.affected
	if affected == 0 {
		affected = int64(len(ids))
	}
	return Reply{Result: bulkDomain.BulkResult{Requested: len(ids), Affected: affected}}, nil
}

func (f *fakeTransport) Export(ctx context.Context, path string, ids []string) (Download, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.exports = append(f.exports, postCall{Path: path, IDs: append([]string(nil), ids...)})
	if f.exportErr != nil {
		return Download{}, f.exportErr
	}
	return f.download, nil
}

func (f *fakeTransport) SelectFilter(ctx context.Context, path string, filter map[string]string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.filters = append(f.filters, filter)
	if f.selectErr != nil {
		return nil, f.selectErr
	}
	return f.matching[filter["status"]], nil
}

func (f *fakeTransport) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posts) + len(f.exports)
}

type fakeConfirmer struct {
	answer  bool
	err     error
	dialogs []Dialog
}

func (c *fakeConfirmer) Confirm(ctx context.Context, dialog Dialog) (bool, error) {
	c.dialogs = append(c.dialogs, dialog)
	return c.answer, c.err
}

type recordingNotifier struct {
	notices []Notice
}

func (n *recordingNotifier) Notify(notice Notice) {
	n.notices = append(n.notices, notice)
}

func (n *recordingNotifier) last() Notice {
	if len(n.notices) == 0 {
		return Notice{}
	}
	return n.notices[len(n.notices)-1]
}
