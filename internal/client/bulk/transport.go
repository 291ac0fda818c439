package bulk

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	bulkDomain "github.com/horilla-hris/hris-bulk-go/internal/domain/bulk"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/i18n"
)

// Reply is the decoded 200 answer of a mutating bulk endpoint.
type Reply struct {
	Message string
	Result  bulkDomain.BulkResult
}

// Download is an exported workbook.
type Download struct {
	Filename string
	Data     []byte
}

// Transport is what the dispatcher and the store need from the server.
type Transport interface {
	LanguageCode(ctx context.Context) (i18n.Code, error)
	PostIDs(ctx context.Context, path string, query url.Values, ids []string) (Reply, error)
	Export(ctx context.Context, path string, ids []string) (Download, error)
	SelectFilter(ctx context.Context, path string, filter map[string]string) ([]string, error)
}

// StatusError is a non-200 answer. Message is the server's error text when it sent one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server answered %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("server answered %d: %s", e.StatusCode, e.Message)
}
