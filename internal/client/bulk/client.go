package bulk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/horilla-hris/hris-bulk-go/internal/pkg/csrf"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/i18n"
	"github.com/horilla-hris/hris-bulk-go/internal/pkg/logger"
)

const (
	DefaultTimeout = 30 * time.Second

	LanguageCodePath = "/employee/get-language-code/"

	maxErrorBody = 64 << 10
)

var ErrNoCSRFCookie = errors.New("server did not issue a csrftoken cookie")

type ClientOptions struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Logger  *logger.Logger
}

// Client talks to the bulk endpoints the way the list views do: bearer token,
// cookie jar and the csrftoken double submit.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
	log     *logger.Logger
}

func NewClient(opts ClientOptions) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", opts.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	log := opts.Logger
	if log == nil {
		nop := logger.Nop()
		log = &nop
	}

	return &Client{
		baseURL: base,
		token:   opts.Token,
		http:    &http.Client{Timeout: timeout, Jar: jar},
		log:     log,
	}, nil
}

func (c *Client) endpoint(p string, query url.Values) *url.URL {
	u := *c.baseURL
	u.Path = path.Join(c.baseURL.Path, p)
	if strings.HasSuffix(p, "/") && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = query.Encode()
	return &u
}

func (c *Client) do(ctx context.Context, method string, u *url.URL, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.HTTPError(c.log, method, u.Path, 0, err).Msg("request failed")
		return nil, err
	}
	logger.HTTPEvent(c.log, method, u.Path, resp.StatusCode, time.Since(start)).Msg("request")
	return resp, nil
}

// statusError drains resp into a StatusError, keeping the server's message.
func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var envelope struct {
		Message string `json:"message"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	message := ""
	if json.Unmarshal(body, &envelope) == nil {
		switch {
		case envelope.Error != nil && envelope.Error.Message != "":
			message = envelope.Error.Message
		case envelope.Message != "":
			message = envelope.Message
		}
	}
	if message == "" {
		message = strings.TrimSpace(string(body))
	}
	return &StatusError{StatusCode: resp.StatusCode, Message: message}
}

// LanguageCode implements Transport. The same call primes the csrftoken cookie.
func (c *Client) LanguageCode(ctx context.Context) (i18n.Code, error) {
	u := c.endpoint(LanguageCodePath, nil)
	resp, err := c.do(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return i18n.Default, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return i18n.Default, statusError(resp)
	}

	var payload struct {
		LanguageCode string `json:"language_code"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return i18n.Default, fmt.Errorf("decode language code: %w", err)
	}
	return i18n.OrDefault(payload.LanguageCode), nil
}

func (c *Client) csrfCookie() string {
	for _, cookie := range c.http.Jar.Cookies(c.baseURL) {
		if cookie.Name == csrf.CookieName {
			return cookie.Value
		}
	}
	return ""
}

// csrfToken returns the jar's csrftoken, fetching the language endpoint once to obtain it.
func (c *Client) csrfToken(ctx context.Context) (string, error) {
	if token := c.csrfCookie(); token != "" {
		return token, nil
	}
	if _, err := c.LanguageCode(ctx); err != nil {
		return "", err
	}
	if token := c.csrfCookie(); token != "" {
		return token, nil
	}
	return "", ErrNoCSRFCookie
}

func encodeIDs(ids []string) string {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

// PostIDs implements Transport.
func (c *Client) PostIDs(ctx context.Context, p string, query url.Values, ids []string) (Reply, error) {
	token, err := c.csrfToken(ctx)
	if err != nil {
		return Reply{}, err
	}

	form := url.Values{
		csrf.FormField: {token},
		"ids":          {encodeIDs(ids)},
	}
	u := c.endpoint(p, query)
	resp, err := c.do(ctx, http.MethodPost, u, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded")
	if err != nil {
		return Reply{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Reply{}, statusError(resp)
	}

	var envelope struct {
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return Reply{}, fmt.Errorf("decode %s reply: %w", p, err)
	}
	reply := Reply{Message: envelope.Message}
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, &reply.Result); err != nil {
			return Reply{}, fmt.Errorf("decode %s result: %w", p, err)
		}
	}
	return reply, nil
}

// Export implements Transport.
func (c *Client) Export(ctx context.Context, p string, ids []string) (Download, error) {
	u := c.endpoint(p, url.Values{"ids": {encodeIDs(ids)}})
	resp, err := c.do(ctx, http.MethodGet, u, nil, "")
	if err != nil {
		return Download{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Download{}, statusError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Download{}, fmt.Errorf("read export: %w", err)
	}

	filename := "export.xlsx"
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		filename = params["filename"]
	}
	return Download{Filename: filename, Data: data}, nil
}

// SelectFilter implements Transport.
func (c *Client) SelectFilter(ctx context.Context, p string, filter map[string]string) ([]string, error) {
	var query url.Values
	if len(filter) > 0 {
		data, err := json.Marshal(filter)
		if err != nil {
			return nil, err
		}
		query = url.Values{"filter": {string(data)}}
	}

	resp, err := c.do(ctx, http.MethodGet, c.endpoint(p, query), nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(resp)
	}

	var payload struct {
		IDs        []string `json:"ids"`
		TotalCount int      `json:"total_count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p, err)
	}
	if payload.IDs == nil {
		payload.IDs = []string{}
	}
	return payload.IDs, nil
}

var _ Transport = (*Client)(nil)
