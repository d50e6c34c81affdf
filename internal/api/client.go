package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/Makepad-fr/mediavote/internal/logging"
	"github.com/Makepad-fr/mediavote/internal/model"
)

var log = logging.NewLogger("api")

// Client talks to the voting API. One attempt per call: no retries and no
// client-side timeout.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request sends method to baseURL+endpoint and returns the raw JSON body.
// A non-nil body is JSON-encoded unless isMultipart is set, in which case it
// must be a *Form and is sent as multipart/form-data.
func (c *Client) Request(ctx context.Context, endpoint, method string, body any, isMultipart bool) (json.RawMessage, error) {
	if method == "" {
		method = http.MethodGet
	}

	var (
		reader      io.Reader
		contentType string
	)
	switch {
	case isMultipart:
		form, ok := body.(*Form)
		if !ok {
			return nil, &Error{Err: fmt.Errorf("multipart body must be *api.Form, got %T", body)}
		}
		r, ct, err := form.encode()
		if err != nil {
			return nil, &Error{Err: fmt.Errorf("encode multipart: %w", err)}
		}
		reader, contentType = r, ct
	case body != nil:
		b, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Err: fmt.Errorf("encode json: %w", err)}
		}
		reader, contentType = bytes.NewReader(b), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("build request: %w", err)}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	log.Debugf("%s %s%s id=%s", method, c.baseURL, endpoint, reqID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warningf("%s %s id=%s: %v", method, endpoint, reqID, err)
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		log.Warningf("%s %s id=%s: status %d", method, endpoint, reqID, resp.StatusCode)
		return nil, &Error{StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	if !json.Valid(raw) {
		return nil, &Error{StatusCode: resp.StatusCode, Err: fmt.Errorf("response is not JSON")}
	}
	return raw, nil
}

func (c *Client) Items(ctx context.Context) ([]model.Item, error) {
	raw, err := c.Request(ctx, "/items", http.MethodGet, nil, false)
	if err != nil {
		return nil, err
	}
	var items []model.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, &Error{StatusCode: http.StatusOK, Err: fmt.Errorf("decode items: %w", err)}
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

func (c *Client) Stats(ctx context.Context) (model.Stats, error) {
	raw, err := c.Request(ctx, "/stats", http.MethodGet, nil, false)
	if err != nil {
		return model.Stats{}, err
	}
	var st model.Stats
	if err := json.Unmarshal(raw, &st); err != nil {
		return model.Stats{}, &Error{StatusCode: http.StatusOK, Err: fmt.Errorf("decode stats: %w", err)}
	}
	return st, nil
}

// Vote registers one vote. The response body is ignored.
func (c *Client) Vote(ctx context.Context, itemID string, vt model.VoteType) error {
	endpoint := "/items/" + url.PathEscape(itemID) + "/vote"
	_, err := c.Request(ctx, endpoint, http.MethodPost, model.VoteRequest{Type: vt}, false)
	return err
}

// AddItem submits a new item. The response body is ignored.
func (c *Client) AddItem(ctx context.Context, form *Form) error {
	_, err := c.Request(ctx, "/items", http.MethodPost, form, true)
	return err
}

// NewItemForm maps a form snapshot onto the API's multipart fields. The
// cover is attached only when a non-empty file was chosen.
func NewItemForm(s model.Submission) (*Form, error) {
	f := &Form{}
	f.Set("titulo", s.Titulo)
	f.Set("genero", s.Genero)
	f.Set("descricao", s.Descricao)
	if _, err := f.AttachFile("imagem", strings.TrimSpace(s.CoverPath)); err != nil {
		return nil, err
	}
	return f, nil
}

// ProbeImage reports whether an absolute image URL can be fetched. It asks
// for the first byte only, with the same GET an image load would send, since
// some hosts refuse HEAD. Non-HTTP paths are assumed fine.
func (c *Client) ProbeImage(ctx context.Context, imageURL string) bool {
	if !strings.HasPrefix(imageURL, "http://") && !strings.HasPrefix(imageURL, "https://") {
		return true
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("Range", "bytes=0-0")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debugf("probe %s: %v", imageURL, err)
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
