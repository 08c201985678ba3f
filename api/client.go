// Package api is a client for the cverooster CVE API.
package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/parnurzeal/gorequest"
	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/cverooster/cverooster-client/cve"
	"github.com/cverooster/cverooster-client/filter"
)

const (
	defaultBaseURL = "http://localhost:8000/"

	pathCveList              = "/api/cve/list"
	pathSaveUserCveComment   = "/api/cve/save_user_cve_comment"
	pathDeleteUserCveComment = "/api/cve/delete_user_cve_comment"
	pathSaveUserCveLabel     = "/api/cve/save_user_cve_label"
	pathDeleteUserCveLabel   = "/api/cve/delete_user_cve_label"
	pathSaveUserKeyword      = "/api/cve/save_user_keyword"
	pathDeleteUserKeyword    = "/api/cve/delete_user_keyword"

	csrfHeader = "X-CSRFToken"
)

type Option func(*Client)

func WithBaseURL(u *url.URL) Option {
	return func(c *Client) { c.baseURL = u }
}

func WithCredentials(p CredentialProvider) Option {
	return func(c *Client) { c.credentials = p }
}

// WithTimeout bounds every request. Zero, the default, means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithDebug(debug bool) Option {
	return func(c *Client) { c.debug = debug }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// Client issues one request per call and never retries. It is safe for
// concurrent use.
type Client struct {
	baseURL     *url.URL
	credentials CredentialProvider
	timeout     time.Duration
	debug       bool
	now         func() time.Time
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:     lo.Must(url.Parse(defaultBaseURL)),
		credentials: StaticCredentials{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches one page of CVEs matching conds.
func (c *Client) List(conds filter.Conditions, page int) (cve.ListResult, error) {
	if err := c.validateConditions(conds, page); err != nil {
		return cve.ListResult{}, err
	}

	b, err := c.do(http.MethodGet, &url.URL{Path: pathCveList, RawQuery: conds.Query(page)}, nil)
	if err != nil {
		return cve.ListResult{}, xerrors.Errorf("failed to fetch the CVE list: %w", err)
	}

	var res cve.ListResponse
	if err = json.Unmarshal(b, &res); err != nil {
		return cve.ListResult{}, xerrors.Errorf("failed to decode the CVE list: %w", err)
	}
	return res.Result, nil
}

func (c *Client) SaveComment(cveID, comment string) error {
	if err := cve.ValidateCveID(cveID); err != nil {
		return err
	}
	if comment == "" {
		return &cve.ValidationError{Field: "comment", Msg: "empty comment, use DeleteComment"}
	}
	if err := cve.ValidateComment(comment); err != nil {
		return err
	}
	form := url.Values{"cve_id": {cveID}, "comment": {comment}}
	if _, err := c.do(http.MethodPost, &url.URL{Path: pathSaveUserCveComment}, form); err != nil {
		return xerrors.Errorf("failed to save the comment on %s: %w", cveID, err)
	}
	return nil
}

func (c *Client) DeleteComment(cveID string) error {
	if err := cve.ValidateCveID(cveID); err != nil {
		return err
	}
	form := url.Values{"cve_id": {cveID}}
	if _, err := c.do(http.MethodDelete, &url.URL{Path: pathDeleteUserCveComment}, form); err != nil {
		return xerrors.Errorf("failed to delete the comment on %s: %w", cveID, err)
	}
	return nil
}

func (c *Client) SaveLabel(cveID, label string) error {
	if err := cve.ValidateCveID(cveID); err != nil {
		return err
	}
	if err := cve.ValidateLabel(label); err != nil {
		return err
	}
	form := url.Values{"cve_id": {cveID}, "label": {label}}
	if _, err := c.do(http.MethodPost, &url.URL{Path: pathSaveUserCveLabel}, form); err != nil {
		return xerrors.Errorf("failed to save the label on %s: %w", cveID, err)
	}
	return nil
}

func (c *Client) DeleteLabel(cveID string) error {
	if err := cve.ValidateCveID(cveID); err != nil {
		return err
	}
	form := url.Values{"cve_id": {cveID}}
	if _, err := c.do(http.MethodDelete, &url.URL{Path: pathDeleteUserCveLabel}, form); err != nil {
		return xerrors.Errorf("failed to delete the label on %s: %w", cveID, err)
	}
	return nil
}

func (c *Client) SaveKeyword(keyword string) error {
	if err := cve.ValidateKeyword(keyword); err != nil {
		return err
	}
	form := url.Values{"keyword": {keyword}}
	if _, err := c.do(http.MethodPost, &url.URL{Path: pathSaveUserKeyword}, form); err != nil {
		return xerrors.Errorf("failed to save the keyword %q: %w", keyword, err)
	}
	return nil
}

func (c *Client) DeleteKeyword(keyword string) error {
	if err := cve.ValidateKeyword(keyword); err != nil {
		return err
	}
	form := url.Values{"keyword": {keyword}}
	if _, err := c.do(http.MethodDelete, &url.URL{Path: pathDeleteUserKeyword}, form); err != nil {
		return xerrors.Errorf("failed to delete the keyword %q: %w", keyword, err)
	}
	return nil
}

func (c *Client) validateConditions(conds filter.Conditions, page int) error {
	if conds.Severity != "" {
		if err := cve.ValidateSeverity(conds.Severity); err != nil {
			return err
		}
	}
	if conds.Year != "" {
		if err := cve.ValidateYear(conds.Year, c.now()); err != nil {
			return err
		}
	}
	for _, l := range conds.Labels {
		if err := cve.ValidateLabel(l); err != nil {
			return err
		}
	}
	if conds.Keyword != "" {
		if err := cve.ValidateKeyword(conds.Keyword); err != nil {
			return err
		}
	}
	return cve.ValidatePage(page)
}

// do sends a request to ref resolved against the base URL. Non-GET requests
// carry form as an urlencoded body together with the CSRF header.
func (c *Client) do(method string, ref *url.URL, form url.Values) ([]byte, error) {
	u := c.baseURL.ResolveReference(ref).String()

	agent := gorequest.New().SetDebug(c.debug)
	switch method {
	case http.MethodGet:
		agent = agent.Get(u)
	case http.MethodPost:
		agent = agent.Post(u)
	case http.MethodDelete:
		agent = agent.Delete(u)
	default:
		return nil, xerrors.Errorf("unsupported method: %s", method)
	}
	if c.timeout > 0 {
		agent = agent.Timeout(c.timeout)
	}

	for _, cookie := range c.credentials.Cookies() {
		agent = agent.AddCookie(cookie)
	}
	if a, ok := c.credentials.(Authorizer); ok {
		authz, err := a.Authorization()
		if err != nil {
			return nil, xerrors.Errorf("unable to authorize: %w", err)
		}
		agent = agent.Set("Authorization", authz)
	}

	if method != http.MethodGet {
		token, err := c.credentials.CSRFToken()
		if err != nil {
			return nil, xerrors.Errorf("unable to get the CSRF token: %w", err)
		}
		if token != "" {
			agent = agent.Set(csrfHeader, token)
		}
		agent = agent.Set("Referer", c.baseURL.String()).
			Type("form").
			Send(form.Encode())
	}

	resp, body, errs := agent.EndBytes()
	if len(errs) > 0 {
		return nil, &TransportError{Method: method, URL: u, Err: errs[0]}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{Method: method, URL: u, StatusCode: resp.StatusCode, Body: body}
	}
	return body, nil
}
