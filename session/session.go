// Package session implements a scripted browser session: an HTTP client
// with a cookie jar that keeps the parsed document of the last loaded
// page, submits HTML forms and looks up links by text or target.
//
// A Session is a single mutable resource. The bank keeps login state and
// a "current page" server-side, so a Session must never be driven from
// two flows at once.
package session

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultUserAgent identifies the client to the remote site.
const DefaultUserAgent = "creditmut-client/1.0 (+https://github.com/insightdelivered/creditmut-client)"

const defaultTimeout = 30 * time.Second

// ErrNoPage is returned by operations that need a current page before
// any page has been loaded.
var ErrNoPage = errors.New("session: no page loaded")

// RemoteError reports an HTTP-level error response from the remote site.
type RemoteError struct {
	URL    string
	Code   int
	Status string
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("remote error fetching %s: %s: %s", e.URL, e.Status, e.Detail)
	}
	return fmt.Sprintf("remote error fetching %s: %s", e.URL, e.Status)
}

// Link is a hyperlink on the current page.
type Link struct {
	Text string
	Href string
}

// Session drives a sequence of page loads against one site.
type Session struct {
	client    *http.Client
	userAgent string

	pageURL *url.URL
	body    []byte
	doc     *goquery.Document
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout sets the per-request timeout. The default is 30s; the zero
// value would mean no timeout at all, so it is rejected.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.client.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(s *Session) { s.userAgent = ua }
}

// New returns a Session with an enabled cookie store.
func New(opts ...Option) *Session {
	jar, _ := cookiejar.New(nil)
	s := &Session{
		client:    &http.Client{Jar: jar, Timeout: defaultTimeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get loads the given URL and makes it the current page. rawURL may be
// relative to the current page.
func (s *Session) Get(rawURL string) error {
	target, err := s.Resolve(rawURL)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", target, err)
	}
	return s.do(req)
}

// SubmitForm submits the index-th form on the current page. Inputs keep
// their default values unless overridden by fields; unchecked checkboxes
// and radio buttons, and submit-style inputs, are not sent.
func (s *Session) SubmitForm(index int, fields map[string]string) error {
	if s.doc == nil {
		return ErrNoPage
	}
	form := s.doc.Find("form").Eq(index)
	if form.Length() == 0 {
		return fmt.Errorf("session: form %d not found on %s", index, s.pageURL)
	}

	values := url.Values{}
	form.Find("input").Each(func(_ int, in *goquery.Selection) {
		name, ok := in.Attr("name")
		if !ok || name == "" {
			return
		}
		typ, _ := in.Attr("type")
		switch strings.ToLower(typ) {
		case "submit", "button", "image", "reset", "file":
			return
		case "checkbox", "radio":
			if _, checked := in.Attr("checked"); !checked {
				return
			}
		}
		val, _ := in.Attr("value")
		values.Set(name, val)
	})
	for k, v := range fields {
		values.Set(k, v)
	}

	action, _ := form.Attr("action")
	target, err := s.Resolve(action)
	if err != nil {
		return err
	}

	method, _ := form.Attr("method")
	if strings.EqualFold(method, "get") {
		u, err := url.Parse(target)
		if err != nil {
			return fmt.Errorf("parsing form action %q: %w", target, err)
		}
		u.RawQuery = values.Encode()
		return s.Get(u.String())
	}

	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("building form request for %s: %w", target, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

// Links returns every hyperlink on the current page, in document order.
func (s *Session) Links() []Link {
	if s.doc == nil {
		return nil
	}
	var links []Link
	s.doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		links = append(links, Link{Text: strings.TrimSpace(a.Text()), Href: href})
	})
	return links
}

// FindLink returns the first link on the current page satisfying match.
func (s *Session) FindLink(match func(Link) bool) (Link, bool) {
	for _, l := range s.Links() {
		if match(l) {
			return l, true
		}
	}
	return Link{}, false
}

// Body returns the raw body of the current page.
func (s *Session) Body() string {
	return string(s.body)
}

// Document returns the parsed current page, or nil before the first Get.
func (s *Session) Document() *goquery.Document {
	return s.doc
}

// Resolve turns an href into an absolute URL against the current page.
// An empty href resolves to the current page itself.
func (s *Session) Resolve(href string) (string, error) {
	if s.pageURL == nil {
		u, err := url.Parse(href)
		if err != nil {
			return "", fmt.Errorf("parsing url %q: %w", href, err)
		}
		if !u.IsAbs() {
			return "", fmt.Errorf("session: relative url %q with no page loaded", href)
		}
		return u.String(), nil
	}
	u, err := s.pageURL.Parse(href)
	if err != nil {
		return "", fmt.Errorf("resolving url %q: %w", href, err)
	}
	return u.String(), nil
}

func (s *Session) do(req *http.Request) error {
	req.Header.Set("User-Agent", s.userAgent)
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s: %w", resp.Request.URL, err)
	}
	if resp.StatusCode >= 400 {
		return &RemoteError{
			URL:    resp.Request.URL.String(),
			Code:   resp.StatusCode,
			Status: resp.Status,
			Detail: excerpt(body),
		}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", resp.Request.URL, err)
	}
	s.pageURL = resp.Request.URL
	s.body = body
	s.doc = doc
	return nil
}

// excerpt trims an error body down to a single short line of detail.
func excerpt(body []byte) string {
	text := strings.Join(strings.Fields(string(body)), " ")
	if len(text) > 120 {
		text = text[:120] + "..."
	}
	return text
}
