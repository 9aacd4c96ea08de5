// Package launch opens URLs in the user's browser.
package launch

import (
	"errors"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/pkg/browser"
)

// Well-known destinations.
const (
	HomeURL   = "https://www.google.com"
	SearchURL = "https://www.google.com/search"
)

// ErrEmptyQuery is returned when a search is requested with nothing typed.
var ErrEmptyQuery = errors.New("empty search query")

// Launcher opens a URL somewhere outside the desk.
type Launcher interface {
	Open(url string) error
}

// Browser opens URLs with the system default browser.
type Browser struct{}

// NewBrowser returns a Browser that keeps the opener's own output off the terminal.
func NewBrowser() *Browser {
	browser.Stdout = io.Discard
	browser.Stderr = io.Discard
	return &Browser{}
}

// Open hands url to the OS.
func (b *Browser) Open(u string) error {
	return browser.OpenURL(u)
}

// QueryURL builds the search URL for a typed query. Surrounding whitespace
// is trimmed first.
func QueryURL(query string) (string, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return "", ErrEmptyQuery
	}
	return SearchURL + "?q=" + url.QueryEscape(q), nil
}

// Recorder is a Launcher that remembers what it was asked to open.
type Recorder struct {
	mu   sync.Mutex
	urls []string
	err  error
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// SetError makes subsequent Open calls fail with err.
func (r *Recorder) SetError(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Open records u.
func (r *Recorder) Open(u string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.urls = append(r.urls, u)
	return r.err
}

// URLs returns a copy of everything opened so far.
func (r *Recorder) URLs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.urls))
	copy(out, r.urls)
	return out
}
