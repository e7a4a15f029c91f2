// Package offline is the request router for app resources: a service-worker
// style component that classifies requests into caching strategies and
// manages the versioned cache lifecycle, so the app keeps working without a
// network.
package offline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
)

// CacheVersion names the current static/dynamic cache pair. Bump it to force
// a full cache refresh on the next activation.
const CacheVersion = "v1"

// PrecacheURLs is the app shell: the minimal resource set installed into the
// static cache so the app can boot offline.
var PrecacheURLs = []string{
	"/dashboard.html",
	"/data/masters-data.js",
	"/manifest.json",
	"/icons/icon-192.svg",
	"/icons/icon-512.svg",
}

const shellPath = "/dashboard.html"

// UpdatedMessage is broadcast to subscribers after a successful activation.
const UpdatedMessage = "SW_UPDATED"

// SkipWaitingMessage asks a waiting worker to activate immediately.
const SkipWaitingMessage = "skipWaiting"

// State is the worker lifecycle phase.
type State int

const (
	StateInstalling State = iota
	StateWaiting
	StateActive
)

func (s State) String() string {
	switch s {
	case StateInstalling:
		return "installing"
	case StateWaiting:
		return "waiting"
	case StateActive:
		return "active"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// ErrNotInstalled is returned when activation is attempted before a
// successful install.
var ErrNotInstalled = errors.New("offline: worker not installed")

// Fetcher performs network fetches. *http.Client is adapted via HTTPFetcher.
type Fetcher interface {
	Fetch(ctx context.Context, req *http.Request) (*Response, error)
}

// HTTPFetcher adapts an *http.Client to the Fetcher interface. Relative
// request URLs (the precache manifest, gateway-proxied paths) are resolved
// against Base.
type HTTPFetcher struct {
	Base   *url.URL
	Client *http.Client
}

func (f *HTTPFetcher) Fetch(ctx context.Context, req *http.Request) (*Response, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	out := req.Clone(ctx)
	if f.Base != nil && out.URL.Host == "" {
		out.URL = f.Base.ResolveReference(out.URL)
		out.Host = ""
	}

	httpResp, err := client.Do(out)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header.Clone(),
		Body:   body,
		Source: SourceNetwork,
	}, nil
}

// Worker routes resource requests through the versioned cache pair.
type Worker struct {
	storage Storage
	fetcher Fetcher
	version string

	mu          sync.Mutex
	state       State
	skipWaiting bool
	claimed     bool
	subs        []chan string

	revalidations sync.WaitGroup
}

func NewWorker(storage Storage, fetcher Fetcher) *Worker {
	return &Worker{
		storage: storage,
		fetcher: fetcher,
		version: CacheVersion,
		state:   StateInstalling,
	}
}

func (w *Worker) staticCache() string  { return "mastery-static-" + w.version }
func (w *Worker) dynamicCache() string { return "mastery-dynamic-" + w.version }

// State returns the current lifecycle phase.
func (w *Worker) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Claimed reports whether the worker has taken control of clients.
func (w *Worker) Claimed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.claimed
}

// Subscribe returns a channel receiving worker notifications, currently only
// UpdatedMessage after activation. The channel is buffered; a subscriber
// that never drains simply misses later messages.
func (w *Worker) Subscribe() <-chan string {
	ch := make(chan string, 1)
	w.mu.Lock()
	w.subs = append(w.subs, ch)
	w.mu.Unlock()
	return ch
}

// Install precaches the app shell into the static cache. All-or-nothing:
// any failed precache fetch aborts the install and the worker stays in the
// installing state. On success the worker is waiting, or active immediately
// if skipWaiting was already requested.
func (w *Worker) Install(ctx context.Context) error {
	static, err := w.storage.Open(w.staticCache())
	if err != nil {
		return fmt.Errorf("install: %w", err)
	}

	for _, u := range PrecacheURLs {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return fmt.Errorf("install %s: %w", u, err)
		}
		resp, err := w.fetcher.Fetch(ctx, req)
		if err != nil {
			return fmt.Errorf("install %s: %w", u, err)
		}
		if !resp.OK() {
			return fmt.Errorf("install %s: status %d", u, resp.Status)
		}
		if err := static.Put(u, resp); err != nil {
			return fmt.Errorf("install %s: %w", u, err)
		}
	}

	w.mu.Lock()
	w.state = StateWaiting
	skip := w.skipWaiting
	w.mu.Unlock()

	if skip {
		return w.Activate(ctx)
	}
	return nil
}

// Activate purges every cache that is not the current version pair, claims
// clients, and broadcasts the update notification.
func (w *Worker) Activate(ctx context.Context) error {
	w.mu.Lock()
	if w.state == StateInstalling {
		w.mu.Unlock()
		return ErrNotInstalled
	}
	w.mu.Unlock()

	names, err := w.storage.Names()
	if err != nil {
		return fmt.Errorf("activate: %w", err)
	}
	for _, name := range names {
		if name == w.staticCache() || name == w.dynamicCache() {
			continue
		}
		if err := w.storage.Delete(name); err != nil {
			return fmt.Errorf("activate: purge %s: %w", name, err)
		}
	}

	w.mu.Lock()
	w.state = StateActive
	w.claimed = true
	subs := make([]chan string, len(w.subs))
	copy(subs, w.subs)
	w.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- UpdatedMessage:
		default:
		}
	}
	return nil
}

// SkipWaiting forces a waiting worker to activate now. Called before install
// completes, it marks the worker to activate as soon as install finishes.
func (w *Worker) SkipWaiting(ctx context.Context) error {
	w.mu.Lock()
	w.skipWaiting = true
	waiting := w.state == StateWaiting
	w.mu.Unlock()

	if waiting {
		return w.Activate(ctx)
	}
	return nil
}

// HandleMessage processes a client control message.
func (w *Worker) HandleMessage(ctx context.Context, msg string) error {
	if msg == SkipWaitingMessage {
		return w.SkipWaiting(ctx)
	}
	return nil
}

// Flush waits for in-flight background revalidations. Call on shutdown and
// in tests before asserting on cache contents.
func (w *Worker) Flush() {
	w.revalidations.Wait()
}
