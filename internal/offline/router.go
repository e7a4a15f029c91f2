package offline

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const offlineShellHTML = `<!DOCTYPE html><html><head><meta charset="utf-8">` +
	`<meta name="viewport" content="width=device-width,initial-scale=1">` +
	`<title>Offline</title>` +
	`<style>body{background:#0a0a0f;color:#e0e0e0;font-family:system-ui,sans-serif;` +
	`display:flex;align-items:center;justify-content:center;min-height:100vh;margin:0;` +
	`text-align:center}h1{font-size:1.5rem;margin-bottom:0.5rem}p{color:#888;margin-top:0}</style>` +
	`</head><body><div><h1>You are offline</h1>` +
	`<p>Mastery could not load. Connect to the internet and try again.</p>` +
	`</div></body></html>`

// Handle routes one request through the strategy table. The rules are
// evaluated in order and the first match wins:
//
//  1. non-GET — pass through, no interception
//  2. navigation — stale-while-revalidate against the static cache
//  3. font hosts — cache-first, dynamic cache
//  4. /knowledge_base/ — network-first, dynamic cache
//  5. static asset types — cache-first, static cache
//  6. everything else — network-first, dynamic cache
//
// An error is only possible on the passthrough path; every intercepted
// route degrades to a cached or synthetic response instead.
func (w *Worker) Handle(ctx context.Context, req *http.Request) (*Response, error) {
	if req.Method != http.MethodGet {
		return w.fetcher.Fetch(ctx, req)
	}
	if w.State() != StateActive {
		return w.fetcher.Fetch(ctx, req)
	}

	switch {
	case isNavigation(req):
		return w.staleWhileRevalidate(ctx, req), nil
	case isFontHost(req.URL):
		return w.cacheFirst(ctx, req, w.dynamicCache()), nil
	case strings.HasPrefix(req.URL.Path, "/knowledge_base/"):
		return w.networkFirst(ctx, req, w.dynamicCache()), nil
	case isStaticAsset(req.URL):
		return w.cacheFirst(ctx, req, w.staticCache()), nil
	default:
		return w.networkFirst(ctx, req, w.dynamicCache()), nil
	}
}

// staleWhileRevalidate serves the cached shell immediately and refreshes it
// in the background. With no cached copy it blocks on the network, and when
// that also fails it serves the offline shell.
func (w *Worker) staleWhileRevalidate(ctx context.Context, req *http.Request) *Response {
	cache, err := w.storage.Open(w.staticCache())
	if err != nil {
		return w.offlineShell()
	}
	key := cacheKey(req.URL)

	if cached, ok, _ := cache.Match(key); ok {
		// Fire-and-forget refresh. Failures never reach the caller, who
		// already has the cached copy.
		bg := context.WithoutCancel(ctx)
		bgReq := req.Clone(bg)
		w.revalidations.Add(1)
		go func() {
			defer w.revalidations.Done()
			if fresh, err := w.fetcher.Fetch(bg, bgReq); err == nil && fresh.OK() {
				cache.Put(key, fresh)
			}
		}()
		return cached
	}

	fresh, err := w.fetcher.Fetch(ctx, req)
	if err != nil {
		return w.offlineShell()
	}
	if fresh.OK() {
		cache.Put(key, fresh)
	}
	return fresh
}

// cacheFirst serves from the named cache, falling back to the network and
// populating the cache on the way through.
func (w *Worker) cacheFirst(ctx context.Context, req *http.Request, cacheName string) *Response {
	key := cacheKey(req.URL)
	cache, cacheErr := w.storage.Open(cacheName)
	if cacheErr == nil {
		if cached, ok, _ := cache.Match(key); ok {
			return cached
		}
	}

	resp, err := w.fetcher.Fetch(ctx, req)
	if err != nil {
		return notCached()
	}
	if resp.OK() && cacheErr == nil {
		// Store failures (quota, serialization) are swallowed; the caller
		// still gets the fetched response.
		cache.Put(key, resp)
	}
	return resp
}

// networkFirst prefers fresh data and falls back to the last cached copy.
func (w *Worker) networkFirst(ctx context.Context, req *http.Request, cacheName string) *Response {
	key := cacheKey(req.URL)
	cache, cacheErr := w.storage.Open(cacheName)

	resp, err := w.fetcher.Fetch(ctx, req)
	if err == nil {
		if resp.OK() && cacheErr == nil {
			cache.Put(key, resp)
		}
		return resp
	}

	if cacheErr == nil {
		if cached, ok, _ := cache.Match(key); ok {
			return cached
		}
	}
	return notCached()
}

// offlineShell serves the precached app shell, or the built-in offline page
// as a last resort.
func (w *Worker) offlineShell() *Response {
	if cache, err := w.storage.Open(w.staticCache()); err == nil {
		if cached, ok, _ := cache.Match(shellPath); ok {
			return cached
		}
	}
	return &Response{
		Status: http.StatusServiceUnavailable,
		Header: http.Header{"Content-Type": []string{"text/html"}},
		Body:   []byte(offlineShellHTML),
		Source: SourceFallback,
	}
}

// notCached is the synthetic response for a failed network fetch with no
// cached copy.
func notCached() *Response {
	return &Response{Status: http.StatusRequestTimeout, Source: SourceFallback}
}

// cacheKey keys entries by host plus path and query, so same-path resources
// on different hosts (font CDNs) stay distinct while relative app-shell
// paths match the precache manifest.
func cacheKey(u *url.URL) string {
	return u.Host + u.RequestURI()
}

func isNavigation(req *http.Request) bool {
	if req.Header.Get("Sec-Fetch-Mode") == "navigate" {
		return true
	}
	return strings.Contains(req.Header.Get("Accept"), "text/html")
}

func isFontHost(u *url.URL) bool {
	return u.Hostname() == "fonts.googleapis.com" || u.Hostname() == "fonts.gstatic.com"
}

var staticExtensions = []string{".js", ".css", ".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico"}

func isStaticAsset(u *url.URL) bool {
	p := u.Path
	for _, ext := range staticExtensions {
		if strings.HasSuffix(p, ext) {
			return true
		}
	}
	if strings.HasPrefix(p, "/data/") && strings.HasSuffix(p, ".json") {
		return true
	}
	return p == "/manifest.json"
}
