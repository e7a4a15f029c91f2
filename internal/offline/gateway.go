package offline

import (
	"net/http"
)

// Gateway exposes the worker as an http.Handler: every incoming request is
// re-issued through the strategy table against the configured origin, so a
// flaky or absent upstream degrades to cached responses.
type Gateway struct {
	Worker *Worker
}

// SourceHeader reports which path served the response.
const SourceHeader = "X-Resource-Source"

func (g *Gateway) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	out, err := http.NewRequestWithContext(r.Context(), r.Method, r.URL.RequestURI(), r.Body)
	if err != nil {
		http.Error(rw, err.Error(), http.StatusBadRequest)
		return
	}
	out.Header = r.Header.Clone()

	resp, err := g.Worker.Handle(r.Context(), out)
	if err != nil {
		http.Error(rw, "upstream unreachable: "+err.Error(), http.StatusBadGateway)
		return
	}

	h := rw.Header()
	for k, vs := range resp.Header {
		h[k] = vs
	}
	h.Set(SourceHeader, string(resp.Source))
	rw.WriteHeader(resp.Status)
	rw.Write(resp.Body)
}
