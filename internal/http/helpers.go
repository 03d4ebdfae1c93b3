package http

import "net/http"

// middleware wraps a handler.
type middleware func(http.Handler) http.Handler

// chain applies mws so that the first one is the outermost.
func chain(h http.Handler, mws ...middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// notFound answers unknown paths with a JSON 404.
func notFound(w http.ResponseWriter, r *http.Request) {
	NotFoundError("no such endpoint: " + r.URL.Path).Write(w)
}
