package api

import (
	"net/http"

	"github.com/erazemk/artikli/internal/db"
	"github.com/erazemk/artikli/internal/store"
)

// Greeting is returned by GET /.
const Greeting = "Esta é uma API de exemplo com FastAPI e PostgreSQL"

// NewRouter creates the API router with all endpoints registered.
func NewRouter(database *db.DB) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{}
	withSession := SessionMiddleware(store.New(database))

	mux.HandleFunc("GET /{$}", Root)

	mux.Handle("GET /items", withSession(http.HandlerFunc(itemsHandler.List)))
	mux.Handle("GET /items/{id}", withSession(http.HandlerFunc(itemsHandler.Get)))
	mux.Handle("PUT /items/{id}", withSession(http.HandlerFunc(itemsHandler.Update)))
	mux.Handle("DELETE /items/{id}", withSession(http.HandlerFunc(itemsHandler.Delete)))

	return &router{mux: mux}
}

// Root handles GET /.
func Root(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, messageResponse{Message: Greeting})
}

// router answers unmatched requests with a JSON error instead of the
// ServeMux plain-text 404/405.
type router struct {
	mux *http.ServeMux
}

func (rt *router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h, pattern := rt.mux.Handler(r)
	if pattern != "" {
		// ServeMux fills in path values only on its own ServeHTTP.
		rt.mux.ServeHTTP(w, r)
		return
	}

	// Let the mux pick the status (and set Allow for 405), then replace
	// its body.
	capture := &statusCapture{header: w.Header(), status: http.StatusNotFound}
	h.ServeHTTP(capture, r)
	jsonError(w, capture.status, http.StatusText(capture.status))
}

type statusCapture struct {
	header http.Header
	status int
}

func (c *statusCapture) Header() http.Header         { return c.header }
func (c *statusCapture) Write(b []byte) (int, error) { return len(b), nil }
func (c *statusCapture) WriteHeader(code int)        { c.status = code }
