// Package server provides an HTTP REST server that prepares grammars for
// top-down parsing and keeps a history of the results.
//
// The API, mounted at /api/v1:
//
//	POST   /analyses       - prepare the grammar in the body and store the result.
//	GET    /analyses       - get every stored analysis.
//	GET    /analyses/{id}  - get a stored analysis.
//	DELETE /analyses/{id}  - delete a stored analysis.
//	GET    /info           - get version info on the server and engine.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/dekarrin/prepll/server/api"
	"github.com/dekarrin/prepll/server/dao"
	"github.com/dekarrin/prepll/server/preps"
	"github.com/go-chi/chi/v5"
)

// PrepllServer is an HTTP REST server that prepares grammars. The zero-value
// of a PrepllServer should not be used directly; call New() to get one ready
// for use.
type PrepllServer struct {
	router chi.Router
	db     dao.Store
	api    api.API
}

// New creates a new PrepllServer from the given config. Unset values in cfg
// are given their defaults.
func New(cfg Config) (PrepllServer, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return PrepllServer{}, fmt.Errorf("config: %w", err)
	}

	db, err := cfg.DB.Connect()
	if err != nil {
		return PrepllServer{}, fmt.Errorf("connect DB: %w", err)
	}

	ps := PrepllServer{
		db: db,
		api: api.API{
			Backend: preps.Service{
				DB:      db,
				Options: cfg.Grammar,
			},
		},
	}
	ps.router = newRouter(ps.api)

	return ps, nil
}

// Handler returns the http.Handler that serves every route of the server.
func (ps PrepllServer) Handler() http.Handler {
	return ps.router
}

// Close releases the persistence store of the server.
func (ps PrepllServer) Close() error {
	return ps.db.Close()
}

// ServeForever begins listening on the given address and port for HTTP REST
// client requests. If address is kept as "", it will default to "localhost". If
// port is less than 1, it will default to 8080.
func (ps PrepllServer) ServeForever(address string, port int) {
	if address == "" {
		address = "localhost"
	}
	if port < 1 {
		port = 8080
	}

	listenAddress := fmt.Sprintf("%s:%d", address, port)
	log.Printf("INFO  Listening on %s", listenAddress)
	log.Fatalf("FATAL %v", http.ListenAndServe(listenAddress, ps.router))
}
