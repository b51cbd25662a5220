package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports backing-store reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter builds the diagnostics router exposing health and metrics.
func NewRouter(db Pinger) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		if err := db.Ping(req.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintln(w, "OK")
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")
	return r
}
