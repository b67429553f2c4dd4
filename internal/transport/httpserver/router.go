package httpserver

import (
	"github.com/gfranco93/bolsa-monitor/internal/transport/httpserver/middleware"
	"github.com/gorilla/mux"
)

// NewRouter wires all routes of the dashboard service.
func NewRouter(controller *Controller) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logger)

	r.HandleFunc("/health", controller.Health).Methods("GET")

	r.HandleFunc("/", controller.Dashboard).Methods("GET")
	r.HandleFunc("/charts/yield", controller.YieldChart).Methods("GET")
	r.HandleFunc("/charts/distribution", controller.DistributionChart).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/quotes", controller.Quotes).Methods("GET")
	api.HandleFunc("/refresh", controller.Refresh).Methods("POST")
	api.HandleFunc("/report.xlsx", controller.Report).Methods("GET")

	return r
}
