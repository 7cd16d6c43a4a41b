package api

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterPredictRoutes wires up the generation endpoints on the router.
func RegisterPredictRoutes(router *mux.Router, s *PredictServer) {
	router.HandleFunc("/predict", s.handlePredict).Methods(http.MethodPost)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Use(requestLogger, recoverPanics(func(any) string { return msgInternal }))
}

// RegisterSpamRoutes wires up the spam detection endpoints on the router.
func RegisterSpamRoutes(router *mux.Router, s *SpamServer) {
	router.HandleFunc("/detect-spam", s.handleDetectSpam).Methods(http.MethodPost)
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Use(requestLogger, recoverPanics(func(p any) string { return fmt.Sprint(p) }))
}

func newRouter() *mux.Router {
	router := mux.NewRouter().StrictSlash(true)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return router
}

// Handler returns the routed HTTP handler of the generation service.
func (s *PredictServer) Handler() http.Handler {
	router := newRouter()
	RegisterPredictRoutes(router, s)
	return router
}

// Handler returns the routed HTTP handler of the spam service.
func (s *SpamServer) Handler() http.Handler {
	router := newRouter()
	RegisterSpamRoutes(router, s)
	return router
}
