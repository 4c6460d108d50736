package router

import (
	"net/http"

	"github.com/BerylCAtieno/pdf-to-json/internal/handlers"
	"github.com/BerylCAtieno/pdf-to-json/internal/middleware"
	"github.com/BerylCAtieno/pdf-to-json/internal/services"
	"github.com/BerylCAtieno/pdf-to-json/internal/utils"

	"github.com/gorilla/mux"
)

func NewRouter(convService services.ConversionService, logger *utils.Logger, maxRequestSize int64) http.Handler {
	r := mux.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Recovery(logger))

	convertHandler := handlers.NewConvertHandler(convService, logger, maxRequestSize)

	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/health", convertHandler.Health).Methods(http.MethodGet)

	// No method matcher: the handler owns the 405 response.
	api.HandleFunc("/convert", convertHandler.Convert)

	return r
}
