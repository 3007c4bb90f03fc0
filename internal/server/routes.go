package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Tomlord1122/todoo-api/internal/domain"
	"github.com/Tomlord1122/todoo-api/internal/service"
)

const maxBodyBytes = 1 << 20

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(instrument)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", s.helloWorldHandler)
	r.Get("/health", s.healthHandler)
	if s.registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}

	r.Route("/todos", func(r chi.Router) {
		r.Post("/", s.createTodoHandler)
		r.Get("/", s.getAllTodosHandler)
		r.Put("/", s.updateTodoHandler)
		r.Delete("/", s.deleteTodoHandler)
	})

	return r
}

func (s *Server) helloWorldHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"Hello": "World"})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func (s *Server) createTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTodoRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	todo, err := s.todoService.CreateTodo(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, "CreateTodo", err)
		return
	}

	respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) getAllTodosHandler(w http.ResponseWriter, r *http.Request) {
	todos, err := s.todoService.GetAllTodos(r.Context())
	if err != nil {
		respondWithServiceError(w, "GetAllTodos", err)
		return
	}

	respondWithJSON(w, http.StatusOK, todos)
}

func (s *Server) updateTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTodoRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	todo, err := s.todoService.UpdateTodo(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, "UpdateTodo", err)
		return
	}

	respondWithJSON(w, http.StatusOK, todo)
}

func (s *Server) deleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req service.DeleteTodoRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	msg, err := s.todoService.DeleteTodo(r.Context(), req)
	if err != nil {
		respondWithServiceError(w, "DeleteTodo", err)
		return
	}

	respondWithJSON(w, http.StatusOK, msg)
}

// decodeJSONBody decodes the request body into dst. On failure it writes a
// 400 (or 413) response and returns false.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	err := decoder.Decode(dst)
	if err == nil {
		return true
	}

	var syntaxError *json.SyntaxError
	var unmarshalTypeError *json.UnmarshalTypeError
	var maxBytesError *http.MaxBytesError
	switch {
	case errors.As(err, &syntaxError):
		msg := fmt.Sprintf("Request body contains badly-formed JSON (at position %d)", syntaxError.Offset)
		respondWithError(w, http.StatusBadRequest, msg)
	case errors.Is(err, io.ErrUnexpectedEOF):
		respondWithError(w, http.StatusBadRequest, "Request body contains badly-formed JSON")
	case errors.As(err, &unmarshalTypeError):
		msg := fmt.Sprintf("Request body contains an invalid value for the %q field (at position %d)", unmarshalTypeError.Field, unmarshalTypeError.Offset)
		respondWithError(w, http.StatusBadRequest, msg)
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Request body contains unknown field %s", fieldName))
	case errors.Is(err, io.EOF):
		respondWithError(w, http.StatusBadRequest, "Request body must not be empty")
	case errors.As(err, &maxBytesError):
		respondWithError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("Request body must not be larger than %d bytes", maxBytesError.Limit))
	default:
		log.Printf("Error decoding request body: %v", err)
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
	}
	return false
}

// respondWithServiceError maps a service error kind onto an HTTP status.
func respondWithServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConnection):
		log.Printf("Error calling %s service: %v", op, err)
		respondWithError(w, http.StatusServiceUnavailable, "Database unavailable")
	case errors.Is(err, domain.ErrAmbiguousResult):
		log.Printf("Data integrity violation in %s: %v", op, err)
		respondWithError(w, http.StatusInternalServerError, err.Error())
	default:
		log.Printf("Error calling %s service: %v", op, err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Error marshaling JSON response: %v", err)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
