package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/services"
)

const maxBodyBytes = 1 << 20

// UserService is what the handlers need from services.UserService.
type UserService interface {
	Configured() bool
	Register(ctx context.Context, name, email, password string) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	ProvisionSchema(ctx context.Context) (*repomanager.SchemaReport, error)
}

// Handler serves the account and admin endpoints.
type Handler struct {
	users  UserService
	logger logging.Logger
}

// NewHandler creates a Handler backed by users.
func NewHandler(users UserService, logger logging.Logger) *Handler {
	return &Handler{users: users, logger: logger}
}

// NewServeMux registers the routes and wraps them with request id, logging
// and recovery middleware. Routes are registered without a method so that
// wrong methods get the JSON 405 body.
func NewServeMux(h *Handler, logger logging.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/register", h.Register)
	mux.HandleFunc("/auth/login", h.Login)
	mux.HandleFunc("/admin/create-table", h.CreateTable)
	mux.HandleFunc("/healthz", h.Health)
	mux.HandleFunc("/", h.NotFound)

	wrapped := recoveryMiddleware(logger, mux)
	wrapped = loggingMiddleware(logger, wrapped)
	wrapped = requestIDMiddleware(wrapped)

	return wrapped
}

// Register handles POST /auth/register.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodPost) || !h.configured(w) {
		return
	}

	var req registerRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err, "Missing required fields")
		return
	}

	writeJSON(w, http.StatusCreated, toAuthResponse(res))
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodPost) || !h.configured(w) {
		return
	}

	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err, "Missing email or password")
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

// CreateTable handles POST /admin/create-table.
func (h *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodPost) || !h.configured(w) {
		return
	}

	report, err := h.users.ProvisionSchema(r.Context())
	if err != nil {
		if errors.Is(err, common.ErrorConfiguration) {
			writeError(w, http.StatusInternalServerError, missingDSNMessage)
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:  "schema provisioning failed",
			Detail: err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, CreateTableResponse{
		Message: "Table created successfully (or already exists)",
		Result:  report,
	})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !h.allow(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Not found")
}

var missingDSNMessage = fmt.Sprintf("%s environment variable is not defined.", common.DatabaseURLEnv)

func (h *Handler) allow(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func (h *Handler) configured(w http.ResponseWriter) bool {
	if h.users.Configured() {
		return true
	}
	writeError(w, http.StatusInternalServerError, missingDSNMessage)
	return false
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// writeServiceError maps service sentinels to status codes. validation is the
// operation-specific message for a missing field.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error, validation string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, validation)
	case errors.Is(err, common.ErrorAlreadyExists):
		writeError(w, http.StatusConflict, "User already exists")
	case errors.Is(err, common.ErrorUnauthorized):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, common.ErrorConfiguration):
		writeError(w, http.StatusInternalServerError, missingDSNMessage)
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
