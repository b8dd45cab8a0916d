package handler

import (
	"log/slog"
	"net/http"

	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/model"
	"github.com/dnfxyg-commits/fanfei-uav-platform/internal/service"
)

// AuthHandler serves login, bootstrap registration, and admin account
// management.
type AuthHandler struct {
	auth   *service.AuthService
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

// credentialRequest is the payload for login, registration, and account
// creation. Role is ignored by Login and by the bootstrap path, which
// always grants super_admin.
type credentialRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// loginResponse is the payload for a successful login.
type loginResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	ExpiresIn   int        `json:"expires_in"`
	Username    string     `json:"username"`
	Role        model.Role `json:"role"`
}

// Login authenticates an admin account and returns a bearer token.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	admin, token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.auth.TokenTTL().Seconds()),
		Username:    admin.Username,
		Role:        admin.Role,
	})
}

// Register creates the first admin account while the system is
// uninitialized. Once any account exists this endpoint always refuses;
// further accounts go through CreateUser.
// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	if _, err := h.auth.Bootstrap(r.Context(), req.Username, req.Password); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.MessageResponse{
		Success: true,
		Message: "Initial administrator created",
	})
}

// CreateUser creates an additional admin account. Routed behind
// Authenticate and RequireRole(super_admin).
// POST /api/auth/users
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	role := model.RoleAdmin
	if req.Role != "" {
		parsed, err := model.ParseRole(req.Role)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid role: "+req.Role)
			return
		}
		role = parsed
	}

	if _, err := h.auth.CreateAdmin(r.Context(), req.Username, req.Password, role); err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, model.MessageResponse{
		Success: true,
		Message: "User created",
	})
}

// ListUsers returns all admin accounts, newest first, without password
// hashes. Routed behind Authenticate and RequireRole(super_admin).
// GET /api/auth/users
func (h *AuthHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	admins, err := h.auth.ListAdmins(r.Context())
	if err != nil {
		writeServiceError(w, r, h.logger, err)
		return
	}
	if admins == nil {
		admins = []model.Admin{}
	}
	writeJSON(w, http.StatusOK, admins)
}
