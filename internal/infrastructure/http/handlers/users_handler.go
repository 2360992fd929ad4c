package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/VasudevKishan/todo-api/internal/application/user"
	"github.com/VasudevKishan/todo-api/internal/domain"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/http/middleware"
)

// UsersHandler handles /users. Registration is public; the rest requires JWT auth.
type UsersHandler struct {
	create   *user.CreateUser
	list     *user.ListUsers
	update   *user.UpdateUser
	delete   *user.DeleteUser
	validate *validator.Validate
	log      zerolog.Logger
}

// NewUsersHandler creates a handler for user resource endpoints.
func NewUsersHandler(create *user.CreateUser, list *user.ListUsers, update *user.UpdateUser, del *user.DeleteUser, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{
		create:   create,
		list:     list,
		update:   update,
		delete:   del,
		validate: newValidator(),
		log:      log,
	}
}

// Create handles POST /users.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"max=64"`
		Email    string `json:"email" validate:"max=254"`
		Password string `json:"password" validate:"max=72"`
	}
	if msg, ok := decodeBody(w, r, h.validate, &body); !ok {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	result, err := h.create.Execute(r.Context(), user.CreateUserInput{
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "user.signup", "", false, err.Error())
		writeDomainErr(w, h.log, "create user", err)
		return
	}
	AuditLog(h.log, r, "user.signup", result.User.ID.String(), true, "")
	writeJSON(w, http.StatusCreated, userResponse(result.User))
}

// List handles GET /users?limit=&offset=. Requires the Admin role.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	var in user.ListUsersInput
	if l := r.URL.Query().Get("limit"); l != "" {
		if n, err := strconv.Atoi(l); err == nil && n > 0 {
			in.Limit = n
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if n, err := strconv.Atoi(o); err == nil && n >= 0 {
			in.Offset = n
		}
	}
	users, err := h.list.Execute(r.Context(), in)
	if err != nil {
		writeDomainErr(w, h.log, "list users", err)
		return
	}
	items := make([]UserResponse, 0, len(users))
	for _, u := range users {
		items = append(items, userResponse(u))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"users": items})
}

// Update handles PATCH /users with the target id in the body.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID       string   `json:"id" validate:"required"`
		Username *string  `json:"username" validate:"omitempty,max=64"`
		Email    *string  `json:"email" validate:"omitempty,max=254"`
		Password *string  `json:"password" validate:"omitempty,max=72"`
		Roles    []string `json:"roles"`
	}
	if msg, ok := decodeBody(w, r, h.validate, &body); !ok {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	id, err := domain.ParseUserID(body.ID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	result, err := h.update.Execute(r.Context(), user.UpdateUserInput{
		Caller:   middleware.IdentityFromContext(r.Context()),
		ID:       id,
		Username: body.Username,
		Email:    body.Email,
		Password: body.Password,
		Roles:    body.Roles,
	})
	if err != nil {
		writeDomainErr(w, h.log, "update user", err)
		return
	}
	writeJSON(w, http.StatusOK, userResponse(result.User))
}

// Delete handles DELETE /users with the target id in the body. Requires the Admin role.
func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id" validate:"required"`
	}
	if msg, ok := decodeBody(w, r, h.validate, &body); !ok {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	id, err := domain.ParseUserID(body.ID)
	if err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid user ID")
		return
	}
	result, err := h.delete.Execute(r.Context(), user.DeleteUserInput{ID: id})
	if err != nil {
		writeDomainErr(w, h.log, "delete user", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("User %s with ID %s deleted", result.User.Username, result.User.ID),
	})
}
