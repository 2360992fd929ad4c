package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/VasudevKishan/todo-api/internal/application/todo"
	"github.com/VasudevKishan/todo-api/internal/domain"
	domerrors "github.com/VasudevKishan/todo-api/internal/domain/errors"
	"github.com/VasudevKishan/todo-api/internal/infrastructure/http/middleware"
)

// TodosHandler handles /mytodos for the authenticated caller.
type TodosHandler struct {
	list     *todo.ListTodos
	get      *todo.GetTodo
	create   *todo.CreateTodo
	update   *todo.UpdateTodo
	delete   *todo.DeleteTodo
	validate *validator.Validate
	log      zerolog.Logger
}

func NewTodosHandler(list *todo.ListTodos, get *todo.GetTodo, create *todo.CreateTodo, update *todo.UpdateTodo, del *todo.DeleteTodo, log zerolog.Logger) *TodosHandler {
	return &TodosHandler{
		list:     list,
		get:      get,
		create:   create,
		update:   update,
		delete:   del,
		validate: newValidator(),
		log:      log,
	}
}

func todoIDParam(r *http.Request) (domain.TodoID, bool) {
	id, err := domain.ParseTodoID(chi.URLParam(r, "todoId"))
	return id, err == nil
}

// writeTodoErr reports a missing target project as 404, unlike the project routes.
func (h *TodosHandler) writeTodoErr(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, domerrors.ErrProjectNotFound) {
		writeErr(w, http.StatusNotFound, "Project not found")
		return
	}
	writeDomainErr(w, h.log, op, err)
}

func (h *TodosHandler) List(w http.ResponseWriter, r *http.Request) {
	caller := middleware.IdentityFromContext(r.Context())
	q := r.URL.Query()
	todos, err := h.list.Execute(r.Context(), todo.ListTodosInput{
		OwnerID:  caller.UserID,
		FilterBy: q.Get("filterBy"),
		Value:    q.Get("value"),
	})
	if err != nil {
		h.writeTodoErr(w, "list todos", err)
		return
	}
	items := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		items = append(items, todoResponse(t))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"todos": items})
}

func (h *TodosHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := todoIDParam(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "Invalid Todo ID")
		return
	}
	caller := middleware.IdentityFromContext(r.Context())
	t, err := h.get.Execute(r.Context(), todo.GetTodoInput{CallerID: caller.UserID, TodoID: id})
	if err != nil {
		h.writeTodoErr(w, "get todo", err)
		return
	}
	writeJSON(w, http.StatusOK, todoResponse(t))
}

func (h *TodosHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title       string `json:"title" validate:"max=200"`
		Description string `json:"description" validate:"max=2000"`
		Starred     bool   `json:"starred"`
		DueAt       string `json:"dueAt"`
		ProjectID   string `json:"projectId"`
	}
	if msg, ok := decodeBody(w, r, h.validate, &body); !ok {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	caller := middleware.IdentityFromContext(r.Context())
	result, err := h.create.Execute(r.Context(), todo.CreateTodoInput{
		OwnerID:     caller.UserID,
		Title:       body.Title,
		Description: body.Description,
		Starred:     body.Starred,
		DueAt:       body.DueAt,
		ProjectID:   body.ProjectID,
	})
	if err != nil {
		h.writeTodoErr(w, "create todo", err)
		return
	}
	writeJSON(w, http.StatusCreated, todoResponse(result.Todo))
}

func (h *TodosHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := todoIDParam(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "Invalid Todo ID")
		return
	}
	var body struct {
		Title       *string `json:"title" validate:"omitempty,max=200"`
		Description *string `json:"description" validate:"omitempty,max=2000"`
		Starred     *bool   `json:"starred"`
		Completed   *bool   `json:"completed"`
		DueAt       *string `json:"dueAt"`
		ProjectID   *string `json:"projectId"`
	}
	if msg, ok := decodeBody(w, r, h.validate, &body); !ok {
		writeErr(w, http.StatusBadRequest, msg)
		return
	}
	caller := middleware.IdentityFromContext(r.Context())
	result, err := h.update.Execute(r.Context(), todo.UpdateTodoInput{
		CallerID:    caller.UserID,
		TodoID:      id,
		Title:       body.Title,
		Description: body.Description,
		Starred:     body.Starred,
		Completed:   body.Completed,
		DueAt:       body.DueAt,
		ProjectID:   body.ProjectID,
	})
	if err != nil {
		h.writeTodoErr(w, "update todo", err)
		return
	}
	writeJSON(w, http.StatusOK, todoResponse(result.Todo))
}

func (h *TodosHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := todoIDParam(r)
	if !ok {
		writeErr(w, http.StatusBadRequest, "Invalid Todo ID")
		return
	}
	caller := middleware.IdentityFromContext(r.Context())
	result, err := h.delete.Execute(r.Context(), todo.DeleteTodoInput{CallerID: caller.UserID, TodoID: id})
	if err != nil {
		h.writeTodoErr(w, "delete todo", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Todo %s with ID %s deleted", result.Todo.Title, result.Todo.ID),
	})
}
