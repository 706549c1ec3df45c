package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/daybookhq/daybook-backend/internal/repository"
	"github.com/daybookhq/daybook-backend/internal/validation"
)

const requestTimeout = 5 * time.Second

// Store is the collection surface a resource handler needs. Satisfied by
// repository.Collection and by fakes in tests.
type Store[T any] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (T, error)
	Insert(ctx context.Context, doc T) (primitive.ObjectID, error)
	Replace(ctx context.Context, id primitive.ObjectID, doc T) (matched, modified int64, err error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
}

// Resource serves the five CRUD operations for one collection. The same
// handler shape is shared by all resources; only the labels, the rule set and
// the document builder differ.
type Resource[T any] struct {
	label      string // singular, capitalized, used in response messages
	plural     string // lowercase, used in list error messages
	store      Store[T]
	rules      validation.RuleSet
	build      func(body map[string]interface{}, createdAt time.Time) T
	createdAt  func(doc T) time.Time
	idInCreate bool // entries and comments return the generated id on create
}

type messageResponse struct {
	Message string `json:"message"`
}

type createdResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

type validationResponse struct {
	Errors validation.Errors `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// List returns every document in the collection. Always 200, even when empty.
func (rs *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	docs, err := rs.store.FindAll(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: fmt.Sprintf("Error retrieving %s", rs.plural),
			Error:   err.Error(),
		})
		return
	}
	if docs == nil {
		docs = []T{}
	}
	writeJSON(w, http.StatusOK, docs)
}

// Get returns a single document by id.
func (rs *Resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := rs.objectID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	doc, err := rs.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, messageResponse{
			Message: fmt.Sprintf("%s not found", rs.label),
		})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: fmt.Sprintf("Error retrieving %s", strings.ToLower(rs.label)),
			Error:   err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Create validates the body, builds the document with a server-assigned
// createdAt and inserts it. The repository is never reached when validation
// fails.
func (rs *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	body, ok := rs.decodeBody(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	doc := rs.build(body, time.Now())
	id, err := rs.store.Insert(ctx, doc)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: fmt.Sprintf("Error creating %s", strings.ToLower(rs.label)),
			Error:   err.Error(),
		})
		return
	}

	message := fmt.Sprintf("%s created", rs.label)
	if rs.idInCreate {
		writeJSON(w, http.StatusCreated, createdResponse{Message: message, ID: id.Hex()})
		return
	}
	writeJSON(w, http.StatusCreated, messageResponse{Message: message})
}

// Update replaces the stored document. The original creation time is carried
// over from the stored document, so replaying an identical body modifies
// nothing and maps to 404 like a missing id does.
func (rs *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	body, ok := rs.decodeBody(w, r)
	if !ok {
		return
	}
	id, ok := rs.objectID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	notFound := messageResponse{
		Message: fmt.Sprintf("%s not found or no changes made", rs.label),
	}

	existing, err := rs.store.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: fmt.Sprintf("Error updating %s", strings.ToLower(rs.label)),
			Error:   err.Error(),
		})
		return
	}

	doc := rs.build(body, rs.createdAt(existing))
	_, modified, err := rs.store.Replace(ctx, id, doc)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: fmt.Sprintf("Error updating %s", strings.ToLower(rs.label)),
			Error:   err.Error(),
		})
		return
	}
	if modified == 0 {
		writeJSON(w, http.StatusNotFound, notFound)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("%s updated", rs.label),
	})
}

// Delete removes a document by id. A repeat delete returns 404.
func (rs *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := rs.objectID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	deleted, err := rs.store.Delete(ctx, id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Message: fmt.Sprintf("Error deleting %s", strings.ToLower(rs.label)),
			Error:   err.Error(),
		})
		return
	}
	if deleted == 0 {
		writeJSON(w, http.StatusNotFound, messageResponse{
			Message: fmt.Sprintf("%s not found", rs.label),
		})
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("%s deleted", rs.label),
	})
}

// objectID parses the {id} URL parameter. A malformed id is a client error.
func (rs *Resource[T]) objectID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{
			Message: fmt.Sprintf("Invalid %s id", strings.ToLower(rs.label)),
		})
		return primitive.NilObjectID, false
	}
	return id, true
}

// decodeBody decodes the request body into a field map and runs the rule set
// against it. On failure it writes the response and returns ok=false.
func (rs *Resource[T]) decodeBody(w http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	var body map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "Invalid request body"})
		return nil, false
	}
	if errs := rs.rules.Apply(body); len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, validationResponse{Errors: errs})
		return nil, false
	}
	return body, true
}

// Body field readers used by the document builders. Unknown or mistyped
// fields read as zero values, so nothing undeclared reaches the store.

func stringField(body map[string]interface{}, name string) string {
	s, _ := body[name].(string)
	return s
}

func stringSliceField(body map[string]interface{}, name string) []string {
	values, ok := body[name].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func dateField(body map[string]interface{}, name string) (time.Time, bool) {
	s, ok := body[name].(string)
	if !ok || s == "" {
		return time.Time{}, false
	}
	t, err := validation.ParseDate(s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
