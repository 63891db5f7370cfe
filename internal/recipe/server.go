package recipe

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/hammamikhairi/recipedesk/internal/domain"
	"github.com/hammamikhairi/recipedesk/internal/logger"
	"github.com/hammamikhairi/recipedesk/internal/wire"
)

// NewHandler serves the store under /recipes/:
//
//	GET    /recipes/         list, or search with ?q=
//	POST   /recipes/         create
//	GET    /recipes/{id}/    fetch one (200 with empty body when missing)
//	PUT    /recipes/{id}/    update
//	DELETE /recipes/{id}/    delete
func NewHandler(store *MemoryStore, log *logger.Logger) http.Handler {
	h := &handler{store: store, log: log}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /recipes/{$}", h.list)
	mux.HandleFunc("POST /recipes/{$}", h.create)
	mux.HandleFunc("GET /recipes/{id}/{$}", h.get)
	mux.HandleFunc("PUT /recipes/{id}/{$}", h.update)
	mux.HandleFunc("DELETE /recipes/{id}/{$}", h.delete)
	return mux
}

type handler struct {
	store *MemoryStore
	log   *logger.Logger
}

func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	var (
		out []domain.RecipeSummary
		err error
	)
	if r.URL.Query().Has("q") {
		out, err = h.store.Search(r.Context(), r.URL.Query().Get("q"))
	} else {
		out, err = h.store.List(r.Context())
	}
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, out)
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	rec, err := h.store.Get(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		// Clients treat an empty 2xx body as "record vanished".
		w.WriteHeader(http.StatusOK)
		return
	}
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	p, ok := h.decode(w, r)
	if !ok {
		return
	}
	rec, err := h.store.Create(r.Context(), p.Name, p.Procedure, names(p.Ingredients))
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	p, ok := h.decode(w, r)
	if !ok {
		return
	}
	rec, err := h.store.Update(r.Context(), id, p.Name, p.Procedure, names(p.Ingredients))
	if errors.Is(err, domain.ErrNotFound) {
		h.fail(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		h.fail(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		h.fail(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requestBody accepts the client payload; the id in the body is ignored in
// favour of the path.
type requestBody struct {
	Name        string                `json:"name"`
	Procedure   string                `json:"procedure"`
	Ingredients []wire.IngredientName `json:"ingredients"`
}

func (h *handler) decode(w http.ResponseWriter, r *http.Request) (requestBody, bool) {
	var p requestBody
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		h.fail(w, http.StatusBadRequest, err)
		return p, false
	}
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.Procedure) == "" {
		h.fail(w, http.StatusBadRequest, errors.New("name and procedure are required"))
		return p, false
	}
	return p, true
}

func (h *handler) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id < 0 {
		h.fail(w, http.StatusBadRequest, domain.ErrInvalidID)
		return 0, false
	}
	return id, true
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warn("serve: encode response: %v", err)
	}
}

func (h *handler) fail(w http.ResponseWriter, status int, err error) {
	h.log.Debug("serve: %d: %v", status, err)
	h.writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func names(in []wire.IngredientName) []string {
	out := make([]string, 0, len(in))
	for _, ing := range in {
		out = append(out, ing.Name)
	}
	return out
}
