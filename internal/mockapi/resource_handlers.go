package mockapi

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// The resource handlers are generic over the collection: every record type
// gets the same CRUD surface serving raw Mongo-style documents. The mock
// does not enforce per-role visibility; the hosted backend scopes lists to
// the caller, but the client filters client-side anyway.

func (s *Server) handleList(c collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, http.StatusOK, s.store.list(c))
	}
}

func (s *Server) handleGet(c collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, ok := s.store.get(c, chi.URLParam(r, "id"))
		if !ok {
			respondError(w, r, http.StatusNotFound, "Record not found")
			return
		}
		respondJSON(w, r, http.StatusOK, doc)
	}
}

func (s *Server) handleCreate(c collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			respondError(w, r, http.StatusBadRequest, "Invalid request body")
			return
		}
		respondJSON(w, r, http.StatusCreated, s.store.insert(c, doc))
	}
}

func (s *Server) handleUpdate(c collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			respondError(w, r, http.StatusBadRequest, "Invalid request body")
			return
		}

		updated, ok := s.store.replace(c, chi.URLParam(r, "id"), doc)
		if !ok {
			respondError(w, r, http.StatusNotFound, "Record not found")
			return
		}
		respondJSON(w, r, http.StatusOK, updated)
	}
}

func (s *Server) handleDelete(c collection) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.store.remove(c, chi.URLParam(r, "id")) {
			respondError(w, r, http.StatusNotFound, "Record not found")
			return
		}
		respondJSON(w, r, http.StatusOK, map[string]string{"message": "Deleted"})
	}
}
