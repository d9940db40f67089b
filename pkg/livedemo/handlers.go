package livedemo

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/blake2b"
)

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var item Item
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if item.Key == "" {
		http.Error(w, "key must not be empty", http.StatusBadRequest)
		return
	}
	s.mu.Lock()
	s.items.AddOrUpdate(item)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	s.mu.Lock()
	removed := s.items.RemoveKey(key)
	s.mu.Unlock()
	if !removed {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	snapshot := s.items.Snapshot()
	s.mu.Unlock()
	body, err := json.Marshal(snapshot)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Fingerprint the snapshot into an ETag via blake2b, the same "derive a
	// stable token from domain data through x/crypto" shape as the
	// password-hashing call sites elsewhere in this dependency, just swapped
	// from a KDF to a plain hash since there is no passphrase here.
	sum := blake2b.Sum256(body)
	w.Header().Set("ETag", fmt.Sprintf(`"%x"`, sum))
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}
