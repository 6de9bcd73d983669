package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"inanisgarage/internal/store"
)

func respondJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

// respondStoreError maps the store's error taxonomy onto status codes:
// bad input 400, duplicate id 409, missing record 404, anything else 500.
func respondStoreError(w http.ResponseWriter, err error) {
	var (
		ve *store.ValidationError
		ce *store.ConflictError
		ne *store.NotFoundError
	)
	switch {
	case errors.As(err, &ve):
		http.Error(w, ve.Error(), http.StatusBadRequest)
	case errors.As(err, &ce):
		http.Error(w, ce.Error(), http.StatusConflict)
	case errors.As(err, &ne):
		http.Error(w, ne.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
