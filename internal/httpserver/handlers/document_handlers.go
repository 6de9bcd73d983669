package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inanisgarage/internal/auth"
	"inanisgarage/internal/files"
	"inanisgarage/internal/mirror"
	"inanisgarage/internal/models"
	"inanisgarage/internal/store"
)

// UploadDocument stores the file locally first — the local copy is
// authoritative — records the document, then enqueues the best-effort cloud
// mirror. An unparseable expiry is accepted as-is; the expiry classifier
// skips what it cannot parse.
func UploadDocument(st *store.Store, fs *files.Storage, mr *mirror.Mirror, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := store.NormalizeRegNo(chi.URLParam(r, "id"))
		if _, ok := st.GetVehicle(id); !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			http.Error(w, "bad multipart form: "+err.Error(), http.StatusBadRequest)
			return
		}
		docType := strings.TrimSpace(r.FormValue("doc_type"))
		if docType == "" {
			http.Error(w, "doc_type required", http.StatusBadRequest)
			return
		}
		file, header, err := r.FormFile("doc_file")
		if err != nil {
			http.Error(w, "doc_file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		ref, err := fs.Save("documents", id, header.Filename, file)
		if err != nil {
			http.Error(w, "file save failed: "+err.Error(), http.StatusInternalServerError)
			return
		}

		doc := models.Document{
			Type:             docType,
			Expiry:           strings.TrimSpace(r.FormValue("expiry")),
			FileURL:          ref,
			OriginalFilename: header.Filename,
			Notes:            strings.TrimSpace(r.FormValue("notes")),
			UploadedBy:       auth.Subject(r.Context()),
		}
		created, err := st.AddDocument(id, doc)
		if err != nil {
			respondStoreError(w, err)
			return
		}
		if p, err := fs.Resolve(ref); err == nil {
			mr.Enqueue(p, filepath.Base(p))
		}
		lg.Infow("document uploaded", "vehicle", id, "type", docType, "by", doc.UploadedBy)
		respondJSON(w, created)
	}
}

func ListDocuments(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := store.NormalizeRegNo(chi.URLParam(r, "id"))
		if _, ok := st.GetVehicle(id); !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		respondJSON(w, orEmptyDocs(st.Documents(id)))
	}
}

// ServeUpload resolves a stored reference back to disk and streams it.
func ServeUpload(fs *files.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ref := "/uploads/" + chi.URLParam(r, "*")
		p, err := fs.Resolve(ref)
		if err != nil {
			http.Error(w, "file missing", http.StatusNotFound)
			return
		}
		http.ServeFile(w, r, p)
	}
}
