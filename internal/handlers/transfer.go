package handlers

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"strings"

	"strainlog/internal/archive"
	applog "strainlog/internal/log"
)

// maxImportBytes bounds uploaded documents.
const maxImportBytes = 32 << 20

// Export downloads every entry and both name lists as one JSON document.
func Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if !requireService(w, r, false) {
		return
	}

	doc, err := service.Export(r.Context())
	if err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	var buf bytes.Buffer
	if err := archive.Encode(&buf, doc); err != nil {
		writeServiceError(w, r, err, false)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": archive.FileName}))
	if _, err := w.Write(buf.Bytes()); err != nil {
		applog.Error(r.Context(), "failed to write export", "error", err)
	}
}

// Import replaces data from an uploaded file or a raw JSON body.
func Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	upload := strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
	asJSON := !upload
	if !requireService(w, r, asJSON) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	var body io.Reader = r.Body
	if upload {
		file, _, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "Choose a file to import.", http.StatusBadRequest)
			return
		}
		defer file.Close()
		body = file
	}

	result, err := service.ImportFrom(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err, asJSON)
		return
	}

	if asJSON {
		writeJSON(w, http.StatusOK, result)
		return
	}
	setFlash(r, "Data imported successfully.")
	redirectToApp(w, r)
}

// Clear deletes every entry and restores the default lists.
func Clear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	asJSON := wantsJSON(r)
	if !requireService(w, r, asJSON) {
		return
	}

	if err := service.Clear(r.Context()); err != nil {
		writeServiceError(w, r, err, asJSON)
		return
	}

	if asJSON {
		writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
		return
	}
	setFlash(r, "All data cleared.")
	redirectToApp(w, r)
}
