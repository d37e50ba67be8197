package delivery

import (
	"encoding/json"
	"net/http"
)

type InfoHandler struct {
	version string
}

func NewInfoHandler(version string) *InfoHandler {
	return &InfoHandler{version: version}
}

func (h *InfoHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"service": "word2pdf",
		"message": "Word to PDF conversion API",
		"usage":   "POST a Word document (multipart field 'file') to /convert/",
		"version": h.version,
	})
}

func (h *InfoHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
