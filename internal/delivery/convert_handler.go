package delivery

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/andresfv/word2pdf/internal/office"
	"github.com/andresfv/word2pdf/internal/storage"
)

type ConvertHandler struct {
	docService office.Converter
	store      *storage.Store
	maxUpload  int64
	log        *logger.ZapLogger
}

func NewConvertHandler(
	docService office.Converter,
	store *storage.Store,
	maxUpload int64,
	log *logger.ZapLogger,
) *ConvertHandler {
	return &ConvertHandler{
		docService: docService,
		store:      store,
		maxUpload:  maxUpload,
		log:        log,
	}
}

func (h *ConvertHandler) Convert(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "invalid multipart", Error: err})
		http.Error(w, "invalid multipart: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "missing file", Error: err})
		http.Error(w, "missing file: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()

	if err := office.ValidateName(header.Filename); err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: "rejected upload " + header.Filename})
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	inputPath, err := h.store.SaveUpload(header.Filename, file)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "failed to save upload", Error: err})
		http.Error(w, "failed to save upload", http.StatusInternalServerError)
		return
	}

	pdfPath, err := h.docService.Convert(r.Context(), inputPath, h.store.OutputDir())
	if err != nil {
		h.store.Remove(inputPath)
		if errors.Is(err, office.ErrNotWordDocument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Log(logger.LogEntry{Level: "error", Message: "conversion failed", Error: err})
		// soffice stderr stays in the logs, clients get a generic message
		http.Error(w, "failed to convert document", http.StatusInternalServerError)
		return
	}
	defer h.store.Remove(inputPath, pdfPath)

	h.servePDF(w, pdfPath, header.Filename)
}

func (h *ConvertHandler) servePDF(w http.ResponseWriter, pdfPath, origName string) {
	f, err := os.Open(pdfPath)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: "failed to open pdf", Error: err})
		http.Error(w, "failed to read converted document", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	stem := strings.TrimSuffix(origName, filepath.Ext(origName))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+stem+`.pdf"`)

	if info, err := f.Stat(); err == nil {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	}

	if _, err := io.Copy(w, f); err != nil {
		// response already started, nothing to send the client
		h.log.Log(logger.LogEntry{Level: "warn", Message: "failed to stream pdf", Error: err})
	}
}
