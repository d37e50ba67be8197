package office

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotWordDocument marks validation failures so delivery can answer 400
// instead of 500.
var ErrNotWordDocument = errors.New("file must be a Word document (.doc or .docx)")

// wordMIMEs lists content types we let through to LibreOffice. Plain zip is
// allowed because some DOCX producers confuse the sniffer; OLE storage is
// the legacy .doc container.
var wordMIMEs = []string{
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"application/msword",
	"application/x-ole-storage",
	"application/zip",
}

// ValidateName rejects uploads whose name is not a Word document.
func ValidateName(filename string) error {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".doc", ".docx":
		return nil
	}
	return ErrNotWordDocument
}

type Service struct {
	conv Converter
}

func NewService(conv Converter) *Service {
	return &Service{conv: conv}
}

// Convert sniffs the saved upload and hands it to the configured backend.
func (s *Service) Convert(ctx context.Context, inputPath string, outDir string) (string, error) {
	if err := validateContent(inputPath); err != nil {
		return "", err
	}
	return s.conv.Convert(ctx, inputPath, outDir)
}

func validateContent(path string) error {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("detect content type: %w", err)
	}
	for _, allowed := range wordMIMEs {
		if mt.Is(allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w, got %s", ErrNotWordDocument, mt.String())
}
