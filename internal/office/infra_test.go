package office

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPdfName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"/tmp/uploads/abc_report.docx", "abc_report.pdf"},
		{"report.doc", "report.pdf"},
		{"/data/noext", "noext.pdf"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, pdfName(tt.input))
	}
}

func TestFindByPrefix(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "abc123_Report (1).pdf"), []byte("%PDF"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other_file.pdf"), []byte("%PDF"), 0o644))

	t.Run("matches the uuid prefix", func(t *testing.T) {
		got := findByPrefix(dir, "/tmp/uploads/abc123_Report.docx")
		assert.Equal(t, filepath.Join(dir, "abc123_Report (1).pdf"), got)
	})

	t.Run("no underscore in the input name", func(t *testing.T) {
		assert.Empty(t, findByPrefix(dir, "/tmp/uploads/report.docx"))
	})

	t.Run("no matching pdf", func(t *testing.T) {
		assert.Empty(t, findByPrefix(dir, "/tmp/uploads/zzz999_report.docx"))
	})
}

func TestNewLibreOfficeConverterMissingBinary(t *testing.T) {
	_, err := NewLibreOfficeConverter("definitely-not-a-real-soffice", time.Minute)
	assert.ErrorContains(t, err, "not found")
}
