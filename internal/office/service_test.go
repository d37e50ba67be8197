package office

import (
	"archive/zip"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConverter struct {
	out    string
	err    error
	called bool
}

func (f *fakeConverter) Convert(ctx context.Context, inputPath, outDir string) (string, error) {
	f.called = true
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

func TestValidateName(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"report.docx", false},
		{"report.doc", false},
		{"REPORT.DOCX", false},
		{"notes.txt", true},
		{"archive.pdf", true},
		{"noextension", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			err := ValidateName(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNotWordDocument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// writeDocx builds a minimal zip container with a word/ entry, which is what
// the content sniffer keys on.
func writeDocx(t *testing.T, path string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(`<?xml version="1.0"?><document/>`))
	require.NoError(t, err)

	ct, err := zw.Create("[Content_Types].xml")
	require.NoError(t, err)
	_, err = ct.Write([]byte(`<?xml version="1.0"?><Types/>`))
	require.NoError(t, err)

	require.NoError(t, zw.Close())
}

func TestServiceConvert(t *testing.T) {
	t.Run("delegates to the backend for a word document", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "abc_report.docx")
		writeDocx(t, input)

		conv := &fakeConverter{out: filepath.Join(dir, "abc_report.pdf")}
		svc := NewService(conv)

		out, err := svc.Convert(context.Background(), input, dir)
		require.NoError(t, err)
		assert.Equal(t, conv.out, out)
		assert.True(t, conv.called)
	})

	t.Run("rejects a renamed text file before the backend runs", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "abc_report.docx")
		require.NoError(t, os.WriteFile(input, []byte("just some plain text"), 0o644))

		conv := &fakeConverter{}
		svc := NewService(conv)

		_, err := svc.Convert(context.Background(), input, dir)
		assert.ErrorIs(t, err, ErrNotWordDocument)
		assert.False(t, conv.called)
	})

	t.Run("propagates backend failure", func(t *testing.T) {
		dir := t.TempDir()
		input := filepath.Join(dir, "abc_report.docx")
		writeDocx(t, input)

		conv := &fakeConverter{err: errors.New("soffice crashed")}
		svc := NewService(conv)

		_, err := svc.Convert(context.Background(), input, dir)
		assert.ErrorContains(t, err, "soffice crashed")
	})
}
