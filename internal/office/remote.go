package office

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// RemoteConverter hands the document to an external conversion service over
// HTTP instead of a local soffice install. Used when the app runs somewhere
// LibreOffice can't be installed next to it.
type RemoteConverter struct {
	URL string
}

func NewRemoteConverter(url string) *RemoteConverter {
	return &RemoteConverter{URL: url}
}

func (c *RemoteConverter) Convert(
	ctx context.Context,
	inputPath string,
	outDir string,
) (string, error) {

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", err
	}

	log.Printf("[office.remote] sending %d bytes to %s", len(data), c.URL)

	req, err := http.NewRequestWithContext(ctx, "POST", c.URL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("X-Filename", filepath.Base(inputPath))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("remote converter: %w", err)
	}
	defer resp.Body.Close()

	log.Printf("[office.remote] status: %d", resp.StatusCode)

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("remote converter status %d: %s", resp.StatusCode, string(body))
	}

	out := filepath.Join(outDir, pdfName(inputPath))

	f, err := os.Create(out)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(out)
		return "", fmt.Errorf("remote converter: %w", err)
	}

	return out, f.Close()
}
