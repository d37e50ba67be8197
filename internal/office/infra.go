package office

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go"
)

// LibreOfficeConverter shells out to soffice in headless mode. The whole
// DOC/DOCX→PDF translation happens inside LibreOffice; we only stage files
// and pick up the result.
type LibreOfficeConverter struct {
	binary  string
	timeout time.Duration
}

func NewLibreOfficeConverter(binary string, timeout time.Duration) (*LibreOfficeConverter, error) {
	if binary == "" {
		binary = "soffice"
	}
	if _, err := exec.LookPath(binary); err != nil {
		return nil, fmt.Errorf("libreoffice binary %q not found: %w", binary, err)
	}
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	return &LibreOfficeConverter{binary: binary, timeout: timeout}, nil
}

func (c *LibreOfficeConverter) Convert(
	ctx context.Context,
	inputPath string,
	outDir string,
) (string, error) {

	var out string

	// soffice occasionally exits non-zero on a busy host (profile lock,
	// leftover instance), a second run usually goes through
	err := retry.Do(
		func() error {
			var err error
			out, err = c.convertOnce(ctx, inputPath, outDir)
			return err
		},
		retry.Attempts(2),
		retry.Delay(500*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)

	return out, err
}

func (c *LibreOfficeConverter) convertOnce(
	ctx context.Context,
	inputPath string,
	outDir string,
) (string, error) {

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// each run gets its own user profile so parallel conversions don't
	// fight over the default installation lock
	profile, err := os.MkdirTemp("", "soffice-profile-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(profile)

	cmd := exec.CommandContext(
		ctx,
		c.binary,
		"--headless",
		"-env:UserInstallation=file://"+profile,
		"--convert-to", "pdf",
		"--outdir", outDir,
		inputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("soffice: %w: %s", err, strings.TrimSpace(string(output)))
	}

	expected := filepath.Join(outDir, pdfName(inputPath))
	if _, err := os.Stat(expected); err == nil {
		return expected, nil
	}

	// soffice sometimes mangles the output name; fall back to any PDF
	// sharing the upload's uuid prefix
	if found := findByPrefix(outDir, inputPath); found != "" {
		log.Printf("[office] expected %s missing, using %s", expected, found)
		return found, nil
	}

	return "", fmt.Errorf("soffice produced no pdf for %s", filepath.Base(inputPath))
}

// pdfName derives the output name LibreOffice uses: input stem + ".pdf".
func pdfName(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".pdf"
}

func findByPrefix(outDir, inputPath string) string {
	prefix, _, ok := strings.Cut(filepath.Base(inputPath), "_")
	if !ok {
		return ""
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return ""
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), prefix) && strings.HasSuffix(e.Name(), ".pdf") {
			return filepath.Join(outDir, e.Name())
		}
	}
	return ""
}
