package office

import "context"

// Converter turns a Word document on disk into a PDF inside outDir and
// returns the path of the produced file.
type Converter interface {
	Convert(ctx context.Context, inputPath string, outDir string) (string, error)
}
