package agent

import (
	"context"
	"fmt"
	"runtime"
	"strings"

	"github.com/ledongthuc/pdf"

	"golang.org/x/sync/errgroup"
)

// ExtractText reads the PDF at pdfPath and returns its plain text content,
// extracting pages concurrently. Failures wrap ErrExtraction.
func ExtractText(ctx context.Context, pdfPath string) (string, error) {
	file, reader, err := pdf.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %w", ErrExtraction, err)
	}
	defer file.Close()

	pageCount := reader.NumPage()
	if pageCount == 0 {
		return "", fmt.Errorf("%w: document has no pages", ErrExtraction)
	}

	texts := make([]string, pageCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(extractWorkerCount(pageCount))

	for i := 1; i <= pageCount; i++ {
		pageNum := i
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			page := reader.Page(pageNum)
			if page.V.IsNull() {
				return nil
			}

			text, err := page.GetPlainText(nil)
			if err != nil {
				return fmt.Errorf("extract page %d: %w", pageNum, err)
			}

			texts[pageNum-1] = text
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}

	combined := strings.TrimSpace(strings.Join(texts, "\n"))
	if combined == "" {
		return "", fmt.Errorf("%w: document contains no extractable text", ErrExtraction)
	}

	return combined, nil
}

func extractWorkerCount(pageCount int) int {
	return max(min(runtime.NumCPU(), pageCount), 1)
}
