package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

var ErrEmptyDocument = errors.New("empty PDF document")

// Extractor turns a document buffer into plain text.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// PDFExtractor runs ExtractPDF under a deadline. The parser has no
// cancellation hooks, so on timeout the parse goroutine is abandoned and
// finishes in the background.
type PDFExtractor struct {
	timeout time.Duration
	parse   func([]byte) (string, error)
}

func NewPDFExtractor(timeout time.Duration) *PDFExtractor {
	return &PDFExtractor{timeout: timeout, parse: ExtractPDF}
}

func (e *PDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("PDF extraction aborted: %w", err)
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)

	go func() {
		text, err := e.parse(data)
		done <- result{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("PDF extraction aborted: %w", ctx.Err())
	case r := <-done:
		return r.text, r.err
	}
}

// ExtractPDF returns the plain text of every page, one page per line block.
// A document without any text yields "" and no error.
func ExtractPDF(data []byte) (text string, err error) {
	if len(data) == 0 {
		return "", ErrEmptyDocument
	}

	// the parser panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("failed to parse PDF: %v", r)
		}
	}()

	reader := bytes.NewReader(data)

	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to create PDF reader: %w", err)
	}

	var textBuilder strings.Builder
	numPages := pdfReader.NumPage()

	for i := 1; i <= numPages; i++ {
		page := pdfReader.Page(i)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// keep going, other pages may still be readable
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return cleanText(textBuilder.String()), nil
}
