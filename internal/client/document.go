package client

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

const pdfContentType = "application/pdf"

var ErrNotPDF = errors.New("only PDF files are accepted")

// Document is one user-selected file.
type Document struct {
	Name        string
	ContentType string
	Data        []byte
}

// NewDocument sniffs data and accepts it only if it looks like a PDF.
func NewDocument(name string, data []byte) (*Document, error) {
	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, pdfContentType) {
		return nil, fmt.Errorf("%s: %w (detected %s)", name, ErrNotPDF, contentType)
	}
	return &Document{Name: name, ContentType: pdfContentType, Data: data}, nil
}

// LoadDocument reads a PDF from disk.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return NewDocument(filepath.Base(path), data)
}

// DataURL renders the document the way a browser file reader does.
func (d *Document) DataURL() string {
	return "data:" + d.ContentType + ";base64," + base64.StdEncoding.EncodeToString(d.Data)
}

// stripDataURL returns the payload after the first comma.
func stripDataURL(dataURL string) string {
	if i := strings.IndexByte(dataURL, ','); i >= 0 {
		return dataURL[i+1:]
	}
	return dataURL
}
