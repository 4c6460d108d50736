package client

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/pdf-to-json/internal/pdffixture"
)

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invoice.pdf")
	require.NoError(t, os.WriteFile(path, pdffixture.Build("Total: $42"), 0o644))

	doc, err := LoadDocument(path)
	require.NoError(t, err)

	assert.Equal(t, "invoice.pdf", doc.Name)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, strings.HasPrefix(doc.DataURL(), "data:application/pdf;base64,JVBER"))
}

func TestLoadDocumentRejectsDisguisedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain notes, not a pdf"), 0o644))

	_, err := LoadDocument(path)
	assert.ErrorIs(t, err, ErrNotPDF)
}

func TestLoadDocumentMissing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)
}

func TestStripDataURL(t *testing.T) {
	assert.Equal(t, "QUJD", stripDataURL("data:application/pdf;base64,QUJD"))
	assert.Equal(t, "QUJD", stripDataURL("QUJD"))
}
