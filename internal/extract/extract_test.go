package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestTextFromBytesDocx(t *testing.T) {
	docXML := `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body>` +
		`<w:p><w:r><w:t>First paragraph.</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Second paragraph.</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	data := buildDocx(t, docXML)

	text, err := TextFromBytes(context.Background(), data, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "contract.docx")
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	if !strings.Contains(text, "First paragraph.") || !strings.Contains(text, "Second paragraph.") {
		t.Fatalf("missing paragraph text: %q", text)
	}
	if !strings.Contains(text, "\n") {
		t.Fatalf("expected paragraph breaks in %q", text)
	}
}

func TestTextFromBytesDocxFromZipMime(t *testing.T) {
	data := buildDocx(t, `<w:document><w:body><w:p><w:t>zip-mime docx</w:t></w:p></w:body></w:document>`)

	text, err := TextFromBytes(context.Background(), data, "application/zip", "contract.docx")
	if err != nil {
		t.Fatalf("zip-labelled docx should extract: %v", err)
	}
	if !strings.Contains(text, "zip-mime docx") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestTextFromBytesPlainText(t *testing.T) {
	text, err := TextFromBytes(context.Background(), []byte("  plain body  "), "text/plain; charset=utf-8", "notes.txt")
	if err != nil {
		t.Fatalf("TextFromBytes: %v", err)
	}
	if text != "plain body" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestTextFromBytesUnsupportedImage(t *testing.T) {
	_, err := TextFromBytes(context.Background(), []byte{0x89, 0x50, 0x4e, 0x47}, "image/png", "scan.png")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestTextFromBytesPlainZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if _, err := TextFromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip"); err == nil {
		t.Fatalf("plain zip should not extract")
	}
}
