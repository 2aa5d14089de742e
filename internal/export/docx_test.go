package export

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
)

func readPart(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				t.Fatalf("open %s: %v", name, err)
			}
			defer rc.Close()
			raw, err := io.ReadAll(rc)
			if err != nil {
				t.Fatalf("read %s: %v", name, err)
			}
			return string(raw)
		}
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestBuildMapsHeadingMarkers(t *testing.T) {
	data, err := Build("Analysis", "### Legal Grounds\nBody line.\n## Summary\nMore text.")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	doc := readPart(t, data, "word/document.xml")
	if !strings.Contains(doc, `<w:pStyle w:val="Heading1"/>`) {
		t.Fatalf("title should use Heading1:\n%s", doc)
	}
	if !strings.Contains(doc, "ANALYSIS") {
		t.Fatalf("title should be uppercased")
	}
	if !strings.Contains(doc, `<w:pStyle w:val="Heading3"/>`) || !strings.Contains(doc, "Legal Grounds") {
		t.Fatalf("### lines should map to Heading3")
	}
	if !strings.Contains(doc, `<w:pStyle w:val="Heading2"/>`) || !strings.Contains(doc, "Summary") {
		t.Fatalf("## lines should map to Heading2")
	}
	if strings.Contains(doc, "### ") {
		t.Fatalf("heading markers should be stripped from output")
	}
}

func TestBuildEscapesXML(t *testing.T) {
	data, err := Build("T", "5 < 6 & \"quotes\"")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	doc := readPart(t, data, "word/document.xml")
	if !strings.Contains(doc, "5 &lt; 6 &amp;") {
		t.Fatalf("special characters should be escaped:\n%s", doc)
	}
}

func TestBuildRejectsEmptyText(t *testing.T) {
	if _, err := Build("T", "   "); err == nil {
		t.Fatalf("expected error for empty text")
	}
}

func TestBuildPackageHasRequiredParts(t *testing.T) {
	data, err := Build("", "text")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, part := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml"} {
		readPart(t, data, part)
	}
	// Empty titles fall back to a default.
	if doc := readPart(t, data, "word/document.xml"); !strings.Contains(doc, "LEGAL ANALYSIS") {
		t.Fatalf("expected default title")
	}
}
