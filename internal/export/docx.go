// Package export renders an analysis back into a downloadable DOCX. The
// document is assembled as a minimal OOXML package: headings follow the
// "###"/"##" markdown convention the pipeline prompts mandate.
package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strings"
)

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:rPr><w:b/><w:sz w:val="36"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:rPr><w:b/><w:sz w:val="30"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:rPr><w:b/><w:sz w:val="26"/></w:rPr></w:style>
</w:styles>`

// Build renders text with the pipeline's heading markers into a DOCX package.
func Build(title, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errors.New("no content provided")
	}
	if strings.TrimSpace(title) == "" {
		title = "Legal Analysis"
	}

	var body strings.Builder
	body.WriteString(headingParagraph("Heading1", strings.ToUpper(title), true))
	for _, line := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(line, "### "):
			body.WriteString(headingParagraph("Heading3", strings.TrimSpace(strings.TrimPrefix(line, "### ")), false))
		case strings.HasPrefix(line, "## "):
			body.WriteString(headingParagraph("Heading2", strings.TrimSpace(strings.TrimPrefix(line, "## ")), false))
		default:
			body.WriteString(textParagraph(line))
		}
	}

	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
		`<w:body>` + body.String() + `</w:body></w:document>`

	return writePackage(map[string]string{
		"[Content_Types].xml":          contentTypesXML,
		"_rels/.rels":                  packageRelsXML,
		"word/_rels/document.xml.rels": documentRelsXML,
		"word/styles.xml":              stylesXML,
		"word/document.xml":            documentXML,
	})
}

func headingParagraph(style, text string, centered bool) string {
	align := ""
	if centered {
		align = `<w:jc w:val="center"/>`
	}
	return `<w:p><w:pPr><w:pStyle w:val="` + style + `"/>` + align + `</w:pPr>` +
		`<w:r><w:t xml:space="preserve">` + escapeXML(text) + `</w:t></w:r></w:p>`
}

func textParagraph(text string) string {
	return `<w:p><w:r><w:rPr><w:sz w:val="24"/></w:rPr>` +
		`<w:t xml:space="preserve">` + escapeXML(text) + `</w:t></w:r></w:p>`
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return ""
	}
	return buf.String()
}

func writePackage(files map[string]string) ([]byte, error) {
	var output bytes.Buffer
	writer := zip.NewWriter(&output)
	// Fixed part order keeps output deterministic.
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/_rels/document.xml.rels", "word/styles.xml", "word/document.xml"} {
		content, ok := files[name]
		if !ok {
			return nil, fmt.Errorf("missing package part %s", name)
		}
		w, err := writer.Create(name)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write([]byte(content)); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return output.Bytes(), nil
}
