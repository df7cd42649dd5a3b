// Package docx reads and writes the paragraph text of a Word document.
//
// It is deliberately minimal: the document is treated as a zip archive whose
// word/document.xml member holds an ordered list of <w:p> paragraph
// elements. Opening records the byte span of every paragraph; saving copies
// all untouched spans and archive members verbatim and splices in a
// replacement only where a paragraph's text was changed. An edited paragraph
// keeps its paragraph properties (<w:pPr>, i.e. its style) but collapses its
// runs into a single run carrying the new text, so run-level character
// formatting inside edited paragraphs is not preserved.
//
// Paragraphs nested inside a run (a textbox via <w:txbxContent>) belong to
// their enclosing paragraph's span: textbox text is not part of Text(), and
// editing a paragraph that contains a textbox replaces the textbox along
// with the runs.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Paragraph is one <w:p> element. Text reflects the concatenation of its
// <w:t> runs; SetText marks it for replacement on Save.
type Paragraph struct {
	text  string
	dirty bool

	start   int64 // offset of "<w:p" in document.xml
	openEnd int64 // offset just past the opening tag
	end     int64 // offset just past "</w:p>"
	pPr     []byte
}

func (p *Paragraph) Text() string { return p.text }

func (p *Paragraph) SetText(s string) {
	if s == p.text {
		return
	}
	p.text = s
	p.dirty = true
}

// Document is an opened .docx file. It holds the original archive bytes so
// Save can round-trip every member it does not rewrite.
type Document struct {
	raw    []byte
	docXML []byte
	paras  []*Paragraph
}

// Open reads the .docx at path and indexes its paragraphs.
func Open(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, fmt.Errorf("open docx zip: %w", err)
	}

	var xmlData []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, openErr := f.Open()
			if openErr != nil {
				return nil, fmt.Errorf("open document.xml: %w", openErr)
			}
			xmlData, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return nil, fmt.Errorf("read document.xml: %w", err)
			}
			break
		}
	}
	if len(xmlData) == 0 {
		return nil, fmt.Errorf("word/document.xml not found")
	}

	d := &Document{raw: raw, docXML: xmlData}
	if err := d.index(); err != nil {
		return nil, err
	}
	return d, nil
}

// Paragraphs returns the document's paragraphs in order.
func (d *Document) Paragraphs() []*Paragraph { return d.paras }

// index walks document.xml once, recording the byte span, properties span,
// and visible text of every paragraph.
func (d *Document) index() error {
	decoder := xml.NewDecoder(bytes.NewReader(d.docXML))

	var (
		cur      *Paragraph
		b        strings.Builder
		inText   bool
		pDepth   int // <w:p> elements opened inside cur (textboxes)
		boxDepth int // <w:txbxContent> nesting
		pPrStart int64
	)

	for {
		before := decoder.InputOffset()
		tok, tokenErr := decoder.Token()
		if tokenErr == io.EOF {
			break
		}
		if tokenErr != nil {
			return fmt.Errorf("decode document.xml: %w", tokenErr)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				if cur == nil {
					cur = &Paragraph{start: before, openEnd: decoder.InputOffset()}
					pDepth = 0
					b.Reset()
				} else {
					pDepth++
				}
			case "txbxContent":
				boxDepth++
			case "pPr":
				if cur != nil && cur.pPr == nil && pDepth == 0 {
					pPrStart = before
				}
			case "t":
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "txbxContent":
				boxDepth--
			case "pPr":
				if cur != nil && cur.pPr == nil && pDepth == 0 {
					cur.pPr = d.docXML[pPrStart:decoder.InputOffset()]
				}
			case "t":
				inText = false
			case "p":
				if cur == nil {
					break
				}
				if pDepth > 0 {
					pDepth--
					break
				}
				cur.end = decoder.InputOffset()
				cur.text = b.String()
				d.paras = append(d.paras, cur)
				cur = nil
			}
		case xml.CharData:
			if inText && cur != nil && boxDepth == 0 {
				b.Write(t)
			}
		}
	}
	return nil
}

// Save writes the document, with any paragraph edits applied, to path.
func (d *Document) Save(path string) error {
	newXML := d.renderXML()

	zr, err := zip.NewReader(bytes.NewReader(d.raw), int64(len(d.raw)))
	if err != nil {
		return fmt.Errorf("reopen docx zip: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			w, createErr := zw.Create(f.Name)
			if createErr != nil {
				return fmt.Errorf("create document.xml: %w", createErr)
			}
			if _, err := w.Write(newXML); err != nil {
				return fmt.Errorf("write document.xml: %w", err)
			}
			continue
		}

		w, createErr := zw.CreateHeader(&zip.FileHeader{Name: f.Name, Method: f.Method})
		if createErr != nil {
			return fmt.Errorf("create %s: %w", f.Name, createErr)
		}
		rc, openErr := f.Open()
		if openErr != nil {
			return fmt.Errorf("open %s: %w", f.Name, openErr)
		}
		_, err = io.Copy(w, rc)
		rc.Close()
		if err != nil {
			return fmt.Errorf("copy %s: %w", f.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}

// renderXML produces the new document.xml: untouched paragraph spans copied
// verbatim, dirty paragraphs re-emitted as opening tag + properties + one
// replacement run.
func (d *Document) renderXML() []byte {
	var out bytes.Buffer
	cursor := int64(0)

	for _, p := range d.paras {
		out.Write(d.docXML[cursor:p.start])
		if !p.dirty {
			out.Write(d.docXML[p.start:p.end])
		} else {
			writeEdited(&out, d.docXML[p.start:p.openEnd], p)
		}
		cursor = p.end
	}
	out.Write(d.docXML[cursor:])
	return out.Bytes()
}

func writeEdited(out *bytes.Buffer, openTag []byte, p *Paragraph) {
	// A self-closing <w:p/> must be reopened before runs can be added.
	if bytes.HasSuffix(openTag, []byte("/>")) {
		openTag = append(append([]byte{}, openTag[:len(openTag)-2]...), '>')
	}
	out.Write(openTag)
	out.Write(p.pPr)

	name := elementName(openTag)
	prefix := ""
	if i := strings.IndexByte(name, ':'); i >= 0 {
		prefix = name[:i+1]
	}

	fmt.Fprintf(out, `<%sr><%st xml:space="preserve">`, prefix, prefix)
	xml.EscapeText(out, []byte(p.text))
	fmt.Fprintf(out, `</%st></%sr></%s>`, prefix, prefix, name)
}

// elementName extracts "w:p" from an opening tag like <w:p w14:paraId="…">.
func elementName(openTag []byte) string {
	name := string(openTag[1:])
	for i, r := range name {
		if r == ' ' || r == '>' || r == '\t' || r == '\n' || r == '\r' {
			name = name[:i]
			break
		}
	}
	return name
}
