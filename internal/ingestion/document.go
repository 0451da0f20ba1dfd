package ingestion

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/jonathan/keyword-matcher/internal/fetch"
)

// Format is a document format recognized by extension.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatDOCX Format = "docx"
	FormatPDF  Format = "pdf"
)

// FormatURL marks metadata of documents fetched over HTTP.
const FormatURL Format = "url"

var extensionFormats = map[string]Format{
	".txt":  FormatText,
	".text": FormatText,
	".md":   FormatText,
	".html": FormatHTML,
	".htm":  FormatHTML,
	".docx": FormatDOCX,
	".pdf":  FormatPDF,
}

// DetectFormat maps a file name to its format by extension.
func DetectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}
	return "", &UnsupportedFormatError{Path: path, Extension: ext}
}

func supportedList() string {
	return ".txt, .text, .md, .html, .htm, .docx, .pdf"
}

// IngestFromFile reads a resume or job description from disk and returns its
// cleaned text with metadata.
func IngestFromFile(path string) (string, *Metadata, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return "", nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	return IngestBytes(path, format, content)
}

// IngestBytes extracts and cleans the text of an in-memory document.
func IngestBytes(name string, format Format, content []byte) (string, *Metadata, error) {
	var (
		raw string
		err error
	)
	switch format {
	case FormatText:
		raw, err = decodeText(content)
	case FormatHTML:
		raw, err = fetch.ExtractMainTextFrom(bytes.NewReader(content), fetch.ResumeSelectors())
	case FormatDOCX:
		raw, err = docxText(content)
	case FormatPDF:
		raw, err = pdfText(content)
	default:
		return "", nil, &UnsupportedFormatError{Path: name, Extension: string(format)}
	}
	if err != nil {
		return "", nil, &ExtractionError{Path: name, Format: format, Cause: err}
	}

	cleaned := CleanText(raw)
	if cleaned == "" {
		return "", nil, &ExtractionError{Path: name, Format: format, Cause: ErrEmptyDocument}
	}
	return cleaned, NewMetadata(cleaned, name, format), nil
}

// decodeText converts a plain-text file to UTF-8. A UTF-8 or UTF-16 byte
// order mark selects the encoding, otherwise UTF-8 is assumed.
func decodeText(content []byte) (string, error) {
	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), content)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(decoded), nil
}

// docxText returns the paragraphs of word/document.xml, one per line.
func docxText(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("not a docx archive: %w", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		defer func() { _ = rc.Close() }()
		return wordprocessingText(rc)
	}
	return "", errors.New("word/document.xml not found")
}

// wordprocessingText walks WordprocessingML and keeps run text, breaking
// lines at paragraphs and explicit breaks.
func wordprocessingText(r io.Reader) (string, error) {
	dec := xml.NewDecoder(r)
	var (
		sb     strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("malformed document.xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				sb.WriteByte('\t')
			case "br", "cr":
				sb.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				sb.Write(t)
			}
		}
	}
	return sb.String(), nil
}
