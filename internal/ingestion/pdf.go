package ingestion

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrPDFToolMissing is returned when no PDF text extractor is installed
var ErrPDFToolMissing = errors.New("neither pdftotext nor ghostscript available. Please install poppler-utils (pdftotext) or ghostscript")

// pdfText extracts the text of a PDF, one line per text line with pages
// separated by newlines.
// It tries pdftotext first, then falls back to ghostscript.
func pdfText(content []byte) (string, error) {
	tmp, err := os.CreateTemp("", "keyword-matcher-*.pdf")
	if err != nil {
		return "", fmt.Errorf("failed to stage pdf: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to stage pdf: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to stage pdf: %w", err)
	}

	var toolErrs []error
	for _, extract := range []func(string) (string, error){textWithPdftotext, textWithGhostscript} {
		text, err := extract(tmp.Name())
		if err == nil {
			return text, nil
		}
		if errors.Is(err, exec.ErrNotFound) {
			continue
		}
		toolErrs = append(toolErrs, err)
	}

	if len(toolErrs) == 0 {
		return "", ErrPDFToolMissing
	}
	return "", errors.Join(toolErrs...)
}

// textWithPdftotext uses pdftotext (from poppler-utils)
func textWithPdftotext(pdfPath string) (string, error) {
	cmd := exec.Command("pdftotext", "-enc", "UTF-8", pdfPath, "-")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext command failed: %w", err)
	}

	// pages are separated by form feeds
	return strings.ReplaceAll(string(output), "\f", "\n"), nil
}

// textWithGhostscript uses the ghostscript txtwrite device
func textWithGhostscript(pdfPath string) (string, error) {
	cmd := exec.Command("gs", "-q", "-dNOPAUSE", "-dBATCH", "-dSAFER", "-sDEVICE=txtwrite", "-sOutputFile=-", pdfPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	output, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("ghostscript command failed: %w: %s", err, msg)
		}
		return "", fmt.Errorf("ghostscript command failed: %w", err)
	}

	return string(output), nil
}
