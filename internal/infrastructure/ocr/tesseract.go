package ocr

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/tavalos/papeleo/internal/core/domain"
	"github.com/tavalos/papeleo/internal/core/ports"
)

// Tesseract is the local, free acquisition provider. PDFs with an
// embedded text layer skip OCR entirely; scanned PDFs are rasterized
// with pdftoppm and each page goes through the tesseract binary.
type Tesseract struct {
	binPath      string
	pdftoppmPath string
	languages    string
}

func NewTesseract(binPath, pdftoppmPath, languages string) *Tesseract {
	if binPath == "" {
		binPath = "tesseract"
	}
	if pdftoppmPath == "" {
		pdftoppmPath = "pdftoppm"
	}
	if languages == "" {
		languages = "spa"
	}
	return &Tesseract{binPath: binPath, pdftoppmPath: pdftoppmPath, languages: languages}
}

func (t *Tesseract) Recognize(ctx context.Context, doc *domain.Document, data io.Reader) (*ports.RecognizedText, error) {
	raw, err := io.ReadAll(data)
	if err != nil {
		return nil, fmt.Errorf("read document bytes: %w", err)
	}

	var text string
	if isPDF(doc.MimeType, raw) {
		text, err = t.recognizePDF(ctx, raw)
	} else {
		text, err = t.recognizeImage(ctx, raw, imageExt(doc.Filename))
	}
	if err != nil {
		return nil, err
	}

	return &ports.RecognizedText{
		Text: text,
		Acquisition: domain.Acquisition{
			Provider:   string(domain.OCRTesseract),
			Confidence: domain.OCRTesseract.NominalConfidence(),
			Cost:       domain.OCRTesseract.CostPerPage(),
		},
	}, nil
}

func (t *Tesseract) recognizePDF(ctx context.Context, raw []byte) (string, error) {
	if text := pdfTextLayer(raw); strings.TrimSpace(text) != "" {
		return text, nil
	}

	tmpDir, err := os.MkdirTemp("", "papeleo-ocr-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "input.pdf")
	if err := os.WriteFile(pdfPath, raw, 0o600); err != nil {
		return "", fmt.Errorf("write temp pdf: %w", err)
	}

	pages, err := t.rasterize(ctx, tmpDir, pdfPath)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	for _, page := range pages {
		pageText, err := t.runTesseract(ctx, page)
		if err != nil {
			return "", err
		}
		out.WriteString(pageText)
		out.WriteString("\n")
	}
	return out.String(), nil
}

func (t *Tesseract) recognizeImage(ctx context.Context, raw []byte, ext string) (string, error) {
	tmp, err := os.CreateTemp("", "papeleo-ocr-*"+ext)
	if err != nil {
		return "", fmt.Errorf("create temp image: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp image: %w", err)
	}
	return t.runTesseract(ctx, tmp.Name())
}

func (t *Tesseract) rasterize(ctx context.Context, dir, pdfPath string) ([]string, error) {
	prefix := filepath.Join(dir, "page")
	cmd := exec.CommandContext(ctx, t.pdftoppmPath, "-png", "-r", "300", pdfPath, prefix)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	pages, err := filepath.Glob(prefix + "*.png")
	if err != nil {
		return nil, fmt.Errorf("glob rendered pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("pdftoppm produced no pages")
	}
	sort.Strings(pages)
	return pages, nil
}

func (t *Tesseract) runTesseract(ctx context.Context, imagePath string) (string, error) {
	cmd := exec.CommandContext(ctx, t.binPath, imagePath, "stdout", "-l", t.languages)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// pdfTextLayer pulls the embedded text of a digitally produced PDF. Any
// parse failure reads as an empty layer and the caller falls through to
// rasterized OCR.
func pdfTextLayer(raw []byte) string {
	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return ""
	}
	content, err := reader.GetPlainText()
	if err != nil {
		return ""
	}
	var out bytes.Buffer
	if _, err := io.Copy(&out, content); err != nil {
		return ""
	}
	return out.String()
}

func isPDF(mimeType string, raw []byte) bool {
	if mimeType == "application/pdf" {
		return true
	}
	return bytes.HasPrefix(raw, []byte("%PDF-"))
}

func imageExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp":
		return ext
	}
	return ".png"
}
