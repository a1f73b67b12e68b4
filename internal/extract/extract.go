package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"pulse-backend/internal/shared/storage/object"
)

const (
	mimePDF  = "application/pdf"
	mimeVTT  = "text/vtt"
	mimeText = "text/plain"
)

// FormatVTT, FormatTXT and FormatPDF identify supported transcript formats.
const (
	FormatVTT = "vtt"
	FormatTXT = "txt"
	FormatPDF = "pdf"
)

// DetectFormat maps a mime type and file name to a transcript format.
func DetectFormat(mimeType string, fileName string) (string, error) {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	ext := strings.ToLower(filepath.Ext(fileName))

	switch {
	case clean == mimeVTT || ext == ".vtt":
		return FormatVTT, nil
	case clean == mimePDF || ext == ".pdf":
		return FormatPDF, nil
	case strings.HasPrefix(clean, "text/") || ext == ".txt":
		return FormatTXT, nil
	default:
		return "", fmt.Errorf("unsupported transcript type: mime=%s name=%s", clean, fileName)
	}
}

// Text pulls transcript text from a stored object.
// PDF extraction uses github.com/ledongthuc/pdf; VTT and plain text pass through.
func Text(ctx context.Context, store object.ObjectStore, fileKey string, format string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("extract transcript key=%s format=%s: %w", fileKey, format, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract transcript key=%s format=%s: read: %w", fileKey, format, err)
	}

	text, err := TextFromBytes(ctx, raw, format)
	if err != nil {
		return "", fmt.Errorf("extract transcript key=%s format=%s: %w", fileKey, format, err)
	}
	return text, nil
}

// TextFromBytes extracts transcript text from an in-memory payload.
func TextFromBytes(ctx context.Context, data []byte, format string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	switch format {
	case FormatPDF:
		return extractPDF(data)
	case FormatVTT, FormatTXT:
		return decodePlain(data)
	default:
		return "", fmt.Errorf("unsupported transcript format: %s", format)
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func decodePlain(data []byte) (string, error) {
	// Strip a UTF-8 BOM; Teams VTT exports often carry one.
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	if !utf8.Valid(data) {
		return "", fmt.Errorf("transcript is not valid UTF-8")
	}
	return string(data), nil
}
