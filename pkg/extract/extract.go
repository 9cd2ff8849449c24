package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text pulls plain text out of an uploaded file based on its extension.
// Supported: .pdf, .txt, .md. Anything else is rejected before any external
// call is made.
func Text(filename string, content []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".pdf":
		return fromPDF(content)
	case ".txt", ".md":
		return string(content), nil
	default:
		return "", fmt.Errorf("unsupported file type: %s", ext)
	}
}

func fromPDF(content []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
