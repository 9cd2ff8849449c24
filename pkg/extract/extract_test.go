package extract

import (
	"strings"
	"testing"
)

func TestTextPlainFiles(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		content  string
	}{
		{"txt", "notes.txt", "plain text content"},
		{"md", "README.md", "# heading\n\nbody"},
		{"uppercase extension", "NOTES.TXT", "case insensitive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Text(tt.filename, []byte(tt.content))
			if err != nil {
				t.Fatalf("Text() error = %v", err)
			}
			if got != tt.content {
				t.Errorf("Text() = %q, want %q", got, tt.content)
			}
		})
	}
}

func TestTextUnsupportedType(t *testing.T) {
	_, err := Text("image.png", []byte{0x89, 0x50})
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
	if !strings.Contains(err.Error(), "unsupported file type: .png") {
		t.Errorf("error = %q", err.Error())
	}
}

func TestTextCorruptPDF(t *testing.T) {
	_, err := Text("broken.pdf", []byte("not a pdf"))
	if err == nil {
		t.Fatal("expected error for corrupt pdf")
	}
}
