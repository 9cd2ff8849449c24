package textsplit

import (
	"strings"
	"testing"
)

func TestSplitShortTextSingleChunk(t *testing.T) {
	chunks := Split("short text", 100, 20)

	if len(chunks) != 1 {
		t.Fatalf("len(chunks) = %d, want 1", len(chunks))
	}
	if chunks[0] != "short text" {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestSplitPrefersSentenceBoundary(t *testing.T) {
	text := strings.Repeat("word ", 30) + "End of sentence. " + strings.Repeat("more ", 40)
	chunks := Split(text, 200, 0)

	if len(chunks) < 2 {
		t.Fatalf("len(chunks) = %d, want >= 2", len(chunks))
	}
	if !strings.HasSuffix(chunks[0], ".") {
		t.Errorf("first chunk does not end at sentence boundary: %q", chunks[0])
	}
}

func TestSplitCoversWholeText(t *testing.T) {
	text := strings.Repeat("abcdefghij", 100)
	chunks := Split(text, 250, 50)

	// Without boundary characters every chunk is exactly chunkSize and each
	// consecutive pair shares the overlap.
	joined := chunks[0]
	for i := 1; i < len(chunks); i++ {
		joined += chunks[i][50:]
	}
	if joined != text {
		t.Error("reassembled chunks do not cover the original text")
	}
}

func TestSplitOverlapLargerThanChunkIsIgnored(t *testing.T) {
	text := strings.Repeat("x", 500)
	chunks := Split(text, 100, 100)

	if len(chunks) != 5 {
		t.Fatalf("len(chunks) = %d, want 5", len(chunks))
	}
}

func TestSplitAlwaysAdvances(t *testing.T) {
	// Periods everywhere force aggressive boundary moves; the splitter must
	// still terminate and cover the text.
	text := strings.Repeat(". ", 1000)
	chunks := Split(text, 100, 90)

	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total < len(text) {
		t.Errorf("chunks cover %d of %d characters", total, len(text))
	}
}
