package similarity

import (
	"testing"
)

func embeddingFor(x, y float64) []float32 {
	return []float32{float32(x), float32(y)}
}

func TestPlaceFirstDocument(t *testing.T) {
	placement := Place("a.txt", embeddingFor(1, 0), nil, 0.7, "test-model")

	if placement.Folder != "bucket1" {
		t.Errorf("Folder = %q, want %q", placement.Folder, "bucket1")
	}
	if !placement.IsNewFolder {
		t.Error("IsNewFolder = false, want true")
	}
	if placement.Logs.PlacementReason != "First document in session" {
		t.Errorf("PlacementReason = %q", placement.Logs.PlacementReason)
	}
	if len(placement.Logs.Comparisons) != 0 {
		t.Errorf("Comparisons = %d, want 0", len(placement.Logs.Comparisons))
	}
}

func TestPlaceJoinsSimilarBucket(t *testing.T) {
	buckets := []Bucket{
		{Name: "bucket1", Members: []Member{
			{DocId: "d1", Filename: "a.txt", Embedding: embeddingFor(1, 0)},
		}},
	}

	placement := Place("b.txt", embeddingFor(1, 0.05), buckets, 0.7, "test-model")

	if placement.Folder != "bucket1" {
		t.Errorf("Folder = %q, want %q", placement.Folder, "bucket1")
	}
	if placement.IsNewFolder {
		t.Error("IsNewFolder = true, want false")
	}
	if placement.Logs.Comparisons[0].Decision != "Match found" {
		t.Errorf("Decision = %q", placement.Logs.Comparisons[0].Decision)
	}
	if placement.Logs.Comparisons[0].Doc1Id != "new_document" {
		t.Errorf("Doc1Id = %q", placement.Logs.Comparisons[0].Doc1Id)
	}
}

func TestPlaceCreatesNewBucketBelowThreshold(t *testing.T) {
	buckets := []Bucket{
		{Name: "bucket1", Members: []Member{
			{DocId: "d1", Filename: "a.txt", Embedding: embeddingFor(1, 0)},
		}},
	}

	// Orthogonal vector, similarity 0.
	placement := Place("b.txt", embeddingFor(0, 1), buckets, 0.7, "test-model")

	if placement.Folder != "bucket2" {
		t.Errorf("Folder = %q, want %q", placement.Folder, "bucket2")
	}
	if !placement.IsNewFolder {
		t.Error("IsNewFolder = false, want true")
	}
	if placement.Logs.PlacementReason != "No similar documents found" {
		t.Errorf("PlacementReason = %q", placement.Logs.PlacementReason)
	}
	if placement.Logs.Comparisons[0].Decision != "Not a match" {
		t.Errorf("Decision = %q", placement.Logs.Comparisons[0].Decision)
	}
}

func TestPlaceReportsBestScoreBelowThreshold(t *testing.T) {
	buckets := []Bucket{
		{Name: "bucket1", Members: []Member{
			{DocId: "d1", Filename: "a.txt", Embedding: embeddingFor(1, 0)},
		}},
	}

	// cos(45deg) ~= 0.71, below a 0.9 threshold but above zero.
	placement := Place("b.txt", embeddingFor(1, 1), buckets, 0.9, "test-model")

	if !placement.IsNewFolder {
		t.Fatal("IsNewFolder = false, want true")
	}
	want := "Best match was 0.71 with document in 'bucket1' bucket, below threshold of 0.9"
	if placement.Logs.PlacementReason != want {
		t.Errorf("PlacementReason = %q, want %q", placement.Logs.PlacementReason, want)
	}
}

// Three documents, two similar and one dissimilar, end up in two buckets.
func TestPlaceClusteringScenario(t *testing.T) {
	threshold := 0.7
	docA := embeddingFor(1, 0)
	docB := embeddingFor(1, 0.1)
	docC := embeddingFor(0, 1)

	first := Place("a.txt", docA, nil, threshold, "test-model")
	if first.Folder != "bucket1" {
		t.Fatalf("first placement = %q, want bucket1", first.Folder)
	}

	buckets := []Bucket{
		{Name: "bucket1", Members: []Member{{DocId: "a", Filename: "a.txt", Embedding: docA}}},
	}
	second := Place("b.txt", docB, buckets, threshold, "test-model")
	if second.Folder != "bucket1" || second.IsNewFolder {
		t.Fatalf("second placement = %q (new=%v), want bucket1 existing", second.Folder, second.IsNewFolder)
	}

	buckets[0].Members = append(buckets[0].Members, Member{DocId: "b", Filename: "b.txt", Embedding: docB})
	third := Place("c.txt", docC, buckets, threshold, "test-model")
	if third.Folder != "bucket2" || !third.IsNewFolder {
		t.Fatalf("third placement = %q (new=%v), want new bucket2", third.Folder, third.IsNewFolder)
	}
}

func TestPlaceTieGoesToEarliestBucket(t *testing.T) {
	shared := embeddingFor(1, 0)
	buckets := []Bucket{
		{Name: "bucket1", Members: []Member{{DocId: "d1", Filename: "a.txt", Embedding: shared}}},
		{Name: "bucket2", Members: []Member{{DocId: "d2", Filename: "b.txt", Embedding: shared}}},
	}

	placement := Place("c.txt", embeddingFor(1, 0.1), buckets, 0.7, "test-model")

	if placement.Folder != "bucket1" {
		t.Errorf("Folder = %q, want bucket1 (earliest created)", placement.Folder)
	}
}

func TestPlaceIsDeterministic(t *testing.T) {
	buckets := []Bucket{
		{Name: "bucket1", Members: []Member{{DocId: "d1", Filename: "a.txt", Embedding: embeddingFor(1, 0.2)}}},
		{Name: "bucket2", Members: []Member{{DocId: "d2", Filename: "b.txt", Embedding: embeddingFor(0.2, 1)}}},
	}

	first := Place("c.txt", embeddingFor(1, 0.3), buckets, 0.7, "test-model")
	for i := 0; i < 10; i++ {
		again := Place("c.txt", embeddingFor(1, 0.3), buckets, 0.7, "test-model")
		if again.Folder != first.Folder || again.Logs.PlacementReason != first.Logs.PlacementReason {
			t.Fatalf("run %d diverged: %q vs %q", i, again.Folder, first.Folder)
		}
	}
}

func TestPlaceLogsEveryFolderChecked(t *testing.T) {
	buckets := []Bucket{
		{Name: "bucket1"},
		{Name: "bucket2"},
		{Name: "bucket3"},
	}

	placement := Place("c.txt", embeddingFor(1, 0), buckets, 0.7, "test-model")

	if len(placement.Logs.FoldersChecked) != 3 {
		t.Fatalf("FoldersChecked = %v", placement.Logs.FoldersChecked)
	}
	if placement.Logs.Threshold != 0.7 {
		t.Errorf("Threshold = %v", placement.Logs.Threshold)
	}
	// Empty buckets cannot match; the next number continues the sequence.
	if placement.Folder != "bucket4" {
		t.Errorf("Folder = %q, want bucket4", placement.Folder)
	}
}

func TestNextBucketName(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"empty", nil, "bucket1"},
		{"sequential", []string{"bucket1", "bucket2"}, "bucket3"},
		{"gap", []string{"bucket1", "bucket5"}, "bucket6"},
		{"ignores non-matching", []string{"archive", "bucket2"}, "bucket3"},
		{"only non-matching", []string{"archive", "misc"}, "bucket1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextBucketName(tt.existing); got != tt.want {
				t.Errorf("NextBucketName(%v) = %q, want %q", tt.existing, got, tt.want)
			}
		})
	}
}
