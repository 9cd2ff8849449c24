package similarity

import (
	"fmt"
	"regexp"
	"strconv"
)

// Method identifies how comparison scores are computed, carried in every
// comparison log entry.
const Method = "embedding_cosine"

// veryGoodMatch stops scanning further members of a bucket once one of them
// already clears it.
const veryGoodMatch = 0.9

// Member is a previously placed document inside a bucket.
type Member struct {
	DocId     string
	Filename  string
	Embedding []float32
}

// Bucket is an existing similarity folder with its members, ordered by
// creation.
type Bucket struct {
	Name    string
	Members []Member
}

// Comparison mirrors the wire shape of one decision-log entry.
type Comparison struct {
	Doc1Id     string  `json:"doc1_id"`
	Doc1Name   string  `json:"doc1_name"`
	Doc2Id     string  `json:"doc2_id"`
	Doc2Name   string  `json:"doc2_name"`
	Similarity float64 `json:"similarity"`
	Method     string  `json:"method"`
	Model      string  `json:"model"`
	Folder     string  `json:"folder"`
	Decision   string  `json:"decision"`
}

// DecisionLog is the structured record of one placement decision, returned to
// the caller verbatim.
type DecisionLog struct {
	Threshold       float64      `json:"threshold"`
	Comparisons     []Comparison `json:"comparisons"`
	FoldersChecked  []string     `json:"folders_checked"`
	FinalFolder     string       `json:"final_folder"`
	IsNewFolder     bool         `json:"is_new_folder"`
	PlacementReason string       `json:"placement_reason"`
}

// Placement is the outcome of Place.
type Placement struct {
	Folder      string
	IsNewFolder bool
	Logs        *DecisionLog
}

// Place decides which bucket a new document joins. A bucket's score is the
// maximum similarity to any of its members; the document joins the
// best-scoring bucket when that score reaches the threshold (inclusive),
// otherwise a new bucket is created. Ties go to the bucket created first,
// which is the scan order. The decision is a pure function of its inputs.
func Place(filename string, embedding []float32, buckets []Bucket, threshold float64, model string) Placement {
	logs := &DecisionLog{
		Threshold:      threshold,
		Comparisons:    []Comparison{},
		FoldersChecked: []string{},
	}

	for _, b := range buckets {
		logs.FoldersChecked = append(logs.FoldersChecked, b.Name)
	}

	if len(buckets) == 0 {
		logs.FinalFolder = "bucket1"
		logs.IsNewFolder = true
		logs.PlacementReason = "First document in session"
		return Placement{Folder: "bucket1", IsNewFolder: true, Logs: logs}
	}

	bestScore := 0.0
	bestBucket := ""
	bestDocName := ""

	for _, bucket := range buckets {
		for _, member := range bucket.Members {
			score := Cosine(embedding, member.Embedding)

			decision := "Not a match"
			if score >= threshold {
				decision = "Match found"
			}
			logs.Comparisons = append(logs.Comparisons, Comparison{
				Doc1Id:     "new_document",
				Doc1Name:   filename,
				Doc2Id:     member.DocId,
				Doc2Name:   member.Filename,
				Similarity: score,
				Method:     Method,
				Model:      model,
				Folder:     bucket.Name,
				Decision:   decision,
			})

			// Strictly-greater keeps ties on the earliest-created bucket.
			if score > bestScore {
				bestScore = score
				bestBucket = bucket.Name
				bestDocName = member.Filename
			}

			if score > veryGoodMatch {
				break
			}
		}
	}

	if bestBucket != "" && bestScore >= threshold {
		logs.FinalFolder = bestBucket
		logs.IsNewFolder = false
		logs.PlacementReason = fmt.Sprintf("Similar to document '%s' with score %.2f", bestDocName, bestScore)
		return Placement{Folder: bestBucket, IsNewFolder: false, Logs: logs}
	}

	newBucket := NextBucketName(logs.FoldersChecked)
	logs.FinalFolder = newBucket
	logs.IsNewFolder = true
	if bestScore > 0 {
		logs.PlacementReason = fmt.Sprintf(
			"Best match was %.2f with document in '%s' bucket, below threshold of %v",
			bestScore, bestBucket, threshold)
	} else {
		logs.PlacementReason = "No similar documents found"
	}
	return Placement{Folder: newBucket, IsNewFolder: true, Logs: logs}
}

var bucketPattern = regexp.MustCompile(`bucket(\d+)`)

// NextBucketName continues the bucketN sequence past the highest existing
// number, ignoring names that do not match the pattern.
func NextBucketName(existing []string) string {
	highest := 0
	for _, name := range existing {
		match := bucketPattern.FindStringSubmatch(name)
		if match == nil {
			continue
		}
		if n, err := strconv.Atoi(match[1]); err == nil && n > highest {
			highest = n
		}
	}
	return fmt.Sprintf("bucket%d", highest+1)
}
