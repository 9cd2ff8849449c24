package rag

import (
	"strings"
	"testing"
)

func TestBuildGroundedPrompt(t *testing.T) {
	prompt := BuildGroundedPrompt("What is the revenue?", []string{
		"Revenue grew 12% in Q3.",
		"Costs were flat.",
	})

	if !strings.Contains(prompt, "Question: What is the revenue?") {
		t.Error("prompt missing the question")
	}
	if !strings.Contains(prompt, "--- Excerpt 1 ---") || !strings.Contains(prompt, "--- Excerpt 2 ---") {
		t.Error("prompt missing numbered excerpts")
	}
	if !strings.Contains(prompt, "Revenue grew 12% in Q3.") {
		t.Error("prompt missing excerpt content")
	}
	if strings.Index(prompt, "<documents>") > strings.Index(prompt, "Question:") {
		t.Error("context should come before the question")
	}
}

func TestBuildGroundedPromptNoContexts(t *testing.T) {
	prompt := BuildGroundedPrompt("Anything?", nil)

	if !strings.Contains(prompt, "<documents>") {
		t.Error("prompt missing document framing")
	}
	if !strings.Contains(prompt, "Question: Anything?") {
		t.Error("prompt missing the question")
	}
}
