package rag

import (
	"fmt"
	"strings"
)

// BuildGroundedPrompt assembles the retrieval context and the question into a
// single grounded prompt. The model is instructed to answer only from the
// provided excerpts.
func BuildGroundedPrompt(question string, contexts []string) string {
	var prompt strings.Builder

	prompt.WriteString("You are a document assistant. Answer the question using ONLY the document excerpts below.\n")
	prompt.WriteString("If the excerpts do not contain the answer, say so instead of guessing.\n\n")

	prompt.WriteString("<documents>\n")
	for i, c := range contexts {
		prompt.WriteString(fmt.Sprintf("--- Excerpt %d ---\n", i+1))
		prompt.WriteString(c)
		prompt.WriteString("\n")
	}
	prompt.WriteString("</documents>\n\n")

	prompt.WriteString("Question: ")
	prompt.WriteString(question)

	return prompt.String()
}
