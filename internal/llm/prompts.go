package llm

import "fmt"

// Prompt templates for the summarization and extraction stages. Kept together
// so the instruction wording stays easy to audit against pipeline behavior.

const primarySummarySystem = "You are a skilled text summarizer. Create a concise, accurate summary " +
	"that captures the main points and key information from the provided text. " +
	"The summary should be clear, well-structured, and preserve the essential meaning."

const extractFragmentsSystem = "You are a text analysis expert. Extract exactly 10 important phrases or sentences " +
	"VERBATIM from the provided text. These fragments should be direct quotes that can be " +
	"mechanically verified against the original text. Each fragment should be meaningful " +
	"and represent key information. Return only the fragments, one per line, numbered 1-10."

const secondarySummarySystem = "You are a text summarizer. Create a coherent summary based solely on the " +
	"provided text fragments. The summary should synthesize these fragments into " +
	"a clear, logical narrative that captures the main themes and information."

const justificationSystem = "You are a text analysis expert. For the given summary sentence, find a " +
	"VERBATIM quote from the original text that supports or justifies that sentence. " +
	"Return only the exact quote from the original text, nothing else."

func primarySummaryPrompt(text string) string {
	return fmt.Sprintf("Please summarize the following text:\n\n%s", text)
}

func extractFragmentsPrompt(text string) string {
	return fmt.Sprintf("Extract 10 verbatim fragments from this text:\n\n%s", text)
}

func secondarySummaryPrompt(fragmentsList string) string {
	return fmt.Sprintf("Create a summary based on these text fragments:\n\n%s", fragmentsList)
}

func justificationPrompt(sentence, originalText string) string {
	return fmt.Sprintf("Summary sentence: %q\n\nOriginal text: %s\n\nFind a verbatim quote from the original text that supports this summary sentence:", sentence, originalText)
}
