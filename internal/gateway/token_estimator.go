package gateway

import (
	"unicode"
)

// TokensPerWord is the approximation ratio (1 word ≈ 1.3 tokens).
const TokensPerWord = 1.3

// Usage is the usage block the stub attaches to chat replies.
type Usage struct {
	InputTokens  int `json:"inputTokens"`
	OutputTokens int `json:"outputTokens"`
}

// EstimateTokens estimates the number of tokens in a text string.
// Uses a lightweight approximation: 1 word ≈ 1.3 tokens.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	// Count words by splitting on whitespace and punctuation
	wordCount := 0
	inWord := false

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if !inWord {
				wordCount++
				inWord = true
			}
		} else {
			inWord = false
		}
	}

	tokens := int(float64(wordCount) * TokensPerWord)
	if tokens == 0 && wordCount > 0 {
		tokens = 1 // Minimum 1 token if there's any text
	}

	return tokens
}

// EstimateUsage estimates token usage for a prompt/reply pair.
func EstimateUsage(prompt, reply string) Usage {
	return Usage{
		InputTokens:  EstimateTokens(prompt),
		OutputTokens: EstimateTokens(reply),
	}
}

// truncateTokens cuts text down to roughly maxTokens tokens, keeping whole words.
// maxTokens <= 0 leaves the text unchanged.
func truncateTokens(text string, maxTokens int) string {
	if maxTokens <= 0 || EstimateTokens(text) <= maxTokens {
		return text
	}

	maxWords := int(float64(maxTokens) / TokensPerWord)
	if maxWords < 1 {
		maxWords = 1
	}

	words := 0
	inWord := false
	for i, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) {
			if !inWord {
				if words == maxWords {
					return text[:i]
				}
				words++
				inWord = true
			}
		} else {
			inWord = false
		}
	}
	return text
}
