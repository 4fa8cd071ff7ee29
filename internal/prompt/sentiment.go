package prompt

import (
	"fmt"
	"strings"
)

// DefaultSentimentExamples is the labelled set used for sentiment few-shot
// prompts when the caller supplies none.
var DefaultSentimentExamples = []Example{
	{Input: "I love this product!", Output: "Positive"},
	{Input: "This is terrible quality", Output: "Negative"},
	{Input: "It's okay, nothing special", Output: "Neutral"},
	{Input: "Absolutely amazing experience!", Output: "Positive"},
	{Input: "Worst purchase ever", Output: "Negative"},
}

// SentimentZeroShot classifies text as positive, negative or neutral.
func SentimentZeroShot(text string) string {
	return fmt.Sprintf("Analyze the sentiment of this text and classify it as positive, negative, or neutral:\n\n'%s'", text)
}

// SentimentFewShot lists examples as `"input" → label` lines before text.
func SentimentFewShot(text string, examples []Example) string {
	var sb strings.Builder
	for _, ex := range examples {
		fmt.Fprintf(&sb, "\"%s\" → %s\n", ex.Input, ex.Output)
	}
	return fmt.Sprintf(`Analyze sentiment and classify as positive, negative, or neutral:

Examples:
%s
Text: "%s"
Sentiment:`, sb.String(), text)
}

// SentimentChainOfThought walks through emotional cues before classifying.
func SentimentChainOfThought(text string) string {
	return fmt.Sprintf(`Analyze the sentiment of this text step by step:

Text: "%s"

Step 1: Identify emotional words and phrases
Step 2: Consider overall tone and context
Step 3: Weigh positive vs negative elements
Step 4: Determine final sentiment classification

Let me work through this:`, text)
}

// SentimentRoleBased asks a sentiment specialist for a graded assessment.
func SentimentRoleBased(text string) string {
	return fmt.Sprintf(`You are an expert sentiment analysis specialist with years of experience in natural language processing.

Analyze this text and provide a professional sentiment assessment:
"%s"

Please provide:
- Primary sentiment (positive/negative/neutral)
- Confidence level (1-10)
- Key indicators that led to this classification
- Any nuances or mixed sentiments detected`, text)
}
