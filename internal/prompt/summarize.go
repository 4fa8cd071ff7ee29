package prompt

import "fmt"

// SummaryZeroShot asks for a summary of the length's descriptive phrase.
func SummaryZeroShot(text string, length Length) string {
	return fmt.Sprintf("Summarize this text in %s:\n\n%s", length.Phrase(), text)
}

// SummaryStructured asks for a main point, supporting details and a
// conclusion.
func SummaryStructured(text string, length Length) string {
	return fmt.Sprintf(`Please summarize the following text using this structure:

TEXT TO SUMMARIZE:
%s

SUMMARY FORMAT:
- Main Point: [Core message in one sentence]
- Key Details: [2-3 supporting points]
- Conclusion: [Final takeaway]

Please provide a %s summary (%s) following this format.`, text, length, length.Phrase())
}

// SummaryChainOfThought builds the summary through explicit reading steps.
func SummaryChainOfThought(text string, length Length) string {
	return fmt.Sprintf(`Summarize this text by thinking through it step by step:

Text: %s

Step 1: Identify the main topic and purpose
Step 2: Extract key supporting points
Step 3: Note any important conclusions or outcomes
Step 4: Synthesize into a coherent %s summary (%s)

Let me work through this systematically:`, text, length, length.Phrase())
}

// SummaryRoleBased asks a professional editor for the summary.
func SummaryRoleBased(text string, length Length) string {
	return fmt.Sprintf(`You are a professional editor and content strategist.

Create a %s summary (%s) of this text that captures the essential information while maintaining clarity and engagement:

%s

As an expert, focus on what readers need to know most.`, length, length.Phrase(), text)
}
