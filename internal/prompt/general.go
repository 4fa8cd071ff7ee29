package prompt

import (
	"fmt"
	"strings"
)

// ZeroShot asks the model to perform task on input without examples.
func ZeroShot(task, input string) string {
	return fmt.Sprintf(`Task: %s

Input: %s

Please complete this task clearly and accurately.`, task, input)
}

// FewShot precedes input with the labelled examples, in order.
func FewShot(task, input string, examples []Example) string {
	blocks := make([]string, 0, len(examples))
	for _, ex := range examples {
		blocks = append(blocks, fmt.Sprintf("Input: %s\nOutput: %s\n", ex.Input, ex.Output))
	}
	return fmt.Sprintf(`Task: %s

Here are some examples:

%s

Now, please complete this task:
Input: %s
Output:`, task, strings.Join(blocks, "\n"), input)
}

// ChainOfThought asks for explicit step-by-step reasoning about problem.
func ChainOfThought(problem string) string {
	return fmt.Sprintf(`Solve this problem step by step, showing your reasoning clearly:

Problem: %s

Please think through this step by step:
1. First, identify what we know
2. Then, determine what we need to find
3. Next, work through the solution methodically
4. Finally, state your answer clearly

Let's work through this together:`, problem)
}

// RoleBased gives the model a persona. The Context line is omitted when
// context is empty.
func RoleBased(role, task, context string) string {
	contextSection := ""
	if context != "" {
		contextSection = "\nContext: " + context
	}
	return fmt.Sprintf(`You are %s.%s

Task: %s

Please respond from your expertise and perspective as %s. Use your specialized knowledge and approach this task as a professional in this field would.`,
		role, contextSection, task, role)
}

// Template asks for a structured analysis of text using a fixed template.
func Template(text string) string {
	return fmt.Sprintf(`Please analyze the following text using this structured template:

INPUT TEXT: %s

ANALYSIS TEMPLATE:
=================
SUMMARY: [2-3 sentence summary]

KEY POINTS:
• [Point 1]
• [Point 2]
• [Point 3]

TONE & STYLE: [Description of writing style]

MAIN THEMES: [Primary themes identified]

RECOMMENDATIONS: [2-3 actionable suggestions]

TARGET AUDIENCE: [Who this is written for]

EFFECTIVENESS RATING: [1-10 with brief justification]

Please fill out each section of this template based on your analysis.`, text)
}

// Advanced combines a persona, a multi-step process, an output format and
// explicit constraints in one prompt.
func Advanced(text string) string {
	return fmt.Sprintf(`You are an expert content strategist and communication specialist with 10+ years of experience.

TASK: Comprehensive Content Analysis & Strategy

CONTENT TO ANALYZE:
%s

INSTRUCTIONS:
Please follow this multi-step process:

STEP 1 - INITIAL ASSESSMENT
Think through what type of content this is and its apparent purpose.

STEP 2 - DETAILED ANALYSIS
Analyze the content systematically across these dimensions:
- Clarity and readability
- Audience appropriateness
- Persuasiveness and engagement
- Structure and organization
- Call-to-action effectiveness

STEP 3 - STRATEGIC RECOMMENDATIONS
Based on your analysis, provide specific, actionable recommendations.

STEP 4 - IMPLEMENTATION PRIORITY
Rank your recommendations by impact and ease of implementation.

OUTPUT FORMAT:
Present your analysis in a clear, professional report format suitable for stakeholders.

CONSTRAINTS:
- Be specific and actionable
- Support recommendations with reasoning
- Consider both short-term and long-term implications
- Maintain professional tone throughout

Begin your analysis:`, text)
}
