package prompt

import "fmt"

// ContentZeroShot asks for content of the given type about topic.
func ContentZeroShot(topic string, opts ContentOptions) string {
	return fmt.Sprintf("Write a %s about %s for %s audience.", opts.Type, topic, opts.Audience)
}

// ContentConstraintBased lists explicit length, tone and structure limits.
func ContentConstraintBased(topic string, opts ContentOptions) string {
	return fmt.Sprintf(`Write a %s about %s with these requirements:
- Target audience: %s
- Length: 200-300 words
- Tone: Professional yet engaging
- Include: Introduction, main points, conclusion
- Must include at least one actionable insight
- Use active voice
- End with a thought-provoking question`, opts.Type, topic, opts.Audience)
}

// ContentRoleBased asks a specialist writer for the content.
func ContentRoleBased(topic string, opts ContentOptions) string {
	return fmt.Sprintf(`You are an expert content creator specializing in %s writing.

Create a compelling %s about %s for %s audience.

Use your professional expertise to craft content that engages, informs, and provides value to the reader.`,
		opts.Type, opts.Type, topic, opts.Audience)
}

// ContentTemplateBased provides a headline/hook/body/conclusion template.
func ContentTemplateBased(topic string, opts ContentOptions) string {
	return fmt.Sprintf(`Create a %s about %s using this template:

HEADLINE: [Attention-grabbing title]

HOOK: [Opening that captures interest]

MAIN CONTENT:
• Point 1: [Key insight with example]
• Point 2: [Supporting information]
• Point 3: [Actionable advice]

CONCLUSION: [Summary and call-to-action]

TARGET AUDIENCE: %s
Please fill in each section thoughtfully.`, opts.Type, topic, opts.Audience)
}
