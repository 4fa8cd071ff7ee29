// Package render produces terminal and document output from schema types.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/wonwomen07/prompt-engineering/internal/schema"
)

// RenderJSON produces a pretty-printed JSON representation of v.
func RenderJSON(v any) ([]byte, error) {
	if v == nil {
		return nil, errors.New("render: nil document")
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "render: json marshal")
	}
	return b, nil
}

// RenderComparisonMarkdown produces a GitHub-flavoured Markdown report of a
// comparison. Entries appear in comparison order; every technique attempted
// appears in the summary table whether it succeeded or not.
func RenderComparisonMarkdown(resp *schema.ComparisonResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder

	sb.WriteString("## Technique Comparison\n\n")
	fmt.Fprintf(&sb, "**Task:** %s  \n", mdEscape(resp.Task))
	fmt.Fprintf(&sb, "**Input:** %s  \n", mdEscape(resp.Input))
	fmt.Fprintf(&sb, "**ID:** `%s`\n\n", resp.ID)

	if len(resp.ComparisonResults) > 0 {
		sb.WriteString("| Technique | Status | Tokens | Model |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, e := range resp.ComparisonResults {
			tokens, model := "-", "-"
			if e.Status == schema.StatusOK {
				if e.TokensUsed != nil {
					tokens = fmt.Sprint(*e.TokensUsed)
				}
				model = e.Model
			}
			fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", e.Technique, e.Status, tokens, mdEscape(model))
		}
		sb.WriteString("\n")
	}

	for _, e := range resp.ComparisonResults {
		fmt.Fprintf(&sb, "<details>\n<summary><strong>%s</strong> [%s]</summary>\n\n", e.Technique, e.Status)
		writePrompt(&sb, e.PromptUsed)
		if e.Error != nil {
			fmt.Fprintf(&sb, "**Error (%s):** %s\n\n", e.Error.Kind, mdEscape(e.Error.Message))
		} else {
			sb.WriteString("**Response:**\n\n")
			sb.WriteString(e.Response)
			sb.WriteString("\n\n")
		}
		sb.WriteString("</details>\n\n")
	}

	return sb.String()
}

// RenderPromptMarkdown produces a Markdown report of one technique call.
func RenderPromptMarkdown(resp *schema.PromptResponse) string {
	if resp == nil {
		return ""
	}
	var sb strings.Builder

	fmt.Fprintf(&sb, "## %s / %s\n\n", resp.Family, resp.ResolvedTechnique)
	if resp.Fallback {
		fmt.Fprintf(&sb, "_Requested technique `%s` is not registered; fell back to `%s`._\n\n",
			resp.Technique, resp.ResolvedTechnique)
	}
	fmt.Fprintf(&sb, "**Model:** %s | **Tokens:** %d\n\n", mdEscape(resp.Model), resp.TokensUsed)
	writePrompt(&sb, resp.PromptUsed)
	sb.WriteString("**Response:**\n\n")
	sb.WriteString(resp.Response)
	sb.WriteString("\n")
	return sb.String()
}

// RenderTechniques produces a Markdown table of every family's techniques.
func RenderTechniques(families []schema.FamilyInfo) string {
	var sb strings.Builder
	sb.WriteString("| Family | Technique | Max tokens | Description |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, f := range families {
		for _, t := range f.Techniques {
			fmt.Fprintf(&sb, "| %s | %s | %d | %s |\n", f.Family, t.ID, t.MaxTokens, mdEscape(t.Description))
		}
	}
	return sb.String()
}

// writePrompt renders a prompt as a fenced block into sb.
func writePrompt(sb *strings.Builder, prompt string) {
	if prompt == "" {
		return
	}
	sb.WriteString("**Prompt:**\n\n```text\n")
	sb.WriteString(prompt)
	sb.WriteString("\n```\n\n")
}

// mdEscape replaces characters that would break Markdown table cells.
func mdEscape(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", "")
	return s
}
