package prompt

import "fmt"

// CodeZeroShot asks for code in the chosen language with no further guidance.
func CodeZeroShot(task string, opts CodeOptions) string {
	return fmt.Sprintf("Write %s code to %s.", opts.Language, task)
}

// CodeDetailedSpecification spells out error handling, comments and usage requirements.
func CodeDetailedSpecification(task string, opts CodeOptions) string {
	return fmt.Sprintf(`Write %s code to %s.

Requirements:
- Include proper error handling
- Add clear comments explaining the logic
- Follow best practices for %s
- Include example usage
- Make the code modular and reusable

Please provide complete, working code.`, opts.Language, task, opts.Language)
}

// CodeStepByStep walks the model through planning before it writes code.
func CodeStepByStep(task string, opts CodeOptions) string {
	return fmt.Sprintf(`Write %s code to %s by following these steps:

Step 1: Plan the overall structure and approach
Step 2: Identify the main components needed
Step 3: Write the core logic with proper error handling
Step 4: Add helper functions if needed
Step 5: Include example usage and comments

Please show your thought process and then provide the complete code.`, opts.Language, task)
}

// CodeRoleBased frames the request as a senior developer in the chosen language.
func CodeRoleBased(task string, opts CodeOptions) string {
	return fmt.Sprintf(`You are a senior %s developer with expertise in writing clean, efficient code.

Task: %s

Please write production-quality %s code that follows best practices, includes proper documentation, and demonstrates professional coding standards.`,
		opts.Language, task, opts.Language)
}
