package llm

import _ "embed"

var (
	//go:embed prompts/extract.txt
	promptExtract string
	//go:embed prompts/validate.txt
	promptValidate string
)

// ExtractPrompt returns the primary-extraction instruction set.
func ExtractPrompt() string {
	return promptExtract
}

// ValidatePrompt returns the corrector instruction set for the second pass.
func ValidatePrompt() string {
	return promptValidate
}
