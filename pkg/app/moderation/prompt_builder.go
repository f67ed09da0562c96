package moderation

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/devfest-tools/modgate/pkg/common"
)

var (
	ErrEmptyInput   = errors.New("input cannot be empty")
	ErrInputTooLong = errors.New("input too long")
)

// responseSchema describes the exact output shape demanded from the model:
// three booleans and one bounded string, nothing else.
const responseSchema = `{
  "type": "object",
  "properties": {
    "cocViolation": {
      "type": "boolean",
      "description": "True if violates the community Code of Conduct"
    },
    "nsfw": {
      "type": "boolean",
      "description": "True if contains adult/inappropriate content"
    },
    "rubbish": {
      "type": "boolean",
      "description": "True if spammy, nonsensical, or controversial"
    },
    "feedback": {
      "type": "string",
      "maxLength": 100,
      "description": "Brief explanation (max 100 characters)"
    }
  },
  "required": ["cocViolation", "nsfw", "rubbish", "feedback"],
  "additionalProperties": false
}`

const validExample = `{"cocViolation": false, "nsfw": false, "rubbish": false, "feedback": "Safe content"}`

// PromptBuilder renders the policy-analysis instruction document. Given the
// same template and input the output is byte-identical.
type PromptBuilder struct {
	policyTemplate string
}

func NewPromptBuilder(policyTemplate string) *PromptBuilder {
	return &PromptBuilder{
		policyTemplate: policyTemplate,
	}
}

func (b *PromptBuilder) Build(userInput string) (string, error) {
	trimmed := strings.TrimSpace(userInput)
	if trimmed == "" {
		return "", ErrEmptyInput
	}
	if utf8.RuneCountInString(trimmed) > common.MaxPromptLength {
		return "", ErrInputTooLong
	}

	sanitized := sanitize(trimmed)

	var doc strings.Builder
	doc.WriteString(b.policyTemplate)
	doc.WriteString("\n\nAnalyze the following user text:\n\"")
	doc.WriteString(sanitized)
	doc.WriteString("\"\n\nCRITICAL INSTRUCTIONS:\n")
	doc.WriteString("1. You MUST respond with valid JSON only\n")
	doc.WriteString("2. No explanations, no code blocks, no markdown, no extra text\n")
	doc.WriteString("3. Use double quotes, not single quotes\n")
	doc.WriteString("4. Follow this exact schema structure:\n\n")
	doc.WriteString(responseSchema)
	doc.WriteString("\n\nVALID EXAMPLE:\n")
	doc.WriteString(validExample)
	doc.WriteString("\n\nYour JSON response:")

	return doc.String(), nil
}

// sanitize escapes the characters that would break out of the quoted
// instruction block.
func sanitize(s string) string {
	r := strings.NewReplacer(
		`"`, `\"`,
		"\n", `\n`,
		"\r", `\r`,
	)
	return r.Replace(s)
}
