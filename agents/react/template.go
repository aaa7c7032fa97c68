package react

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed prompt.tmpl
var promptTemplateContent string

// PromptData contains the data passed to the ReAct prompt template.
type PromptData struct {
	// Tools is the tool listing, one "name: description" line per tool.
	Tools string

	// ToolNames is the comma separated list of tool names.
	ToolNames string

	// FormatInstructions is the output format block from the parser.
	FormatInstructions string

	// Question is the user's question.
	Question string

	// Scratchpad is the formatted transcript of previous iterations.
	Scratchpad string
}

// DefaultPromptTemplate is the default ReAct prompt.
// Users can replace it via Agent.WithPromptTemplate().
var DefaultPromptTemplate = template.Must(
	template.New("react_prompt").Parse(promptTemplateContent),
)

// ExecuteTemplate executes a template with the given data and returns the result.
func ExecuteTemplate(tmpl *template.Template, data PromptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
