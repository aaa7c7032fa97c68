package tools

import (
	"context"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/reactloop/reactloop"
	lcgtools "github.com/tmc/langchaingo/tools"
)

// TextLengthName is the name the model uses to call TextLength.
const TextLengthName = "get_text_length"

// TextLength returns the length of a text in characters.
//
// Models often wrap the text in quotes or leave a trailing newline, so those are stripped
// before counting. A text that really starts or ends with a quote is counted short.
type TextLength struct{}

// NewTextLength creates a TextLength tool.
func NewTextLength() *TextLength {
	return &TextLength{}
}

// Name implements reactloop.Tool.
func (*TextLength) Name() string { return TextLengthName }

// Description implements reactloop.Tool.
func (*TextLength) Description() string {
	return "Returns the length of a text by character"
}

// Call implements reactloop.Tool.
func (*TextLength) Call(_ context.Context, input string) (string, error) {
	text := strings.Trim(strings.TrimSpace(input), "'\"\n")
	return strconv.Itoa(utf8.RuneCountInString(text)), nil
}

var (
	_ reactloop.Tool = (*TextLength)(nil)
	_ lcgtools.Tool  = (*TextLength)(nil)
)
