package tools

import (
	"context"
	"testing"

	"github.com/reactloop/reactloop/toolchain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lcgtools "github.com/tmc/langchaingo/tools"
)

func TestTextLength_Call(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "Dog", expected: "3"},
		{name: "single quoted", input: "'Dog'", expected: "3"},
		{name: "double quoted", input: `"Dog"`, expected: "3"},
		{name: "quoted with newline", input: "'Dog'\n", expected: "3"},
		{name: "inner spaces kept", input: "hot dog", expected: "7"},
		{name: "multibyte", input: "héllo", expected: "5"},
		{name: "empty", input: "", expected: "0"},
		{name: "only quotes", input: "''", expected: "0"},
	}

	tool := NewTextLength()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tool.Call(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestTextLength_Registry(t *testing.T) {
	registry := toolchain.NewRegistry().MustRegister(
		NewTextLength(),
		lcgtools.Calculator{},
	)

	assert.Equal(t, []string{"get_text_length", "calculator"}, registry.Names())

	out, err := registry.Invoke(context.Background(), "get_text_length", "Dog")
	require.NoError(t, err)
	assert.Equal(t, "3", out)

	out, err = registry.Invoke(context.Background(), "calculator", "2 + 3")
	require.NoError(t, err)
	assert.Equal(t, "5", out)
}
