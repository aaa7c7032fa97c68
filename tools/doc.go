// Package tools contains ready-made tools.
//
// Any langchaingo tool satisfies reactloop.Tool as well, so tools from
// github.com/tmc/langchaingo/tools register directly:
//
//	registry := toolchain.NewRegistry().MustRegister(
//	    tools.NewTextLength(),
//	    lcgtools.Calculator{},
//	)
package tools
