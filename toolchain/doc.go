// Package toolchain provides the tool registry the ReAct loop dispatches against.
//
// # Overview
//
// A Registry is responsible for:
//  1. Holding a static, ordered collection of uniquely named tools
//  2. Rendering the tool listing shown to the model
//  3. Resolving the tool name the model asked for, with a typed failure for unknown names
//  4. Validating structured inputs against a tool's JSON Schema before calling it
//
// # Registering Tools
//
// Any value with Name, Description and Call(ctx, string) registers, including langchaingo
// tools:
//
//	registry := toolchain.NewRegistry().
//	    MustRegister(tools.NewTextLength()).
//	    MustRegister(lcgtools.Calculator{})
//
// Register returns a [reactloop.DuplicateToolError] when a name is taken. MustRegister panics
// instead, which suits registration at startup.
//
// # Structured Inputs
//
// Tools implementing [reactloop.SchemaTool] get their input validated before the call. The
// input text is decoded as YAML (JSON is valid YAML) and checked against the schema; on
// failure the tool is not called and the error is shown to the model as the observation.
// The schema is included in the tool listing as YAML:
//
//	convert: Convert an amount between currencies
//	  Input schema:
//	    properties:
//	      amount:
//	        type: number
//	    ...
//
// # Thread Safety
//
// Register all tools before running. After that, a Registry is read-only and may be shared
// by concurrent runs.
package toolchain
