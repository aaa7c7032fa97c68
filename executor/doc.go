// Package executor runs an AgentLoop to completion.
//
//	registry := toolchain.NewRegistry().MustRegister(tools.NewTextLength())
//	agent := react.NewAgent(model, registry)
//
//	exec := executor.New(agent, executor.DefaultConfig())
//	result, err := exec.Execute(ctx, "What is the length of the word 'Dog'?")
//	if errors.Is(err, reactloop.ErrMaxIterationsExceeded) {
//	    // the model never produced a final answer
//	}
//	fmt.Println(result.Answer)
package executor
