// Package models adapts langchaingo models to reactloop.Model.
//
//	llm, err := openai.New(
//	    openai.WithToken(apiKey),
//	    openai.WithModel("gpt-4.1"),
//	    openai.WithCallback(models.NewCallbackHandler(logger)),
//	)
//	model := models.NewLCGWrapper(llm).WithModelName("gpt-4.1")
package models
