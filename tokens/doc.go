// Package tokens provides token estimation and the context budget.
//
// Token estimation is based on the rule-of-thumb that approximately 4 characters
// equals 1 token for English text. Characters are counted as runes and token
// estimates are rounded up.
//
// # Counter
//
//	counter := tokens.NewEstimatingCounterWithRatio(4)
//	count := counter.Count("Hello, world!")     // 4 tokens
//	fits := counter.FitsInLimit("text", 1000)   // true if <= 1000 tokens
//
// # Budget
//
// A Budget turns a token ceiling into a character ceiling:
//
//	budget := tokens.NewBudget(8000)       // 4 chars/token
//	budget.MaxChars()                       // 32000
//	budget.EstimateTokens(10)               // 3
//	budget.Percentage(16000)                // 50
//
// # Model Limits
//
//	limit := tokens.GetModelLimit("gpt-4o")  // 32000
//	limit := tokens.GetModelLimit("unknown") // 8000 (default)
package tokens
