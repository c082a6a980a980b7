// Package token defines lexical token kinds and trivia for the BCPL front end.
// Invariants:
//   - Token.Text is a slice of the original source (no copies).
//   - Token.Span matches Text exactly (Start..End).
//   - Token.Loc is the line/column view of Span, clipped to the first line.
//   - Comments and whitespace are leading Trivia and never appear in the main
//     token stream.
package token
