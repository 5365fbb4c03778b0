// Package arith evaluates arithmetic expressions on float64.
//
// An expression is built from decimal numbers, the binary operators + - * /,
// brackets, a leading - on any operand, and the functions log (natural
// logarithm) and sqrt applied to a bracketed argument. * and / bind more
// tightly than + and -, and operators of equal precedence associate to the
// left, so "1+2*3-4/5" is 6.2.
//
// Every failure, whether malformed text, division by zero, or an argument
// outside the domain of log or sqrt, is reported as an error that matches
// ErrInvalidExpression. No partial result is ever returned.
//
package arith
