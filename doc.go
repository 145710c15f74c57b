// Package pensieve compiles and evaluates two small expression grammars.
//
// The arithmetic grammar has decimal literals, + - * / // ^, unary signs, and
// parentheses. "2^3^2" is "2^(3^2)", while "8//2//2" is "(8//2)//2". Values
// are arbitrary-precision floats.
//
// The logic grammar has single lowercase letter variables and the operators
// ! & | ^ > =, which are negation, and, or, xor, implication, and
// biconditional. A logic expression evaluates to a truth table over every
// assignment to its variables, from which it can be classified as a
// tautology or contradiction. Several logic expressions on one line,
// separated by commas, are also compared for equivalence.
//
// Both grammars share one pipeline. Tokenize validates the input and
// produces tokens in infix order; ToPostfix reorders them; then a Context
// evaluates arithmetic postfix and Evaluate builds truth tables. Compile and
// EvalLine wrap the whole pipeline.
package pensieve
