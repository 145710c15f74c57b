package pensieve

import "strings"

// ToPostfix rewrites a token sequence from infix to postfix order using the
// shunting-yard algorithm. The input must be a sequence accepted by
// Tokenize; in particular, every close parenthesis must have a matching open
// parenthesis before it.
//
// Operators of equal precedence are popped before pushing the new operator
// only if the new operator is left-associative, so 8/2/2 is (8/2)/2 while
// 2^3^2 is 2^(3^2).
func ToPostfix(infix []Token) []Token {
	out := make([]Token, 0, len(infix))
	ops := make([]Token, 0, len(infix)/2)
	pop := func() Token {
		t := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		return t
	}
	for _, t := range infix {
		if t.IsOperand() {
			out = append(out, t)
			continue
		}
		if len(ops) == 0 || t.kind == LParen {
			ops = append(ops, t)
			continue
		}
		if t.kind == RParen {
			for ops[len(ops)-1].kind != LParen {
				out = append(out, pop())
			}
			pop()
			continue
		}
		top := ops[len(ops)-1]
		switch {
		case t.prec > top.prec:
			ops = append(ops, t)
		case t.prec < top.prec:
			for len(ops) > 0 && ops[len(ops)-1].prec >= t.prec {
				out = append(out, pop())
			}
			ops = append(ops, t)
		case t.assoc == Left:
			out = append(out, pop())
			ops = append(ops, t)
		default:
			ops = append(ops, t)
		}
	}
	for len(ops) > 0 {
		out = append(out, pop())
	}
	return out
}

// Render joins the literal text of tokens with single spaces.
func Render(tokens []Token) string {
	var b strings.Builder
	for i, t := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.text)
	}
	return b.String()
}

// Infix rebuilds a fully parenthesized infix expression from a postfix
// sequence. Unary operators are written as op(x) and binary operators as
// (a op b).
func Infix(postfix []Token) (string, error) {
	var stack []string
	for _, t := range postfix {
		switch {
		case t.IsOperand():
			stack = append(stack, t.text)
		case t.IsUnary():
			if len(stack) < 1 {
				return "", &EvalError{Op: t.text, Depth: len(stack)}
			}
			x := stack[len(stack)-1]
			stack[len(stack)-1] = t.text + "(" + x + ")"
		case t.IsBinary():
			if len(stack) < 2 {
				return "", &EvalError{Op: t.text, Depth: len(stack)}
			}
			a, b := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			stack[len(stack)-1] = "(" + a + " " + t.text + " " + b + ")"
		default:
			return "", &EvalError{Op: t.text, Depth: len(stack)}
		}
	}
	if len(stack) != 1 {
		return "", &EvalError{Depth: len(stack)}
	}
	return stack[0], nil
}

// Roster returns the distinct variable names of a token sequence in order of
// first appearance.
func Roster(tokens []Token) []string {
	var names []string
	seen := make(map[string]bool)
	for _, t := range tokens {
		if t.kind == Variable && !seen[t.text] {
			seen[t.text] = true
			names = append(names, t.text)
		}
	}
	return names
}
