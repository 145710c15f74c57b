package pensieve

import (
	"errors"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Context is a context for evaluating arithmetic expressions. It is not safe
// to use a Context concurrently.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	prec  uint
	err   error
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type precopt uint

func (precopt) ctxOption() {}

// Prec sets the precision of calculations in bits.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// DefaultPrec is the precision of a context created without a Prec option.
// It matches the significand of an x87 extended double.
const DefaultPrec = 64

// NewContext creates a new evaluation context.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), prec: DefaultPrec}
	// Apply the last precision given.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok {
			ctx.prec = uint(p)
			break
		}
	}
	return &ctx
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// Eval evaluates an arithmetic expression and returns the result. If an error
// occurs, e.g. a division of zero by zero, then the result is nil and ctx.Err
// returns the error.
func (ctx *Context) Eval(e *Expr) *big.Float {
	if !e.g.Numeric() {
		ctx.err = errors.New("pensieve: cannot evaluate " + e.g.name + " expression to a number")
		return nil
	}
	return ctx.EvalPostfix(e.postfix)
}

// EvalPostfix evaluates a postfix token sequence and returns the result. If
// an error occurs, then the result is nil and ctx.Err returns the error.
func (ctx *Context) EvalPostfix(postfix []Token) *big.Float {
	ctx.stack = ctx.stack[:0]
	ctx.err = nil
	for _, t := range postfix {
		if err := ctx.step(t); err != nil {
			ctx.err = err
			return nil
		}
	}
	if len(ctx.stack) != 1 {
		ctx.err = &EvalError{Depth: len(ctx.stack)}
		return nil
	}
	return ctx.Result()
}

// Result returns the result obtained after evaluating an expression. Returns
// nil if no expression has been evaluated or an error occurred.
func (ctx *Context) Result() *big.Float {
	if ctx.err != nil || len(ctx.stack) != 1 {
		return nil
	}
	return new(big.Float).Copy(ctx.stack[0])
}

// Err returns the error that occurred while evaluating the last expression,
// if any.
func (ctx *Context) Err() error {
	return ctx.err
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may be
// modified by future pushes.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	// The lexer only produces literals of the form d.d, so parsing can't
	// fail.
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	if err != nil {
		panic("pensieve: invalid number: " + s + " (" + err.Error() + ")")
	}
	ctx.nums[s] = r
	return r
}

// step applies one postfix token to the stack.
func (ctx *Context) step(t Token) error {
	switch {
	case t.kind == Number:
		ctx.push().Set(ctx.num(t.text))
		return nil
	case t.IsUnary():
		if len(ctx.stack) < 1 {
			return &EvalError{Op: t.text, Depth: len(ctx.stack)}
		}
	case t.IsBinary():
		if len(ctx.stack) < 2 {
			return &EvalError{Op: t.text, Depth: len(ctx.stack)}
		}
	default:
		return &EvalError{Op: t.text, Depth: len(ctx.stack)}
	}
	switch t.kind {
	case UnaryPlus:
		// do nothing
	case UnaryMinus:
		v := ctx.top()
		v.Neg(v)
	case Plus:
		r := ctx.pop()
		l := ctx.top()
		// Guard against inf-inf.
		if l.IsInf() && r.IsInf() && l.Signbit() != r.Signbit() {
			return &DomainError{X: r, Func: "+"}
		}
		l.Add(l, r)
	case Minus:
		r := ctx.pop()
		l := ctx.top()
		if l.IsInf() && r.IsInf() && l.Signbit() == r.Signbit() {
			return &DomainError{X: r, Func: "-"}
		}
		l.Sub(l, r)
	case Multiply:
		r := ctx.pop()
		l := ctx.top()
		// Guard against 0*inf.
		if l.Sign() == 0 && r.IsInf() || l.IsInf() && r.Sign() == 0 {
			return &DomainError{X: r, Func: "*"}
		}
		l.Mul(l, r)
	case Divide:
		r := ctx.pop()
		l := ctx.top()
		// Guard against invalid divisions, 0/0 or inf/inf.
		if l.Sign() == 0 && r.Sign() == 0 || l.IsInf() && r.IsInf() {
			return &DomainError{X: r, Func: "/"}
		}
		l.Quo(l, r)
	case FloorDivide:
		r := ctx.pop()
		l := ctx.top()
		if r.Sign() == 0 || l.IsInf() {
			return &DomainError{X: r, Func: "//"}
		}
		l.Quo(l, r)
		// Truncate toward zero, not toward negative infinity.
		i, _ := l.Int(nil)
		l.SetInt(i)
	case Exponent:
		r := ctx.pop()
		l := ctx.top()
		if err := pow(l, r); err != nil {
			return err
		}
	default:
		return &EvalError{Op: t.text, Depth: len(ctx.stack)}
	}
	return nil
}

// pow sets l to l^r at l's precision. Negative bases are allowed only with
// integer exponents.
func pow(l, r *big.Float) error {
	neg := false
	if l.Sign() < 0 {
		if r.IsInf() || !r.IsInt() {
			return &DomainError{X: l, Func: "^"}
		}
		i, _ := r.Int(nil)
		neg = i.Bit(0) == 1
		l.Neg(l)
	}
	switch {
	case r.Sign() == 0:
		l.SetInt64(1)
		return nil
	case l.Sign() == 0 && r.Sign() > 0:
		// Clear the sign bit of -0.
		l.Abs(l)
		return nil
	case l.Sign() == 0:
		l.SetInf(false)
		return nil
	case l.IsInf():
		if r.Sign() > 0 {
			l.SetInf(false)
		} else {
			l.SetInt64(0)
		}
	case r.IsInf():
		// l is positive and finite.
		c := l.Cmp(big.NewFloat(1))
		switch {
		case c == 0:
		case (c > 0) == (r.Sign() > 0):
			l.SetInf(false)
		default:
			l.SetInt64(0)
		}
	case r.IsInt() && r.MantExp(nil) <= 64:
		n, _ := r.Int(nil)
		powInt(l, n)
	default:
		powExp(l, r)
	}
	if neg {
		l.Neg(l)
	}
	return nil
}

// powInt sets x to x^n by repeated squaring. x must be positive and finite.
func powInt(x *big.Float, n *big.Int) {
	e := new(big.Int).Abs(n)
	work := x.Prec() + uint(e.BitLen()) + 16
	one := new(big.Float).SetPrec(work).SetInt64(1)
	base := new(big.Float).SetPrec(work).Set(x)
	acc := new(big.Float).SetPrec(work).SetInt64(1)
	for i := 0; i < e.BitLen(); i++ {
		if e.Bit(i) == 1 {
			acc.Mul(acc, base)
		}
		if acc.IsInf() || acc.Sign() == 0 || base.Cmp(one) == 0 {
			break
		}
		base.Mul(base, base)
		if base.IsInf() || base.Sign() == 0 {
			// Any remaining bit takes acc to the same limit.
			if new(big.Int).Rsh(e, uint(i+1)).Sign() != 0 {
				acc.Mul(acc, base)
			}
			break
		}
	}
	if n.Sign() < 0 {
		acc.Quo(one, acc)
	}
	x.Set(acc)
}

// powExp sets x to x^y as 2^(y*log2(x)), applying the integer part of the
// exponent with SetMantExp so that results beyond float64 range keep their
// magnitude. x must be positive and finite, and y must be finite.
func powExp(x, y *big.Float) {
	work := x.Prec() + 64
	ln2 := bigfloat.Log(new(big.Float).SetPrec(work), big.NewFloat(2))
	t := bigfloat.Log(new(big.Float).SetPrec(work), x)
	t.Mul(t, y)
	t.Quo(t, ln2)
	// The result exponent is outside what a big.Float can hold.
	switch {
	case t.Cmp(big.NewFloat(big.MaxExp+1)) > 0:
		x.SetInf(false)
		return
	case t.Cmp(big.NewFloat(big.MinExp-1)) < 0:
		x.SetInt64(0)
		return
	}
	k, _ := t.Int64()
	f := new(big.Float).SetPrec(work).SetInt64(k)
	f.Sub(t, f)
	if f.Sign() < 0 {
		k--
		f.Add(f, big.NewFloat(1))
	}
	// 2^f = e^(f*ln2), with f in [0, 1).
	f.Mul(f, ln2)
	m := bigfloat.Exp(new(big.Float).SetPrec(work), f)
	x.SetMantExp(m, int(k))
}

// EvalString is a shortcut to compile and evaluate an arithmetic expression.
func EvalString(src string, opts ...ContextOption) (*big.Float, error) {
	e, err := Compile(src, Arithmetic)
	if err != nil {
		return nil, err
	}
	ctx := NewContext(opts...)
	r := ctx.Eval(e)
	return r, ctx.Err()
}
