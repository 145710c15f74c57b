package pensieve_test

import (
	"errors"
	"math"
	"math/big"
	"testing"

	"github.com/zephyrtronium/pensieve"
)

func TestEval(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    float64
	}{
		{"num", "1", 1},
		{"leading-dot", ".5", 0.5},
		{"dot", ".", 0},
		{"plus", "+4", 4},
		{"neg", "-4", -4},
		{"neg-neg", "--4", 4},
		{"add", "4+5+6", 4 + 5 + 6},
		{"sub", "4-5-6", 4 - 5 - 6},
		{"mul", "4*5*6", 4 * 5 * 6},
		{"div", "4/5/6", 4.0 / 5.0 / 6.0},
		{"precedence", "2+3*4", 14},
		{"parens", "(2+3)*4", 20},
		{"right-assoc", "2^3^2", 512},
		{"left-assoc", "8/2/2", 2},
		{"floor-left-assoc", "8//2//2", 2},
		{"floor", "7//2", 3},
		// Floor division truncates toward zero.
		{"floor-neg", "-7//2", -3},
		{"floor-neg-divisor", "7//-2", -3},
		{"floor-exact", "-8//2", -4},
		{"unary-sum", "-3+-2", -5},
		{"binary-minus", "3-2", 1},
		{"neg-group", "-(3-2)", -1},
		{"neg-pow", "-2^2", -4},
		{"pow-neg", "2^-2", 0.25},
		{"pow-frac", "4^.5", 2},
		{"pow-zero", "0^0", 1},
		{"zero-pow", "0^3", 0},
		{"neg-base-even", "(-2)^2", 4},
		{"neg-base-odd", "(-2)^3", -8},
		{"div-zero", "1/0", math.Inf(1)},
		{"div-neg-zero", "-1/0", math.Inf(-1)},
		{"zero-pow-neg", "0^-1", math.Inf(1)},
		{"inf-pow-neg", "(1/0)^-1", 0},
		{"inf-pow-frac", "(1/0)^.5", math.Inf(1)},
		{"neg-inf-pow-odd", "(0-1/0)^3", math.Inf(-1)},
		{"neg-inf-pow-even", "(0-1/0)^2", math.Inf(1)},
		{"pow-inf", "2^(1/0)", math.Inf(1)},
		{"pow-neg-inf", "2^-(1/0)", 0},
		{"small-pow-inf", ".5^(1/0)", 0},
		{"one-pow-inf", "1^(1/0)", 1},
		{"pow-sqrt", "2^.5", math.Sqrt2},
		{"pow-neg-frac", "100^-.5", 0.1},
		{"spaces", " 1 +\t2 ", 3},
		{"nested", "((((1))))", 1},
		{"mixed", "1-2*3^4/5+6", 1 - 2*81.0/5 + 6},
	}
	ctx := pensieve.NewContext(pensieve.Prec(64))
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			e, err := pensieve.Compile(c.src, pensieve.Arithmetic)
			if err != nil {
				t.Fatal(c.src, "failed to compile:", err)
			}
			r := ctx.Eval(e)
			if ctx.Err() != nil {
				t.Fatal("evaluation error:", ctx.Err())
			}
			if r == nil {
				t.Fatal("nil result")
			}
			if q := ctx.Result(); r.Cmp(q) != 0 {
				t.Errorf("different results: Eval returned %g, Result returned %g", r, q)
			}
			if f, _ := r.Float64(); !approx(f, c.r) {
				t.Errorf("wrong result: want %g, got %g", c.r, r)
			}
		})
	}
}

func TestEvalPowRange(t *testing.T) {
	// Results beyond float64 range, compared to 12 digits.
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"pow-big", "10^400", "1e400"},
		{"pow-boundary", "10^310", "1e310"},
		{"pow-two", "2^1100", "0x1p1100"},
		{"pow-tiny", "0.1^400", "1e-400"},
		{"pow-tiny-neg", "10^-400", "1e-400"},
		{"pow-compound", "1.01^100000", "1.37207630463523247460e432"},
		{"pow-frac-big", "10^400.5", "3.16227766016837933200e400"},
		{"pow-neg-base", "(-10)^401", "-1e401"},
		{"pow-overflow", "2^10000000000", "+Inf"},
		{"pow-underflow", ".5^10000000000", "0"},
		{"pow-frac-overflow", "2^10000000000.5", "+Inf"},
		{"pow-frac-underflow", "2^-10000000000.5", "0"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			want, _, err := big.ParseFloat(c.want, 0, 128, big.ToNearestEven)
			if err != nil {
				t.Fatal(err)
			}
			r, err := pensieve.EvalString(c.src)
			if err != nil {
				t.Fatalf("evaluating %q: %v", c.src, err)
			}
			if want.IsInf() || want.Sign() == 0 {
				if r.Cmp(want) != 0 {
					t.Errorf("%q: want %g, got %g", c.src, want, r)
				}
				return
			}
			d := new(big.Float).Sub(r, want)
			d.Quo(d, want)
			if d.Abs(d).Cmp(big.NewFloat(1e-12)) > 0 {
				t.Errorf("%q: want %.20g, got %.20g", c.src, want, r)
			}
		})
	}
}

// approx reports whether two results agree to within rounding of the last
// few bits.
func approx(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-15*math.Max(math.Abs(a), math.Abs(b))
}

func TestEvalDomain(t *testing.T) {
	cases := []struct {
		name string
		src  string
		op   string
	}{
		{"zero-by-zero", "0/0", "/"},
		{"floor-zero", "1//0", "//"},
		{"floor-zero-zero", "0//0", "//"},
		{"inf-minus-inf", "1/0-1/0", "-"},
		{"inf-plus-neg-inf", "1/0+-1/0", "+"},
		{"zero-times-inf", "0*(1/0)", "*"},
		{"inf-by-inf", "(1/0)/(1/0)", "/"},
		{"floor-inf", "(1/0)//2", "//"},
		{"neg-base-frac", "(-1)^0.5", "^"},
		{"neg-base-inf", "(-2)^(1/0)", "^"},
	}
	ctx := pensieve.NewContext()
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			e, err := pensieve.Compile(c.src, pensieve.Arithmetic)
			if err != nil {
				t.Fatalf("%q failed to compile: %v", c.src, err)
			}
			if r := ctx.Eval(e); r != nil {
				t.Errorf("evaluating %q gave non-nil result %g", c.src, r)
			}
			var derr *pensieve.DomainError
			if !errors.As(ctx.Err(), &derr) {
				t.Fatalf("evaluating %q: expected DomainError, got %v", c.src, ctx.Err())
			}
			if derr.Func != c.op {
				t.Errorf("evaluating %q: wrong operator: want %q, got %q", c.src, c.op, derr.Func)
			}
			if ctx.Result() != nil {
				t.Errorf("evaluating %q: Result non-nil after error", c.src)
			}
		})
	}
}

func TestEvalMalformed(t *testing.T) {
	cases := []struct {
		name    string
		postfix []pensieve.Token
	}{
		{"empty", nil},
		{"binary-short", []pensieve.Token{pensieve.NumberToken("1.0"), pensieve.PlusToken()}},
		{"unary-empty", []pensieve.Token{pensieve.UnaryMinusToken()}},
		{"leftover", []pensieve.Token{pensieve.NumberToken("1.0"), pensieve.NumberToken("2.0")}},
		{"logic-op", []pensieve.Token{pensieve.NumberToken("1.0"), pensieve.NumberToken("2.0"), pensieve.AndToken()}},
		{"paren", []pensieve.Token{pensieve.NumberToken("1.0"), pensieve.RParenToken()}},
	}
	ctx := pensieve.NewContext()
	for _, c := range cases {
		if r := ctx.EvalPostfix(c.postfix); r != nil {
			t.Errorf("%s: expected nil result, got %g", c.name, r)
		}
		if !errors.Is(ctx.Err(), pensieve.ErrMalformed) {
			t.Errorf("%s: expected malformed expression, got %v", c.name, ctx.Err())
		}
	}
}

func TestEvalLogicExpr(t *testing.T) {
	e, err := pensieve.Compile("p&q", pensieve.Logic)
	if err != nil {
		t.Fatal(err)
	}
	ctx := pensieve.NewContext()
	if r := ctx.Eval(e); r != nil {
		t.Errorf("evaluating a logic expression gave %g", r)
	}
	if ctx.Err() == nil {
		t.Error("evaluating a logic expression gave no error")
	}
}

func TestEvalReuse(t *testing.T) {
	// A context can evaluate many expressions in sequence, and an error in
	// one does not affect the next.
	ctx := pensieve.NewContext()
	for i, c := range []struct {
		src string
		ok  bool
	}{
		{"1+2", true},
		{"0/0", false},
		{"2*3", true},
		{"(1+2)*(3+4)", true},
	} {
		e, err := pensieve.Compile(c.src, pensieve.Arithmetic)
		if err != nil {
			t.Fatal(err)
		}
		r := ctx.Eval(e)
		if (ctx.Err() == nil) != c.ok {
			t.Errorf("%d: %q: unexpected error state %v", i, c.src, ctx.Err())
		}
		if (r != nil) != c.ok {
			t.Errorf("%d: %q: unexpected result %v", i, c.src, r)
		}
	}
}

func TestPrec(t *testing.T) {
	cases := []struct {
		opts []pensieve.ContextOption
		want uint
	}{
		{nil, pensieve.DefaultPrec},
		{[]pensieve.ContextOption{pensieve.Prec(200)}, 200},
		{[]pensieve.ContextOption{pensieve.Prec(32), pensieve.Prec(128)}, 128},
	}
	for _, c := range cases {
		ctx := pensieve.NewContext(c.opts...)
		if ctx.Prec() != c.want {
			t.Errorf("wrong precision: want %d, got %d", c.want, ctx.Prec())
		}
		r, err := pensieve.EvalString("1/3", c.opts...)
		if err != nil {
			t.Fatal(err)
		}
		if r.Prec() != c.want {
			t.Errorf("result has precision %d, want %d", r.Prec(), c.want)
		}
	}
	// More precision distinguishes values that float64 cannot.
	r, err := pensieve.EvalString("(1152921504606846976+1)-1152921504606846976", pensieve.Prec(128))
	if err != nil {
		t.Fatal(err)
	}
	if r.Cmp(big.NewFloat(1)) != 0 {
		t.Errorf("wrong result at high precision: %g", r)
	}
}

func TestEvalStringErrors(t *testing.T) {
	_, err := pensieve.EvalString("1+")
	if !errors.Is(err, pensieve.ErrMissingOperand) {
		t.Errorf("expected missing operand, got %v", err)
	}
	_, err = pensieve.EvalString("0/0")
	var derr *pensieve.DomainError
	if !errors.As(err, &derr) {
		t.Errorf("expected domain error, got %v", err)
	}
}
