package pensieve_test

import (
	"fmt"

	"github.com/zephyrtronium/pensieve"
)

func ExampleCompile() {
	e, err := pensieve.Compile("2^3^2 - -1", pensieve.Arithmetic)
	if err != nil {
		panic(err)
	}
	fmt.Println(e)
	fmt.Println(e.Infix())
	ctx := pensieve.NewContext()
	fmt.Println(ctx.Eval(e).Text('g', 10))

	// Output:
	// 2.0 3.0 2.0 ^ ^ 1.0 - -
	// ((2.0 ^ (3.0 ^ 2.0)) - -(1.0))
	// 513
}

func ExampleEvalLine() {
	b, err := pensieve.EvalLine("p>q, !p|q", pensieve.Logic)
	if err != nil {
		panic(err)
	}
	for _, r := range b.Results {
		fmt.Println(r.Expr.Infix(), r.Table.Results, r.Table.Class())
	}
	fmt.Println("equivalent:", b.Equivalent)

	// Output:
	// (p > q) [true false true true] contingent
	// (!(p) | q) [true false true true] contingent
	// equivalent: true
}

func ExampleDiagnostic() {
	src := "(1+2"
	_, err := pensieve.Compile(src, pensieve.Arithmetic)
	d, _ := pensieve.Diagnostic(src, err)
	fmt.Println(d)

	// Output:
	// (1+2
	// ^ missing closing parentheses
}
