package expr_test

import (
	"errors"
	"math"
	"strings"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fibsearch/internal/expr"
)

func eval(src string, x float64) float64 {
	e, err := expr.Parse(src)
	Expect(err).NotTo(HaveOccurred())
	v, err := e.Eval(x)
	Expect(err).NotTo(HaveOccurred())
	return v
}

var _ = Describe("Parse and Eval", func() {
	DescribeTable("evaluates allow-listed syntax",
		func(src string, x, want float64) {
			Expect(eval(src, x)).To(BeNumerically("~", want, 1e-12))
		},
		Entry("quadratic", "x**2 - 4*x + 4", 2.0, 0.0),
		Entry("quadratic off minimum", "x**2 - 4*x + 4", 5.0, 9.0),
		Entry("caret power", "x^3", 2.0, 8.0),
		Entry("power is right associative", "2**3**2", 0.0, 512.0),
		Entry("unary minus binds looser than power", "-x**2", 3.0, -9.0),
		Entry("negative exponent", "2**-1", 0.0, 0.5),
		Entry("precedence", "1 + 2*3 - 4/2", 0.0, 5.0),
		Entry("parentheses", "(1 + 2)*3", 0.0, 9.0),
		Entry("scientific literal", "1e-3*x", 1000.0, 1.0),
		Entry("leading dot literal", ".5*x", 4.0, 2.0),
		Entry("sin", "sin(x)", 3*math.Pi/2, -1.0),
		Entry("cos", "cos(x)", 0.0, 1.0),
		Entry("exp minus linear", "exp(x) - 2*x", math.Log(2), 2-2*math.Log(2)),
		Entry("log", "log(x)", math.E, 1.0),
		Entry("sqrt", "sqrt(x)", 9.0, 3.0),
		Entry("abs", "abs(x - 3)", 1.0, 2.0),
		Entry("pow", "pow(x, 3)", -2.0, -8.0),
		Entry("min variadic", "min(x, 3, -1)", 0.0, -1.0),
		Entry("max", "max(x, 3)", 7.0, 7.0),
		Entry("constants", "pi + e", 0.0, math.Pi+math.E),
		Entry("np prefix", "np.sin(x) + np.pi", 0.0, math.Pi),
	)

	It("keeps the trimmed source text", func() {
		e := expr.MustParse("  x**2 + 1 ")
		Expect(e.String()).To(Equal("x**2 + 1"))
	})

	It("builds only closed node variants", func() {
		e := expr.MustParse("-sin(x) / 2")
		root, ok := e.Root().(expr.Binary)
		Expect(ok).To(BeTrue())
		Expect(root.Op).To(Equal(expr.OpDiv))

		neg, ok := root.Left.(expr.Binary)
		Expect(ok).To(BeTrue())
		Expect(neg.Op).To(Equal(expr.OpSub))
		Expect(neg.Left).To(Equal(expr.Const{Value: 0}))
		Expect(neg.Right).To(BeAssignableToTypeOf(expr.Call{}))
		Expect(e.Root().String()).To(Equal("((0 - sin(x)) / 2)"))
	})

	It("is safe to evaluate concurrently", func() {
		e := expr.MustParse("x**2 - 4*x + 4")
		var wg sync.WaitGroup
		results := make([]float64, 16)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], _ = e.Eval(float64(i))
			}(i)
		}
		wg.Wait()
		for i, v := range results {
			x := float64(i)
			Expect(v).To(Equal((x - 2) * (x - 2)))
		}
	})
})

var _ = Describe("parse errors", func() {
	DescribeTable("rejects malformed text with a SyntaxError",
		func(src string) {
			_, err := expr.Parse(src)
			var syn *expr.SyntaxError
			Expect(errors.As(err, &syn)).To(BeTrue(), "got %v", err)
		},
		Entry("empty", ""),
		Entry("blank", "   "),
		Entry("dangling operator", "x +"),
		Entry("unbalanced paren", "(x + 1"),
		Entry("implicit multiplication", "2x"),
		Entry("stray character", "x % 2"),
		Entry("function without call", "sin + 1"),
		Entry("trailing comma", "max(x, )"),
	)

	DescribeTable("rejects nesting that would exhaust the stack",
		func(src string) {
			_, err := expr.Parse(src)
			var syn *expr.SyntaxError
			Expect(errors.As(err, &syn)).To(BeTrue(), "got %v", err)
			Expect(syn.Msg).To(ContainSubstring("nested too deeply"))
		},
		Entry("parentheses", strings.Repeat("(", 100_000)+"x"+strings.Repeat(")", 100_000)),
		Entry("sign prefix", strings.Repeat("-", 100_000)+"x"),
		Entry("power tower", strings.Repeat("x**", 100_000)+"x"),
		Entry("function calls", strings.Repeat("abs(", 100_000)+"x"+strings.Repeat(")", 100_000)),
		Entry("long sum", "x"+strings.Repeat(" + x", 100_000)),
		Entry("long product", "x"+strings.Repeat("*x", 100_000)),
	)

	It("accepts realistic nesting", func() {
		src := strings.Repeat("(", 200) + "x" + strings.Repeat(")", 200) + strings.Repeat(" + 1", 200)
		Expect(eval(src, 1)).To(BeNumerically("==", 201))
	})

	DescribeTable("rejects names outside the allow-list",
		func(src, name string) {
			_, err := expr.Parse(src)
			var unk *expr.UnknownNameError
			Expect(errors.As(err, &unk)).To(BeTrue(), "got %v", err)
			Expect(unk.Name).To(Equal(name))
		},
		Entry("import attempt", "__import__(x)", "__import__"),
		Entry("unknown function", "tan(x)", "tan"),
		Entry("other variable", "y + 1", "y"),
		Entry("attribute access", "x.real", "x.real"),
		Entry("np variable", "np.x", "np.x"),
	)

	DescribeTable("checks builtin arity at parse time",
		func(src string) {
			_, err := expr.Parse(src)
			var ar *expr.ArityError
			Expect(errors.As(err, &ar)).To(BeTrue(), "got %v", err)
		},
		Entry("sin with two args", "sin(x, 1)"),
		Entry("pow with one arg", "pow(x)"),
		Entry("min with one arg", "min(x)"),
		Entry("abs with none", "abs()"),
	)
})

var _ = Describe("domain errors", func() {
	DescribeTable("report ErrDomain instead of a non-finite value",
		func(src string, x float64, op string) {
			e := expr.MustParse(src)
			_, err := e.Eval(x)
			Expect(err).To(MatchError(expr.ErrDomain))

			var dom *expr.DomainError
			Expect(errors.As(err, &dom)).To(BeTrue())
			Expect(dom.Op).To(Equal(op))
		},
		Entry("log of negative", "log(x)", -1.0, "log"),
		Entry("log of zero", "log(x)", 0.0, "log"),
		Entry("sqrt of negative", "sqrt(x)", -4.0, "sqrt"),
		Entry("division by zero", "1/x", 0.0, "/"),
		Entry("fractional power of negative", "x**0.5", -1.0, "**"),
		Entry("overflow", "exp(x)", 1000.0, "exp"),
	)

	It("propagates the innermost failure", func() {
		e := expr.MustParse("2 * log(x) + 1")
		_, err := e.Eval(-3)
		Expect(err).To(MatchError(ContainSubstring("log undefined for (-3)")))
	})
})

var _ = Describe("Names", func() {
	It("lists the full allow-list in order", func() {
		Expect(expr.Names()).To(Equal([]string{
			"abs", "cos", "e", "exp", "log", "max", "min", "pi", "pow", "sin", "sqrt", "x",
		}))
	})
})
