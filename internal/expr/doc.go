// Package expr implements the restricted expression language used to describe
// objective functions of one variable.
//
// Source text such as "x**2 - 4*x + 4" or "exp(x) - 2*x" is parsed once into
// a tree built from a closed set of node types:
//
//   - [Const]: numeric literal or named constant (pi, e)
//   - [Var]: the bound variable x
//   - [Binary]: +, -, *, / and ** (also written ^)
//   - [Call]: one of the allow-listed builtins
//
// Nothing outside this set can be constructed, so the allow-list is enforced
// by the parser rather than by filtering names at evaluation time. Unary minus
// is represented as 0 - operand.
//
// # Builtins
//
//	abs(v)  sin(v)  cos(v)  exp(v)  log(v)  sqrt(v)
//	pow(base, exponent)  min(a, b, ...)  max(a, b, ...)
//
// A "np." prefix is accepted on builtin and constant names (np.sin, np.pi).
//
// # Errors
//
// Parsing fails with [*SyntaxError], [*UnknownNameError] or [*ArityError].
// Evaluation fails with a [*DomainError] (matching [ErrDomain]) whenever an
// operation leaves its domain or produces NaN or an infinity.
package expr
