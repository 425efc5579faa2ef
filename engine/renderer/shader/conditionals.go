// conditionals.go evaluates the conditional directives of a GLSL source so that reflection only sees the
// declarations a driver would compile. It understands object-like #define and #undef, #ifdef, #ifndef,
// #if, #elif, #else and #endif with integer expressions over defined() and macro values. Function-like
// macros are recorded as defined but never expanded.
package shader

import (
	"strconv"
	"strings"
	"unicode"
)

// maxMacroDepth bounds recursive macro expansion inside #if expressions.
const maxMacroDepth = 16

// condFrame is one level of #if nesting.
type condFrame struct {
	parentActive bool
	taken        bool
	active       bool
}

// activeLines returns the non-directive lines of source that survive conditional evaluation.
func activeLines(source string) []string {
	defines := make(map[string]string)
	var stack []condFrame
	active := true
	var out []string

	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		if !strings.HasPrefix(line, "#") {
			if active && line != "" {
				out = append(out, line)
			}
			continue
		}
		directive, rest := splitDirective(line)
		switch directive {
		case "define":
			if active {
				name, value := splitMacro(rest)
				if name != "" {
					defines[name] = value
				}
			}
		case "undef":
			if active {
				delete(defines, strings.TrimSpace(rest))
			}
		case "ifdef", "ifndef", "if":
			var cond bool
			switch directive {
			case "ifdef":
				_, cond = defines[strings.TrimSpace(rest)]
			case "ifndef":
				_, cond = defines[strings.TrimSpace(rest)]
				cond = !cond
			default:
				cond = evalCondition(rest, defines)
			}
			stack = append(stack, condFrame{parentActive: active, taken: cond, active: active && cond})
			active = active && cond
		case "elif":
			if len(stack) == 0 {
				continue
			}
			f := &stack[len(stack)-1]
			if f.taken {
				f.active = false
			} else {
				cond := evalCondition(rest, defines)
				f.active = f.parentActive && cond
				f.taken = cond
			}
			active = f.active
		case "else":
			if len(stack) == 0 {
				continue
			}
			f := &stack[len(stack)-1]
			f.active = f.parentActive && !f.taken
			f.taken = true
			active = f.active
		case "endif":
			if len(stack) == 0 {
				continue
			}
			active = stack[len(stack)-1].parentActive
			stack = stack[:len(stack)-1]
		}
	}
	return out
}

// splitDirective splits "#name rest" into its directive name and the remainder.
func splitDirective(line string) (string, string) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "#"))
	i := strings.IndexFunc(line, func(r rune) bool { return !isIdentRune(r) })
	if i < 0 {
		return line, ""
	}
	return line[:i], strings.TrimSpace(line[i:])
}

// splitMacro splits a #define body into the macro name and its value. Function-like macros get an empty value.
func splitMacro(rest string) (string, string) {
	i := strings.IndexFunc(rest, func(r rune) bool { return !isIdentRune(r) })
	if i < 0 {
		return rest, ""
	}
	if rest[i] == '(' {
		return rest[:i], ""
	}
	return rest[:i], strings.TrimSpace(rest[i:])
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// evalCondition evaluates a #if or #elif expression. Malformed expressions are false.
func evalCondition(expr string, defines map[string]string) bool {
	e := &exprParser{tokens: tokenizeExpr(expr), defines: defines}
	v, ok := e.parse(0)
	if !ok || e.pos != len(e.tokens) {
		return false
	}
	return v != 0
}

func tokenizeExpr(s string) []string {
	var toks []string
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c == '_' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c)):
			j := i
			for j < len(s) && (isIdentRune(rune(s[j])) || s[j] == '.') {
				j++
			}
			toks = append(toks, s[i:j])
			i = j
		default:
			if i+1 < len(s) {
				two := s[i : i+2]
				switch two {
				case "&&", "||", "==", "!=", "<=", ">=":
					toks = append(toks, two)
					i += 2
					continue
				}
			}
			toks = append(toks, string(c))
			i++
		}
	}
	return toks
}

// exprParser is a precedence climbing evaluator over preprocessor expression tokens.
type exprParser struct {
	tokens  []string
	pos     int
	defines map[string]string
	depth   int
}

var binaryPrecedence = map[string]int{
	"||": 1,
	"&&": 2,
	"==": 3, "!=": 3,
	"<": 4, ">": 4, "<=": 4, ">=": 4,
	"+": 5, "-": 5,
	"*": 6, "/": 6, "%": 6,
}

func (e *exprParser) peek() string {
	if e.pos < len(e.tokens) {
		return e.tokens[e.pos]
	}
	return ""
}

func (e *exprParser) next() string {
	t := e.peek()
	e.pos++
	return t
}

func (e *exprParser) parse(minPrec int) (int64, bool) {
	lhs, ok := e.unary()
	if !ok {
		return 0, false
	}
	for {
		op := e.peek()
		prec, isOp := binaryPrecedence[op]
		if !isOp || prec <= minPrec {
			return lhs, true
		}
		e.pos++
		rhs, ok := e.parse(prec)
		if !ok {
			return 0, false
		}
		lhs, ok = applyBinary(op, lhs, rhs)
		if !ok {
			return 0, false
		}
	}
}

func (e *exprParser) unary() (int64, bool) {
	switch t := e.next(); t {
	case "":
		return 0, false
	case "!":
		v, ok := e.unary()
		return boolInt(v == 0), ok
	case "-":
		v, ok := e.unary()
		return -v, ok
	case "+":
		return e.unary()
	case "(":
		v, ok := e.parse(0)
		if !ok || e.next() != ")" {
			return 0, false
		}
		return v, true
	case "defined":
		paren := e.peek() == "("
		if paren {
			e.pos++
		}
		name := e.next()
		if paren && e.next() != ")" {
			return 0, false
		}
		_, ok := e.defines[name]
		return boolInt(ok), true
	default:
		return e.value(t)
	}
}

// value resolves a literal or a macro name. Undefined names evaluate to 0.
func (e *exprParser) value(t string) (int64, bool) {
	if unicode.IsDigit(rune(t[0])) {
		t = strings.TrimRight(t, "uU")
		if i := strings.IndexByte(t, '.'); i >= 0 {
			t = t[:i]
		}
		v, err := strconv.ParseInt(t, 0, 64)
		return v, err == nil
	}
	body, ok := e.defines[t]
	if !ok || strings.TrimSpace(body) == "" {
		return 0, true
	}
	if e.depth >= maxMacroDepth {
		return 0, false
	}
	sub := &exprParser{tokens: tokenizeExpr(body), defines: e.defines, depth: e.depth + 1}
	v, ok := sub.parse(0)
	if !ok || sub.pos != len(sub.tokens) {
		return 0, false
	}
	return v, true
}

func applyBinary(op string, a, b int64) (int64, bool) {
	switch op {
	case "||":
		return boolInt(a != 0 || b != 0), true
	case "&&":
		return boolInt(a != 0 && b != 0), true
	case "==":
		return boolInt(a == b), true
	case "!=":
		return boolInt(a != b), true
	case "<":
		return boolInt(a < b), true
	case ">":
		return boolInt(a > b), true
	case "<=":
		return boolInt(a <= b), true
	case ">=":
		return boolInt(a >= b), true
	case "+":
		return a + b, true
	case "-":
		return a - b, true
	case "*":
		return a * b, true
	case "/":
		if b == 0 {
			return 0, false
		}
		return a / b, true
	case "%":
		if b == 0 {
			return 0, false
		}
		return a % b, true
	}
	return 0, false
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
