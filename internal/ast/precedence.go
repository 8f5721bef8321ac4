package ast

const (
	_           int = iota
	ASSIGNMENT      // = += -= ...
	SWAP            // <->
	LOGICAL_OR      // or
	LOGICAL_XOR     // xor
	LOGICAL_AND     // and
	COMPARISON      // == != < > <= >=
	CONCAT          // &
	SUM             // + -
	PRODUCT         // * / // %
	PREFIX          // de @ ! neg
	INDEX           // array[index]
)

var precedences = map[string]int{
	"=":   ASSIGNMENT,
	"+=":  ASSIGNMENT,
	"-=":  ASSIGNMENT,
	"*=":  ASSIGNMENT,
	"/=":  ASSIGNMENT,
	"//=": ASSIGNMENT,
	"%=":  ASSIGNMENT,
	"&=":  ASSIGNMENT,
	"<->": SWAP,
	"or":  LOGICAL_OR,
	"xor": LOGICAL_XOR,
	"and": LOGICAL_AND,
	"==":  COMPARISON,
	"!=":  COMPARISON,
	"<":   COMPARISON,
	">":   COMPARISON,
	"<=":  COMPARISON,
	">=":  COMPARISON,
	"&":   CONCAT,
	"+":   SUM,
	"-":   SUM,
	"*":   PRODUCT,
	"/":   PRODUCT,
	"//":  PRODUCT,
	"%":   PRODUCT,
	"de":  PREFIX,
	"@":   PREFIX,
	"!":   PREFIX,
	"neg": PREFIX,
	"[":   INDEX,
}

var unary = map[string]bool{
	"de":  true,
	"@":   true,
	"!":   true,
	"neg": true,
}

// compound assignment operators and the binary operator each applies
var compound = map[string]string{
	"+=":  "+",
	"-=":  "-",
	"*=":  "*",
	"/=":  "/",
	"//=": "//",
	"%=":  "%",
	"&=":  "&",
}

// Precedence returns 0 for anything that is not an operator.
func Precedence(op string) int {
	return precedences[op]
}

func IsOperator(op string) bool {
	_, ok := precedences[op]
	return ok
}

func IsRightAssoc(op string) bool {
	return unary[op] || Precedence(op) == ASSIGNMENT
}

func IsUnary(op string) bool {
	return unary[op]
}

func IsAssignment(op string) bool {
	return Precedence(op) == ASSIGNMENT
}

// CompoundBase maps `+=` to `+` and so on.
func CompoundBase(op string) (string, bool) {
	base, ok := compound[op]
	return base, ok
}

// PrefixName is the internal name of an operator token in prefix position.
func PrefixName(literal string) (string, bool) {
	switch literal {
	case "*":
		return "de", true
	case "-":
		return "neg", true
	case "@", "!":
		return literal, true
	}
	return "", false
}
