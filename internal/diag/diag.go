package diag

import (
	"errors"
	"fmt"
)

type Kind int

const (
	// lexical
	UnexpectedToken Kind = iota
	UnclosedQuote
	InvalidEscape

	// syntactic
	SyntaxError
	UnexpectedEOF
	UnclosedBrace
	UnclosedBracket
	UnclosedParen
	EmptyParens
	TerminatedBeforeClosure
	ReservedUse
	MissingBody
	MissingCondition
	BadConditionType

	// semantic / runtime
	UnrecognizedSymbol
	OperatorIncompatible
	UnexpectedOperator
	AddressOfTemporary
	BadAssignment
	DereferenceNull
	NonIterable
	IndexOutOfBounds
	DivisionByZero
	BadFunctionArgs
	EmptyArgument
	NonMemberFunction
	UnrecognizedFunction
	MissingFunctionArgs
	AssertionFailure
	MaxRecursionDepth
)

var kindNames = [...]string{
	UnexpectedToken:         "UnexpectedToken",
	UnclosedQuote:           "UnclosedQuote",
	InvalidEscape:           "InvalidEscape",
	SyntaxError:             "SyntaxError",
	UnexpectedEOF:           "UnexpectedEOF",
	UnclosedBrace:           "UnclosedBrace",
	UnclosedBracket:         "UnclosedBracket",
	UnclosedParen:           "UnclosedParen",
	EmptyParens:             "EmptyParens",
	TerminatedBeforeClosure: "TerminatedBeforeClosure",
	ReservedUse:             "ReservedUse",
	MissingBody:             "MissingBody",
	MissingCondition:        "MissingCondition",
	BadConditionType:        "BadConditionType",
	UnrecognizedSymbol:      "UnrecognizedSymbol",
	OperatorIncompatible:    "OperatorIncompatible",
	UnexpectedOperator:      "UnexpectedOperator",
	AddressOfTemporary:      "AddressOfTemporary",
	BadAssignment:           "BadAssignment",
	DereferenceNull:         "DereferenceNull",
	NonIterable:             "NonIterable",
	IndexOutOfBounds:        "IndexOutOfBounds",
	DivisionByZero:          "DivisionByZero",
	BadFunctionArgs:         "BadFunctionArgs",
	EmptyArgument:           "EmptyArgument",
	NonMemberFunction:       "NonMemberFunction",
	UnrecognizedFunction:    "UnrecognizedFunction",
	MissingFunctionArgs:     "MissingFunctionArgs",
	AssertionFailure:        "AssertionFailure",
	MaxRecursionDepth:       "MaxRecursionDepth",
}

var kindMessages = [...]string{
	UnexpectedToken:         "Unexpected token",
	UnclosedQuote:           "Unclosed quote",
	InvalidEscape:           "Invalid escape character",
	SyntaxError:             "Syntax error",
	UnexpectedEOF:           "Unexpected EOF while parsing (possible missing semicolon)",
	UnclosedBrace:           "Unclosed curly brace",
	UnclosedBracket:         "Unclosed bracket",
	UnclosedParen:           "Unclosed parentheses",
	EmptyParens:             "Empty parentheses",
	TerminatedBeforeClosure: "Expression terminated before closure",
	ReservedUse:             "Bad use of reserved keyword",
	MissingBody:             "Missing body",
	MissingCondition:        "Missing condition",
	BadConditionType:        "Condition must be a boolean",
	UnrecognizedSymbol:      "Unrecognized symbol",
	OperatorIncompatible:    "Operator incompatible",
	UnexpectedOperator:      "Unexpected operator",
	AddressOfTemporary:      "Attempt to get address of temporary",
	BadAssignment:           "Attempt to assign to r-value",
	DereferenceNull:         "Attempt to dereference a null pointer",
	NonIterable:             "Object is not iterable",
	IndexOutOfBounds:        "Index out of bounds",
	DivisionByZero:          "Division by zero",
	BadFunctionArgs:         "Improper function arguments",
	EmptyArgument:           "Empty argument",
	NonMemberFunction:       "Not a member function",
	UnrecognizedFunction:    "Unrecognized function",
	MissingFunctionArgs:     "Missing function argument list",
	AssertionFailure:        "Assertion failed",
	MaxRecursionDepth:       "Maximum recursion depth exceeded",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Message is the human readable headline for the kind.
func (k Kind) Message() string {
	if int(k) < 0 || int(k) >= len(kindMessages) {
		return "Unknown error"
	}
	return kindMessages[k]
}

// ParseKind maps a kind name back to its value.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Error is the single failure type raised by the interpreter core. The first
// one produced aborts the whole run.
type Error struct {
	Kind     Kind
	Detail   string
	Filename string
	Line     int
	Column   int
}

func New(kind Kind, detail string, line, column int) *Error {
	return &Error{Kind: kind, Detail: detail, Line: line, Column: column}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("Error [Line %d Column %d]: %s", e.Line, e.Column, e.Kind.Message())
	if e.Detail != "" {
		msg += fmt.Sprintf(": '%s'", e.Detail)
	}
	if e.Filename != "" {
		msg = e.Filename + ": " + msg
	}
	return msg
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind, true
	}
	return 0, false
}
