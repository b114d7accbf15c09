// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package kconfig

import (
	"fmt"
	"strconv"
	"strings"
)

// expr is a dependency expression over tristate values. A nil expr stands for
// a missing condition and evaluates to y. Expressions reference symbols by
// name; resolution against the symbol table happens at evaluation time, which
// keeps the structure acyclic even in the presence of select/imply back-edges.
type expr interface {
	String() string
	eval(kc *KConfig) Tristate
	collectDeps(deps map[string]bool)
}

type symExpr struct {
	name string
}

type strExpr struct {
	val string
}

type notExpr struct {
	arg expr
}

type andExpr struct {
	lhs, rhs expr
}

type orExpr struct {
	lhs, rhs expr
}

type cmpOp int

const (
	opEqual cmpOp = iota
	opUnequal
	opLess
	opLessEqual
	opGreater
	opGreaterEqual
)

var cmpOpStr = map[cmpOp]string{
	opEqual:        "=",
	opUnequal:      "!=",
	opLess:         "<",
	opLessEqual:    "<=",
	opGreater:      ">",
	opGreaterEqual: ">=",
}

type cmpExpr struct {
	op       cmpOp
	lhs, rhs expr // always symExpr or strExpr
}

// evalExpr evaluates e in the context of kc. nil evaluates to Yes, which is
// what a missing condition means.
func evalExpr(kc *KConfig, e expr) Tristate {
	if e == nil {
		return Yes
	}
	return e.eval(kc)
}

func (e *symExpr) eval(kc *KConfig) Tristate {
	sym := kc.syms[e.name]
	if sym == nil {
		return No
	}
	// Non-bool/tristate symbols are always n in a tristate sense,
	// regardless of their value.
	if sym.typ != TypeBool && sym.typ != TypeTristate {
		return No
	}
	return triFromString(sym.Value())
}

func (e *strExpr) eval(kc *KConfig) Tristate {
	return triFromString(e.val)
}

func (e *notExpr) eval(kc *KConfig) Tristate {
	return evalExpr(kc, e.arg).Not()
}

func (e *andExpr) eval(kc *KConfig) Tristate {
	v := evalExpr(kc, e.lhs)
	if v == No {
		return No
	}
	return triMin(v, evalExpr(kc, e.rhs))
}

func (e *orExpr) eval(kc *KConfig) Tristate {
	v := evalExpr(kc, e.lhs)
	if v == Yes {
		return Yes
	}
	return triMax(v, evalExpr(kc, e.rhs))
}

func (e *cmpExpr) eval(kc *KConfig) Tristate {
	typ1, val1 := termVal(kc, e.lhs)
	typ2, val2 := termVal(kc, e.rhs)
	var comp int
	if typ1 == TypeString && typ2 == TypeString {
		comp = strings.Compare(val1, val2)
	} else {
		// Compare as numbers when both sides parse; = and != fall back to
		// a string comparison, other relations yield n.
		num1, err1 := parseBase(val1, typeBase(typ1))
		num2, err2 := parseBase(val2, typeBase(typ2))
		if err1 != nil || err2 != nil {
			if e.op != opEqual && e.op != opUnequal {
				return No
			}
			comp = strings.Compare(val1, val2)
		} else {
			switch {
			case num1 < num2:
				comp = -1
			case num1 > num2:
				comp = 1
			}
		}
	}
	res := false
	switch e.op {
	case opEqual:
		res = comp == 0
	case opUnequal:
		res = comp != 0
	case opLess:
		res = comp < 0
	case opLessEqual:
		res = comp <= 0
	case opGreater:
		res = comp > 0
	case opGreaterEqual:
		res = comp >= 0
	}
	if res {
		return Yes
	}
	return No
}

// termVal returns the type and string value of a comparison operand.
// Undefined symbols evaluate to their own name, which is what makes
// 'FOO = 5' style comparisons against literals work.
func termVal(kc *KConfig, e expr) (ConfigType, string) {
	switch v := e.(type) {
	case *symExpr:
		sym := kc.syms[v.name]
		if sym == nil {
			return TypeUnknown, v.name
		}
		return sym.typ, sym.Value()
	case *strExpr:
		return TypeString, v.val
	}
	return TypeUnknown, ""
}

// exprStrVal returns the value of e as a string, for default values and range
// bounds of string/int/hex symbols.
func exprStrVal(kc *KConfig, e expr) string {
	switch v := e.(type) {
	case *symExpr:
		sym := kc.syms[v.name]
		if sym == nil {
			return v.name
		}
		return sym.Value()
	case *strExpr:
		return v.val
	}
	return evalExpr(kc, e).String()
}

// typeBase returns the strconv base used when comparing values of the type.
// 0 means prefix-inferred.
func typeBase(typ ConfigType) int {
	switch typ {
	case TypeInt:
		return 10
	case TypeHex:
		return 16
	}
	return 0
}

func parseBase(s string, base int) (int64, error) {
	if base == 16 {
		// Hex values are accepted both with and without the 0x prefix.
		s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	}
	if s == "" {
		return 0, fmt.Errorf("empty number")
	}
	num, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		// Values like 0xffffffffffffffff overflow int64 but are legal.
		if unum, uerr := strconv.ParseUint(s, base, 64); uerr == nil {
			return int64(unum), nil
		}
	}
	return num, err
}

func (e *symExpr) collectDeps(deps map[string]bool) {
	deps[e.name] = true
}

func (e *strExpr) collectDeps(deps map[string]bool) {
}

func (e *notExpr) collectDeps(deps map[string]bool) {
	e.arg.collectDeps(deps)
}

func (e *andExpr) collectDeps(deps map[string]bool) {
	e.lhs.collectDeps(deps)
	e.rhs.collectDeps(deps)
}

func (e *orExpr) collectDeps(deps map[string]bool) {
	e.lhs.collectDeps(deps)
	e.rhs.collectDeps(deps)
}

func (e *cmpExpr) collectDeps(deps map[string]bool) {
	e.lhs.collectDeps(deps)
	e.rhs.collectDeps(deps)
}

func (e *symExpr) String() string {
	return e.name
}

func (e *strExpr) String() string {
	if e.val == "n" || e.val == "m" || e.val == "y" {
		return e.val
	}
	return fmt.Sprintf("%q", e.val)
}

func (e *notExpr) String() string {
	switch e.arg.(type) {
	case *symExpr, *strExpr:
		return "!" + e.arg.String()
	}
	return fmt.Sprintf("!(%v)", e.arg)
}

func (e *andExpr) String() string {
	return fmt.Sprintf("%v && %v", andOperand(e.lhs), andOperand(e.rhs))
}

func andOperand(e expr) string {
	if _, ok := e.(*orExpr); ok {
		return fmt.Sprintf("(%v)", e)
	}
	return e.String()
}

func (e *orExpr) String() string {
	return fmt.Sprintf("%v || %v", e.lhs, e.rhs)
}

func (e *cmpExpr) String() string {
	return fmt.Sprintf("%v %v %v", e.lhs, cmpOpStr[e.op], e.rhs)
}

func isConst(e expr, val string) bool {
	s, ok := e.(*strExpr)
	return ok && s.val == val
}

// exprAnd builds an && node with trivial simplification. nil means y,
// so ANDing two missing conditions stays a missing condition.
func exprAnd(e1, e2 expr) expr {
	if e1 == nil || isConst(e1, "y") {
		return e2
	}
	if e2 == nil || isConst(e2, "y") {
		return e1
	}
	return &andExpr{e1, e2}
}

// exprOr builds an || node. nil equates to y here as well, which is usually
// what is wanted, but needs to be kept in mind by callers accumulating
// reverse dependencies (those start from an explicit "n").
func exprOr(e1, e2 expr) expr {
	if e1 == nil || e2 == nil || isConst(e1, "y") || isConst(e2, "y") {
		return &strExpr{"y"}
	}
	if isConst(e1, "n") {
		return e2
	}
	if isConst(e2, "n") {
		return e1
	}
	return &orExpr{e1, e2}
}

// Expression grammar (precedence low to high): ||, &&, !, comparison, atom.
//
//	expr:     and_expr ['||' expr]
//	and_expr: factor ['&&' and_expr]
//	factor:   term ['='/'!='/'<'/... term]
//	          '!' factor
//	          '(' expr ')'
//
// transformM requests the conditional-context rewrite of the constant m into
// 'm && MODULES'. It applies to depends on/if conditions but not to default
// values or comparison operands.
func (p *parser) parseExpr(transformM bool) expr {
	e := p.parseAndExpr(transformM)
	if p.tryConsumeOp("||") {
		return &orExpr{e, p.parseExpr(transformM)}
	}
	return e
}

func (p *parser) parseAndExpr(transformM bool) expr {
	e := p.parseFactor(transformM)
	if p.tryConsumeOp("&&") {
		return &andExpr{e, p.parseAndExpr(transformM)}
	}
	return e
}

func (p *parser) parseFactor(transformM bool) expr {
	if p.peek() == '!' && p.peekAt(1) != '=' {
		p.col++
		p.skipSpaces()
		return &notExpr{p.parseFactor(transformM)}
	}
	if p.TryConsume("(") {
		e := p.parseExpr(transformM)
		p.MustConsume(")")
		return e
	}
	term := p.parseTerm()
	if op, ok := p.tryRelOp(); ok {
		return &cmpExpr{op, term, p.parseTerm()}
	}
	if transformM && isConst(term, "m") {
		return &andExpr{term, &symExpr{symModules}}
	}
	return term
}

func (p *parser) parseTerm() expr {
	if str, ok := p.TryQuotedString(); ok {
		return &strExpr{str}
	}
	name := p.Ident()
	// n, m and y are constants, not symbol references.
	if name == "n" || name == "m" || name == "y" {
		return &strExpr{name}
	}
	return &symExpr{name}
}

func (p *parser) tryConsumeOp(op string) bool {
	if !strings.HasPrefix(p.current[p.col:], op) {
		return false
	}
	p.col += len(op)
	p.skipSpaces()
	return true
}

func (p *parser) tryRelOp() (cmpOp, bool) {
	for _, rel := range []struct {
		str string
		op  cmpOp
	}{
		// Two-character operators must be tried first.
		{"!=", opUnequal},
		{"<=", opLessEqual},
		{">=", opGreaterEqual},
		{"=", opEqual},
		{"<", opLess},
		{">", opGreater},
	} {
		if p.tryConsumeOp(rel.str) {
			return rel.op, true
		}
	}
	return 0, false
}
