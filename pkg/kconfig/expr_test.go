// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package kconfig

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalString(t *testing.T) {
	kconf, err := ParseData([]byte(`
mainmenu "test"
config MODULES
    bool "modules"
    default y
    option modules
config A
    bool "A"
    default y
config B
    tristate "B"
    default m
config C
    bool "C"
config NUM
    int "num"
    default 5
config HEXNUM
    hex "hexnum"
    default 0x10
config STR
    string "str"
    default "hello"
`), "Kconfig")
	require.NoError(t, err)

	type Test struct {
		expr string
		want Tristate
	}
	tests := []Test{
		{"y", Yes},
		{"n", No},
		{"m", Mod}, // m && MODULES with MODULES=y
		{"A", Yes},
		{"B", Mod},
		{"C", No},
		{"A && B", Mod},
		{"A || C", Yes},
		{"!A", No},
		{"!B", Mod},
		{"!C", Yes},
		{"A && (C || B)", Mod},
		{"A = y", Yes},
		{"A != y", No},
		{"B = m", Yes},
		{"NUM = 5", Yes},
		{"NUM < 10", Yes},
		{"NUM >= 6", No},
		{"HEXNUM = 0x10", Yes},
		{"HEXNUM > 0xf", Yes},
		{`STR = "hello"`, Yes},
		{`STR != "world"`, Yes},
		{`STR < "z"`, Yes},
		// Undefined symbols evaluate to their own name.
		{`UNDEFINED = "UNDEFINED"`, Yes},
		{"UNDEFINED", No},
		// Numeric symbols are n in a boolean context.
		{"NUM", No},
		{"NUM || A", Yes},
	}
	for i, test := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			val, err := kconf.EvalString(test.expr)
			require.NoError(t, err)
			assert.Equal(t, test.want, val, "expr: %v", test.expr)
		})
	}
}

func TestEvalStringErrors(t *testing.T) {
	kconf, err := ParseData([]byte("config A\n    bool \"A\"\n"), "Kconfig")
	require.NoError(t, err)
	for _, expr := range []string{"", "A &&", "(A", "A B"} {
		_, err := kconf.EvalString(expr)
		assert.Error(t, err, "expr: %q", expr)
	}
}

func TestEvalModulesOff(t *testing.T) {
	// Without a MODULES symbol the m constant collapses to n.
	kconf, err := ParseData([]byte(`
config B
    tristate "B"
    default m
`), "Kconfig")
	require.NoError(t, err)
	val, err := kconf.EvalString("m")
	require.NoError(t, err)
	assert.Equal(t, No, val)
	// And tristate symbols degrade to bool: the m default reads back as y
	// through the bool promotion of m, i.e. value becomes y or n.
	assert.Equal(t, TypeBool, kconf.Symbol("B").Type())
}

func TestExprString(t *testing.T) {
	p := newParser([]byte(`A && !(B || C) && D != "x y"`), "expr")
	require.True(t, p.nextLine())
	e := p.parseExpr(false)
	require.NoError(t, p.err)
	assert.Equal(t, `A && !(B || C) && D != "x y"`, e.String())
}

func TestCollectDeps(t *testing.T) {
	p := newParser([]byte(`A && (B || !C) && D = E && "lit" != F`), "expr")
	require.True(t, p.nextLine())
	e := p.parseExpr(false)
	require.NoError(t, p.err)
	deps := make(map[string]bool)
	e.collectDeps(deps)
	assert.Equal(t, map[string]bool{
		"A": true, "B": true, "C": true, "D": true, "E": true, "F": true,
	}, deps)
}
