// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package kconfig

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTest(t *testing.T, data string) *KConfig {
	kconf, err := ParseData([]byte(data), "Kconfig")
	require.NoError(t, err)
	return kconf
}

func TestVisibilityDepends(t *testing.T) {
	kconf := parseTest(t, `
config A
    bool "A"
config B
    bool "B"
    depends on A
`)
	a, b := kconf.Symbol("A"), kconf.Symbol("B")
	assert.Equal(t, No, b.Visibility())
	assert.True(t, a.SetValue("y"))
	assert.Equal(t, Yes, b.Visibility())
	assert.True(t, b.SetValue("y"))
	assert.Equal(t, "y", b.Value())
	// Turning A off hides B and drops its value regardless of the stored
	// user value.
	assert.True(t, a.SetValue("n"))
	assert.Equal(t, No, b.Visibility())
	assert.Equal(t, "n", b.Value())
	// And back.
	a.SetValue("y")
	assert.Equal(t, "y", b.Value())
}

func TestSelect(t *testing.T) {
	kconf := parseTest(t, `
config A
    bool
config B
    bool "B"
    select A
config C
    bool "C"
    select A if D
config D
    bool "D"
`)
	a := kconf.Symbol("A")
	// A has no prompt: invisible and off.
	assert.Equal(t, No, a.Visibility())
	assert.Equal(t, "n", a.Value())
	// B=y forces A=y even though A has no prompt.
	kconf.Symbol("B").SetValue("y")
	assert.Equal(t, "y", a.Value())
	assert.Equal(t, No, a.Visibility())
	kconf.Symbol("B").SetValue("n")
	assert.Equal(t, "n", a.Value())
	// Conditional select only fires when the condition holds.
	kconf.Symbol("C").SetValue("y")
	assert.Equal(t, "n", a.Value())
	kconf.Symbol("D").SetValue("y")
	assert.Equal(t, "y", a.Value())
}

func TestImply(t *testing.T) {
	kconf := parseTest(t, `
config A
    bool "A"
config B
    bool "B"
    imply A
`)
	a, b := kconf.Symbol("A"), kconf.Symbol("B")
	assert.Equal(t, "n", a.Value())
	b.SetValue("y")
	assert.Equal(t, "y", a.Value())
	// An explicit n overrides the imply; select would not be overridable.
	a.SetValue("n")
	assert.Equal(t, "n", a.Value())
	a.UnsetValue()
	assert.Equal(t, "y", a.Value())
}

func TestImplyTristate(t *testing.T) {
	kconf := parseTest(t, `
config MODULES
    bool "modules"
    default y
    option modules
config A
    tristate "A"
config B
    tristate "B"
    imply A
`)
	a, b := kconf.Symbol("A"), kconf.Symbol("B")
	b.SetValue("m")
	assert.Equal(t, "m", a.Value())
	// A y-valued imply promotes an m value to y.
	b.SetValue("y")
	assert.Equal(t, "y", a.Value())
	a.SetValue("m")
	assert.Equal(t, "y", a.Value())
}

func TestNumericRange(t *testing.T) {
	kconf := parseTest(t, `
config N
    int "N"
    range 1 10
    default 5
config BIG
    int "BIG"
    range 1 10
    default 100
config H
    hex "H"
    range 0x1 0xff
    default 0x1f0
config LOW
    int "LOW"
    range 2 5
config PLAIN
    int "PLAIN"
`)
	n := kconf.Symbol("N")
	assert.Equal(t, "5", n.Value())
	// Out-of-range user values are rejected and the default applies.
	assert.False(t, n.SetValue("15"))
	assert.Equal(t, "5", n.Value())
	assert.True(t, n.SetValue("7"))
	assert.Equal(t, "7", n.Value())
	// Malformed values are not stored at all.
	assert.False(t, n.SetValue("zzz"))
	assert.Equal(t, "7", n.Value())
	// Out-of-range defaults are clamped to the violated bound.
	assert.Equal(t, "10", kconf.Symbol("BIG").Value())
	assert.Equal(t, "0xff", kconf.Symbol("H").Value())
	// No user value, no default: the low bound applies if positive.
	assert.Equal(t, "2", kconf.Symbol("LOW").Value())
	assert.Equal(t, "0", kconf.Symbol("PLAIN").Value())
}

func TestStringSymbol(t *testing.T) {
	kconf := parseTest(t, `
config S
    string "S"
    default "hello"
config DEP
    string "DEP"
    default S
`)
	s := kconf.Symbol("S")
	assert.Equal(t, "hello", s.Value())
	// A symbol-valued default follows the referenced symbol.
	assert.Equal(t, "hello", kconf.Symbol("DEP").Value())
	assert.True(t, s.SetValue("world"))
	assert.Equal(t, "world", s.Value())
	assert.Equal(t, "world", kconf.Symbol("DEP").Value())
}

func TestTristateModules(t *testing.T) {
	kconf := parseTest(t, `
config MODULES
    bool "modules"
    option modules
config T
    tristate "T"
`)
	mods, tri := kconf.Symbol("MODULES"), kconf.Symbol("T")
	// Without module support tristates degrade to bool and m reads back
	// as y.
	assert.Equal(t, TypeBool, tri.Type())
	tri.SetValue("m")
	assert.Equal(t, "y", tri.Value())
	mods.SetValue("y")
	assert.Equal(t, TypeTristate, tri.Type())
	assert.Equal(t, "m", tri.Value())
	assert.Equal(t, []Tristate{No, Mod, Yes}, tri.Assignable())
	mods.SetValue("n")
	assert.Equal(t, []Tristate{No, Yes}, tri.Assignable())
}

func TestAssignable(t *testing.T) {
	kconf := parseTest(t, `
config MODULES
    bool "modules"
    default y
    option modules
config FREE
    tristate "free"
config SELECTED_M
    tristate "selected to m"
config SELECTED_Y
    tristate "selected to y"
config NOPROMPT
    bool
config SEL
    tristate "selector"
    select SELECTED_M
config SELY
    bool "selector y"
    select SELECTED_Y
`)
	assert.Equal(t, []Tristate{No, Mod, Yes}, kconf.Symbol("FREE").Assignable())
	assert.Empty(t, kconf.Symbol("NOPROMPT").Assignable())
	kconf.Symbol("SEL").SetValue("m")
	assert.Equal(t, []Tristate{Mod, Yes}, kconf.Symbol("SELECTED_M").Assignable())
	kconf.Symbol("SELY").SetValue("y")
	assert.Equal(t, []Tristate{Yes}, kconf.Symbol("SELECTED_Y").Assignable())
	// The displayed value always stays within assignable for visible
	// symbols and never drops below the reverse dependency.
	for _, sym := range kconf.AllSymbols() {
		if sym.DeclaredType() != TypeBool && sym.DeclaredType() != TypeTristate {
			continue
		}
		if sym.Visibility() != No {
			assert.Contains(t, sym.Assignable(), sym.TriValue(), "symbol %v", sym.Name)
		}
		assert.GreaterOrEqual(t, sym.TriValue(), evalExpr(kconf, sym.revDep), "symbol %v", sym.Name)
	}
}

func TestPromptlessDefault(t *testing.T) {
	kconf := parseTest(t, `
config A
    def_bool y
config B
    bool "B"
    default A
`)
	assert.Equal(t, "y", kconf.Symbol("A").Value())
	assert.Equal(t, No, kconf.Symbol("A").Visibility())
	assert.Equal(t, "y", kconf.Symbol("B").Value())
	// Assigning to a promptless symbol has no effect but is not an error.
	assert.False(t, kconf.Symbol("A").SetValue("n"))
	assert.Equal(t, "y", kconf.Symbol("A").Value())
	assert.NotEmpty(t, kconf.Warnings())
}

func TestDefaultConditions(t *testing.T) {
	kconf := parseTest(t, `
config COND
    bool "cond"
config A
    int "A"
    default 1 if COND
    default 2
`)
	a := kconf.Symbol("A")
	assert.Equal(t, "2", a.Value())
	kconf.Symbol("COND").SetValue("y")
	assert.Equal(t, "1", a.Value())
}

func TestSelectCycle(t *testing.T) {
	// A and B select each other. The in-progress symbol reads as n during
	// its own recomputation, so the model settles instead of recursing
	// forever.
	kconf := parseTest(t, `
config A
    bool "A"
    select B
config B
    bool "B"
    select A
`)
	assert.Equal(t, "n", kconf.Symbol("A").Value())
	kconf.Symbol("A").SetValue("y")
	assert.Equal(t, "y", kconf.Symbol("A").Value())
	assert.Equal(t, "y", kconf.Symbol("B").Value())
}

func TestTypeConflictKinds(t *testing.T) {
	for i, in := range []string{
		"config A\n    bool \"A\"\nconfig A\n    int \"A\"\n",
		"config A\n    string \"A\"\nconfig A\n    hex \"A\"\n",
	} {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			_, err := ParseData([]byte(in), "Kconfig")
			require.Error(t, err)
		})
	}
	// Matching redeclarations merge.
	kconf := parseTest(t, `
config A
    bool "first"
config A
    bool
    default y
`)
	assert.Equal(t, "y", kconf.Symbol("A").Value())
	assert.Len(t, kconf.AllSymbols(), 1)
}
