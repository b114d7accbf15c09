// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package kconfig

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteConfig(t *testing.T) {
	kconf := parseTest(t, `
mainmenu "main"

menu "General setup"

config A
    bool "A option"
    default y

config B
    string "B option"
    default "hello"

endmenu

comment "a comment"

config C
    int "C option"
    default 42
`)
	want := `#
# Automatically generated file; DO NOT EDIT.
# main
#

#
# General setup
#
CONFIG_A=y
CONFIG_B="hello"

#
# a comment
#
CONFIG_C=42
`
	if diff := cmp.Diff(want, string(kconf.WriteConfig())); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%v", diff)
	}
}

func TestWriteAutoconf(t *testing.T) {
	kconf := parseTest(t, `
mainmenu "main"
config MODULES
    bool "modules"
    default y
    option modules
config A
    bool "A"
    default y
config M
    tristate "M"
    default m
config OFF
    bool "off"
config S
    string "S"
    default "a\"b"
config N
    int "N"
    default 7
config H
    hex "H"
    default 0x1f
`)
	want := `/*
 * Automatically generated file; DO NOT EDIT.
 * main
 */
#define CONFIG_MODULES 1
#define CONFIG_A 1
#define CONFIG_M_MODULE 1
#define CONFIG_S "a\"b"
#define CONFIG_N 7
#define CONFIG_H 0x1f
`
	if diff := cmp.Diff(want, string(kconf.WriteAutoconf())); diff != "" {
		t.Fatalf("autoconf mismatch (-want +got):\n%v", diff)
	}
}

func TestSuppressedBranches(t *testing.T) {
	kconf := parseTest(t, `
mainmenu "main"
config GATE
    bool "gate"
menu "hidden"
    depends on GATE
config IN
    bool "inside"
endmenu
comment "gated comment"
    depends on GATE
`)
	out := string(kconf.WriteConfig())
	// Symbols and banners under a false branch are suppressed.
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "CONFIG_IN")
	assert.NotContains(t, out, "gated comment")
	kconf.Symbol("GATE").SetValue("y")
	out = string(kconf.WriteConfig())
	assert.Contains(t, out, "\n#\n# hidden\n#\n")
	assert.Contains(t, out, "# CONFIG_IN is not set\n")
	assert.Contains(t, out, "\n#\n# gated comment\n#\n")
}

func TestRoundTrip(t *testing.T) {
	kconf := parseTest(t, `
mainmenu "main"
config MODULES
    bool "modules"
    default y
    option modules
config A
    bool "A"
config T
    tristate "T"
config S
    string "S"
    default "with \"quotes\" and \\ slash"
config N
    int "N"
    range 1 100
    default 50
choice
    prompt "ch"
config CA
    bool "ca"
config CB
    bool "cb"
endchoice
`)
	kconf.Symbol("A").SetValue("y")
	kconf.Symbol("T").SetValue("m")
	kconf.Symbol("CB").SetValue("y")
	first := kconf.WriteConfig()
	// Idempotence: writing twice with no mutation gives identical output.
	assert.Equal(t, string(first), string(kconf.WriteConfig()))
	// Round trip: loading our own output reproduces it byte for byte.
	require.NoError(t, kconf.LoadConfigData(first, ".config", true))
	second := kconf.WriteConfig()
	if diff := cmp.Diff(string(first), string(second)); diff != "" {
		t.Fatalf("round trip mismatch (-first +second):\n%v", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	kconf := parseTest(t, `
config A
    bool "A"
config T
    tristate "T"
config S
    string "S"
config N
    int "N"
config H
    hex "H"
`)
	data := `
# comment line
CONFIG_A=y
# CONFIG_T is not set
CONFIG_S="esc \"q\" and \\"
CONFIG_N=-5
CONFIG_H=0xff
`
	require.NoError(t, kconf.LoadConfigData([]byte(data), ".config", true))
	assert.Equal(t, "y", kconf.Symbol("A").Value())
	assert.Equal(t, "n", kconf.Symbol("T").Value())
	assert.Equal(t, `esc "q" and \`, kconf.Symbol("S").Value())
	assert.Equal(t, "-5", kconf.Symbol("N").Value())
	assert.Equal(t, "0xff", kconf.Symbol("H").Value())
	// Booleans read m back as y.
	require.NoError(t, kconf.LoadConfigData([]byte("CONFIG_A=m\n"), ".config", true))
	assert.Equal(t, "y", kconf.Symbol("A").Value())
}

func TestLoadConfigWarnings(t *testing.T) {
	kconf := parseTest(t, `
config A
    bool "A"
`)
	kconf.WarnUndefined = true
	data := `
CONFIG_NOSUCH=y
CONFIG_A=y
CONFIG_A=n
CONFIG_A=bogus
`
	require.NoError(t, kconf.LoadConfigData([]byte(data), ".config", true))
	warnings := strings.Join(kconf.Warnings(), "\n")
	assert.Contains(t, warnings, "NOSUCH")
	assert.Contains(t, warnings, "set more than once")
	assert.Contains(t, warnings, "invalid for A")
	// The last well-formed assignment wins.
	assert.Equal(t, "n", kconf.Symbol("A").Value())
}

func TestLoadConfigReplace(t *testing.T) {
	kconf := parseTest(t, `
config A
    bool "A"
config B
    bool "B"
`)
	require.NoError(t, kconf.LoadConfigData([]byte("CONFIG_A=y\n"), "a", true))
	assert.Equal(t, "y", kconf.Symbol("A").Value())
	// Non-replacing load keeps earlier user values.
	require.NoError(t, kconf.LoadConfigData([]byte("CONFIG_B=y\n"), "b", false))
	assert.Equal(t, "y", kconf.Symbol("A").Value())
	assert.Equal(t, "y", kconf.Symbol("B").Value())
	// Replacing load drops them.
	require.NoError(t, kconf.LoadConfigData([]byte("CONFIG_B=y\n"), "b", true))
	assert.Equal(t, "n", kconf.Symbol("A").Value())
	assert.Equal(t, "y", kconf.Symbol("B").Value())
}

func TestAllNoConfig(t *testing.T) {
	kconf := parseTest(t, `
config A
    bool "A"
    default y
config FORCED
    bool "forced"
    option allnoconfig_y
config N
    int "N"
    default 3
`)
	kconf.AllNoConfig()
	assert.Equal(t, "n", kconf.Symbol("A").Value())
	assert.Equal(t, "y", kconf.Symbol("FORCED").Value())
	assert.Equal(t, "3", kconf.Symbol("N").Value())
}

func TestConfigFile(t *testing.T) {
	data := `# header comment
CONFIG_A=y
CONFIG_B=m
# CONFIG_C is not set
CONFIG_D=42
CONFIG_E="str"
`
	cf, err := ParseConfigData([]byte(data), ".config")
	require.NoError(t, err)
	assert.Equal(t, "y", cf.Value("A"))
	assert.Equal(t, Mod, triFromString(cf.Value("B")))
	assert.Equal(t, NotSet, cf.Value("C"))
	assert.Equal(t, NotSet, cf.Value("NOSUCH"))
	assert.Equal(t, "42", cf.Value("D"))
	assert.Equal(t, `"str"`, cf.Value("E"))
	// Serialization preserves order and comments.
	assert.Equal(t, data, string(cf.Serialize()))
	cf.Unset("A")
	assert.Equal(t, NotSet, cf.Value("A"))
	clone := cf.Clone()
	clone.Set("A", ValYes)
	assert.Equal(t, NotSet, cf.Value("A"))
	assert.Equal(t, ValYes, clone.Value("A"))
	cf.ModToYes()
	assert.Equal(t, ValYes, cf.Value("B"))
}

func TestDefconfigList(t *testing.T) {
	kconf := parseTest(t, `
config DEFCONFIG_LIST
    string
    option defconfig_list
    default "/no/such/defconfig"
`)
	assert.Equal(t, "", kconf.DefconfigFilename())
}
