// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package kconfig

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/0x4248/Kconfiglib/pkg/osutil"
)

// ConfigFile represents a parsed .config file as a plain list of
// assignments, without reference to a Kconfig model. It should not be
// modified directly, only by means of calling methods. The only exception is
// Config.Value which may be modified directly.
// Note: config names don't include the CONFIG_ prefix, here and in other
// public interfaces; users of this package should never mention CONFIG_.
type ConfigFile struct {
	Configs  []*Config
	Map      map[string]*Config // duplicates Configs for convenience
	comments []string
}

type Config struct {
	Name     string
	Value    string
	comments []string
}

const (
	ValYes = "y"
	ValMod = "m"
	// NotSet represents the "# CONFIG_FOO is not set" form. The value is
	// deliberately ugly to make it obvious when some code writes it out
	// directly.
	NotSet = "---===[[[is not set]]]===---"
)

// Value returns config value, or NotSet if it's not present at all.
func (cf *ConfigFile) Value(name string) string {
	cfg := cf.Map[name]
	if cfg == nil {
		return NotSet
	}
	return cfg.Value
}

// Set changes config value, or adds it if it's not yet present.
func (cf *ConfigFile) Set(name, val string) {
	cfg := cf.Map[name]
	if cfg == nil {
		cfg = &Config{
			Name:  name,
			Value: val,
		}
		cf.Map[name] = cfg
		cf.Configs = append(cf.Configs, cfg)
	}
	cfg.Value = val
	cfg.comments = append(cfg.comments, cf.comments...)
	cf.comments = nil
}

// Unset sets config value to NotSet, if it's present in the config.
func (cf *ConfigFile) Unset(name string) {
	cfg := cf.Map[name]
	if cfg == nil {
		return
	}
	cfg.Value = NotSet
}

func (cf *ConfigFile) ModToYes() {
	for _, cfg := range cf.Configs {
		if cfg.Value == ValMod {
			cfg.Value = ValYes
		}
	}
}

func (cf *ConfigFile) ModToNo() {
	for _, cfg := range cf.Configs {
		if cfg.Value == ValMod {
			cfg.Value = NotSet
		}
	}
}

func (cf *ConfigFile) Serialize() []byte {
	buf := new(bytes.Buffer)
	for _, cfg := range cf.Configs {
		for _, comment := range cfg.comments {
			fmt.Fprintf(buf, "%v\n", comment)
		}
		if cfg.Value == NotSet {
			fmt.Fprintf(buf, "# %v%v is not set\n", configPrefix, cfg.Name)
		} else {
			fmt.Fprintf(buf, "%v%v=%v\n", configPrefix, cfg.Name, cfg.Value)
		}
	}
	for _, comment := range cf.comments {
		fmt.Fprintf(buf, "%v\n", comment)
	}
	return buf.Bytes()
}

func ParseConfig(file string) (*ConfigFile, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open .config file %v: %w", file, err)
	}
	return ParseConfigData(data, file)
}

func ParseConfigData(data []byte, file string) (*ConfigFile, error) {
	cf := &ConfigFile{
		Map: make(map[string]*Config),
	}
	s := bufio.NewScanner(bytes.NewReader(data))
	for s.Scan() {
		cf.parseLine(s.Text())
	}
	return cf, nil
}

func (cf *ConfigFile) Clone() *ConfigFile {
	cf1 := &ConfigFile{
		Map:      make(map[string]*Config),
		comments: cf.comments,
	}
	for _, cfg := range cf.Configs {
		cfg1 := new(Config)
		*cfg1 = *cfg
		cf1.Configs = append(cf1.Configs, cfg1)
		cf1.Map[cfg1.Name] = cfg1
	}
	return cf1
}

func (cf *ConfigFile) parseLine(text string) {
	if match := reConfigY.FindStringSubmatch(text); match != nil {
		cf.Set(match[1], match[2])
	} else if match := reConfigN.FindStringSubmatch(text); match != nil {
		cf.Set(match[1], NotSet)
	} else {
		cf.comments = append(cf.comments, text)
	}
}

var (
	reConfigY = regexp.MustCompile(`^` + configPrefix +
		`([A-Za-z0-9_]+)=(y|m|(?:-?[0-9]+)|(?:0x[0-9a-fA-F]+)|(?:".*?"))$`)
	reConfigN = regexp.MustCompile(`^# ` + configPrefix + `([A-Za-z0-9_]+) is not set$`)
	reAssign  = regexp.MustCompile(`^` + configPrefix + `([A-Za-z0-9_]+)=(.*)$`)
)

// LoadConfig loads symbol values from a file in the .config format,
// equivalent to calling SetValue for each assignment. The
// "# CONFIG_FOO is not set" form sets the user value of FOO to n, like the C
// tools do. With replace set, all existing user values are cleared first.
func (kc *KConfig) LoadConfig(file string, replace bool) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("failed to open .config file %v: %w", file, err)
	}
	return kc.LoadConfigData(data, file, replace)
}

// LoadConfigData is LoadConfig over an in-memory .config.
func (kc *KConfig) LoadConfigData(data []byte, file string, replace bool) error {
	if replace {
		kc.UnsetValues()
	}
	s := bufio.NewScanner(bytes.NewReader(data))
	for linenr := 1; s.Scan(); linenr++ {
		line := strings.TrimRight(s.Text(), " \t")
		var name, val string
		notSet := false
		if match := reAssign.FindStringSubmatch(line); match != nil {
			name, val = match[1], match[2]
		} else if match := reConfigN.FindStringSubmatch(line); match != nil {
			name, val, notSet = match[1], "n", true
		} else {
			// The C tools treat everything else as a comment.
			continue
		}
		sym := kc.syms[name]
		if sym == nil || len(sym.nodes) == 0 {
			kc.warnUndef("%v:%v: attempt to assign the value %q to the undefined symbol %v",
				file, linenr, val, name)
			continue
		}
		if notSet && sym.typ != TypeBool && sym.typ != TypeTristate {
			// The "is not set" form only makes sense for bool/tristate.
			continue
		}
		if sym.typ == TypeString && strings.HasPrefix(val, `"`) {
			if len(val) < 2 || val[len(val)-1] != '"' {
				kc.warnf("%v:%v: malformed string literal", file, linenr)
				continue
			}
			val = strings.ReplaceAll(strings.ReplaceAll(val[1:len(val)-1], `\"`, `"`), `\\`, `\`)
		}
		// Booleans read m back as y.
		if sym.typ == TypeBool && val == "m" {
			val = "y"
		}
		if !sym.validValue(val) {
			kc.warnf("%v:%v: the value %q is invalid for %v, which has type %v; assignment ignored",
				file, linenr, val, name, sym.typ)
			continue
		}
		if sym.userSet {
			kc.warnf("%v:%v: %v set more than once, old value %q, new value %q",
				file, linenr, name, sym.userVal, val)
		}
		if sym.choice != nil {
			if mode := sym.choice.userVal; sym.choice.userSet && mode != val && (val == "y" || val == "m") {
				kc.warnf("%v:%v: assignment to %v changes mode of containing choice from %q to %q",
					file, linenr, name, mode, val)
			}
		}
		sym.setValue(val, true)
	}
	return nil
}

// WriteConfig returns the .config rendition of the current configuration,
// matching what the C tools generate, down to whitespace.
func (kc *KConfig) WriteConfig() []byte {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "#\n# Automatically generated file; DO NOT EDIT.\n# %v\n#\n", kc.MainmenuText())
	written := make(map[*Symbol]bool)
	kc.Walk(func(m *Menu) bool {
		switch m.Kind {
		case MenuConfig:
			// Symbols defined in multiple locations get one entry, at the
			// first location.
			if !written[m.Sym] {
				written[m.Sym] = true
				buf.WriteString(m.Sym.configString())
			}
		case MenuGroup:
			if m.prompt != nil && evalExpr(kc, m.dependsOn) != No && evalExpr(kc, m.visibleIf) != No {
				fmt.Fprintf(buf, "\n#\n# %v\n#\n", m.prompt.text)
			}
		case MenuComment:
			if evalExpr(kc, m.dependsOn) != No {
				fmt.Fprintf(buf, "\n#\n# %v\n#\n", m.prompt.text)
			}
		}
		return true
	})
	return buf.Bytes()
}

// WriteConfigFile writes WriteConfig output to a file.
func (kc *KConfig) WriteConfigFile(file string) error {
	return osutil.WriteFile(file, kc.WriteConfig())
}

// WriteAutoconf returns the C header rendition of the current configuration
// (the auto.conf/autoconf.h style output consumed by builds).
func (kc *KConfig) WriteAutoconf() []byte {
	buf := new(bytes.Buffer)
	fmt.Fprintf(buf, "/*\n * Automatically generated file; DO NOT EDIT.\n * %v\n */\n", kc.MainmenuText())
	written := make(map[*Symbol]bool)
	kc.Walk(func(m *Menu) bool {
		if m.Kind == MenuConfig && !written[m.Sym] {
			written[m.Sym] = true
			buf.WriteString(m.Sym.autoconfString())
		}
		return true
	})
	return buf.Bytes()
}

// WriteAutoconfFile writes WriteAutoconf output to a file.
func (kc *KConfig) WriteAutoconfFile(file string) error {
	return osutil.WriteFile(file, kc.WriteAutoconf())
}

// AllNoConfig sets every bool/tristate symbol to n, except symbols marked
// with 'option allnoconfig_y' which are forced to y, mirroring the C tool's
// allnoconfig target.
func (kc *KConfig) AllNoConfig() {
	kc.UnsetValues()
	for _, sym := range kc.DefinedSyms {
		if sym.typ != TypeBool && sym.typ != TypeTristate {
			continue
		}
		if sym.allnoconfigY {
			sym.setValue("y", true)
		} else {
			sym.setValue("n", true)
		}
	}
}

// DefconfigFilename returns the first existing file named by the defaults of
// the 'option defconfig_list' symbol, or "" if there is none.
func (kc *KConfig) DefconfigFilename() string {
	if kc.defconfigList == nil {
		return ""
	}
	for _, def := range kc.defconfigList.defaults {
		if evalExpr(kc, def.cond) == No {
			continue
		}
		file := exprStrVal(kc, def.val)
		if osutil.IsExist(file) {
			return file
		}
		if kc.srctree != "" {
			if path := filepath.Join(kc.srctree, file); osutil.IsExist(path) {
				return path
			}
		}
	}
	return ""
}

// ApplyConfigFile applies the assignments of a parsed config fragment to the
// model, on top of the current user values.
func (kc *KConfig) ApplyConfigFile(cf *ConfigFile) {
	for _, cfg := range cf.Configs {
		sym := kc.syms[cfg.Name]
		if sym == nil || len(sym.nodes) == 0 {
			kc.warnUndef("attempt to assign the undefined symbol %v", cfg.Name)
			continue
		}
		val := cfg.Value
		if val == NotSet {
			if sym.typ != TypeBool && sym.typ != TypeTristate {
				continue
			}
			val = "n"
		} else if sym.typ == TypeString && strings.HasPrefix(val, `"`) && len(val) >= 2 {
			val = strings.ReplaceAll(strings.ReplaceAll(val[1:len(val)-1], `\"`, `"`), `\\`, `\`)
		}
		if sym.typ == TypeBool && val == "m" {
			val = "y"
		}
		if !sym.validValue(val) {
			kc.warnf("the value %q is invalid for %v, which has type %v; assignment ignored",
				val, cfg.Name, sym.typ)
			continue
		}
		sym.setValue(val, true)
	}
}
