// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package kconfig

import (
	"fmt"
	"strings"
)

type ConfigType int

const (
	TypeUnknown ConfigType = iota
	TypeBool
	TypeTristate
	TypeString
	TypeInt
	TypeHex
)

func (t ConfigType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeTristate:
		return "tristate"
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeHex:
		return "hex"
	}
	return "unknown"
}

// typeDefault is the value a symbol takes when nothing (user value, default,
// select) applies.
func typeDefault(typ ConfigType) string {
	switch typ {
	case TypeBool, TypeTristate:
		return "n"
	case TypeInt:
		return "0"
	case TypeHex:
		return "0x0"
	}
	return ""
}

// Symbol represents a single config/menuconfig symbol. A symbol may be
// defined in several locations; all of them contribute properties.
// Referenced-but-never-defined symbols also get a Symbol with TypeUnknown;
// as a quirk of the language they evaluate to their own name, which is what
// makes comparisons against literal numbers work.
type Symbol struct {
	Name string

	kconf *KConfig
	typ   ConfigType
	nodes []*Menu

	defaults []defaultVal
	selects  []targetRef
	implies  []targetRef
	ranges   []rangeProp

	// revDep is the accumulated OR of every 'select' targeting this symbol,
	// weakRevDep the same for 'imply'. Both start from an explicit "n".
	revDep     expr
	weakRevDep expr
	// directDeps is the OR over definition locations of the location's
	// 'depends on' chain. imply only takes effect while this is not n.
	directDeps expr

	envVar       string
	allnoconfigY bool

	choice *Choice

	userVal string
	userSet bool

	// Value/visibility cache, valid while epoch matches the model epoch.
	epoch       int
	cachedVal   string
	cachedVis   Tristate
	valOK       bool
	visOK       bool
	writeToConf bool
	computing   bool
	cycleWarned bool
}

type defaultVal struct {
	val  expr
	cond expr
}

type targetRef struct {
	target *Symbol
	cond   expr
}

type rangeProp struct {
	lo, hi expr
	cond   expr
}

func newSymbol(kc *KConfig, name string) *Symbol {
	return &Symbol{
		Name:       name,
		kconf:      kc,
		revDep:     &strExpr{"n"},
		weakRevDep: &strExpr{"n"},
		directDeps: &strExpr{"n"},
	}
}

// Type returns the effective type of the symbol. A tristate degrades to bool
// while module support is off or while the containing choice is in y mode.
func (s *Symbol) Type() ConfigType {
	if s.typ == TypeTristate &&
		((s.choice != nil && s.choice.Mode() == Yes) || s.kconf.modulesValue() == No) {
		return TypeBool
	}
	return s.typ
}

// DeclaredType returns the type the symbol was declared with, ignoring
// module state.
func (s *Symbol) DeclaredType() ConfigType {
	return s.typ
}

func (s *Symbol) sync() {
	if s.epoch != s.kconf.epoch {
		s.epoch = s.kconf.epoch
		s.valOK = false
		s.visOK = false
	}
}

// Value returns the current value of the symbol as a string: "n"/"m"/"y" for
// bool and tristate symbols, the numeric spelling for int/hex, the raw string
// for string symbols. Undefined symbols evaluate to their name.
func (s *Symbol) Value() string {
	if s.typ == TypeUnknown {
		return s.Name
	}
	s.sync()
	if s.valOK {
		return s.cachedVal
	}
	if s.computing {
		// Dependency cycle (always via select/imply chains). The symbol
		// under evaluation reads as its type default for the duration of
		// the recursive visit.
		s.noteCycle()
		return typeDefault(s.typ)
	}
	s.computing = true
	defer func() { s.computing = false }()

	kc := s.kconf
	val := typeDefault(s.typ)
	vis := s.Visibility()
	writeToConf := false

	switch s.typ {
	case TypeBool, TypeTristate:
		if s.choice == nil {
			writeToConf = vis != No
			if vis != No && s.userSet {
				val = triMin(triFromString(s.userVal), vis).String()
			} else {
				for _, def := range s.defaults {
					condVal := evalExpr(kc, def.cond)
					if condVal != No {
						writeToConf = true
						val = triMin(evalExpr(kc, def.val), condVal).String()
						break
					}
				}
				// Weak reverse dependencies apply only while the direct
				// dependencies are met.
				if evalExpr(kc, s.directDeps) != No {
					if weak := evalExpr(kc, s.weakRevDep); weak != No {
						writeToConf = true
						val = triMax(triFromString(val), weak).String()
					}
				}
			}
			// Reverse (select) dependencies take precedence.
			if rev := evalExpr(kc, s.revDep); rev != No {
				writeToConf = true
				val = triMax(triFromString(val), rev).String()
			}
		} else {
			// Symbol in a choice, the election decides.
			if vis != No {
				mode := s.choice.Mode()
				if mode != No {
					writeToConf = true
					if mode == Yes {
						if s.choice.Selection() == s {
							val = "y"
						} else {
							val = "n"
						}
					} else if s.userVal == "m" || s.userVal == "y" {
						val = "m"
					}
				}
			}
		}
		// m promotes to y for bool symbols and when an imply evaluates to y.
		if val == "m" && (s.Type() == TypeBool || evalExpr(kc, s.weakRevDep) == Yes) {
			val = "y"
		}

	case TypeInt, TypeHex:
		base := typeBase(s.typ)
		var low, high int64
		hasRange := false
		for _, r := range s.ranges {
			if evalExpr(kc, r.cond) != No {
				hasRange = true
				low, _ = parseBase(exprStrVal(kc, r.lo), base)
				high, _ = parseBase(exprStrVal(kc, r.hi), base)
				break
			}
		}
		writeToConf = vis != No
		userNum, userErr := parseBase(s.userVal, base)
		if vis != No && s.userSet && userErr == nil &&
			(!hasRange || low <= userNum && userNum <= high) {
			// Well-formed in-range user values keep the exact spelling they
			// were assigned with.
			val = s.userVal
		} else {
			applied := false
			for _, def := range s.defaults {
				if evalExpr(kc, def.cond) != No {
					writeToConf = true
					applied = true
					val = exprStrVal(kc, def.val)
					if num, err := parseBase(val, base); err == nil && hasRange {
						// Out-of-range defaults are clamped to the violated
						// bound and reformatted.
						if num < low {
							val = formatNum(low, s.typ)
						} else if num > high {
							val = formatNum(high, s.typ)
						}
					}
					break
				}
			}
			if !applied && hasRange && low > 0 {
				val = formatNum(low, s.typ)
			}
		}

	case TypeString:
		writeToConf = vis != No
		if vis != No && s.userSet {
			val = s.userVal
		} else {
			for _, def := range s.defaults {
				if evalExpr(kc, def.cond) != No {
					writeToConf = true
					val = exprStrVal(kc, def.val)
					break
				}
			}
		}
	}

	s.cachedVal = val
	s.writeToConf = writeToConf
	s.valOK = true
	return val
}

// TriValue returns the value of a bool/tristate symbol as a Tristate.
func (s *Symbol) TriValue() Tristate {
	return triFromString(s.Value())
}

// Visibility is the upper bound on the values a user may assign to the
// symbol without help from reverse dependencies. A symbol with no prompt is
// not user-visible.
func (s *Symbol) Visibility() Tristate {
	s.sync()
	if s.visOK {
		return s.cachedVis
	}
	kc := s.kconf
	vis := No
	for _, node := range s.nodes {
		if node.prompt != nil {
			vis = triMax(vis, evalExpr(kc, node.prompt.cond))
		}
	}
	if s.choice != nil {
		ch := s.choice
		if ch.typ == TypeTristate && s.typ != TypeTristate && ch.Mode() != Yes {
			// Non-tristate members of a tristate choice require y mode.
			vis = No
		} else if s.typ == TypeTristate && vis == Mod && ch.Mode() == Yes {
			// An m-visible tristate member is hidden while the choice is
			// in y mode.
			vis = No
		} else {
			vis = triMin(vis, ch.Visibility())
		}
	}
	if vis == Mod && (s.typ != TypeTristate || kc.modulesValue() == No) {
		vis = Yes
	}
	s.cachedVis = vis
	s.visOK = true
	return vis
}

// Assignable returns the set of tristate values the user can currently
// assign to a bool/tristate symbol. Empty for invisible symbols and for
// other types.
func (s *Symbol) Assignable() []Tristate {
	if s.typ != TypeBool && s.typ != TypeTristate {
		return nil
	}
	vis := s.Visibility()
	if vis == No {
		return nil
	}
	kc := s.kconf
	rev := evalExpr(kc, s.revDep)
	weakY := evalExpr(kc, s.weakRevDep) == Yes
	boolish := s.Type() == TypeBool || weakY
	if vis == Yes {
		switch rev {
		case No:
			if boolish {
				return []Tristate{No, Yes}
			}
			return []Tristate{No, Mod, Yes}
		case Mod:
			if boolish {
				return []Tristate{Yes}
			}
			return []Tristate{Mod, Yes}
		}
		return []Tristate{Yes}
	}
	// vis == Mod
	switch rev {
	case No:
		if weakY {
			return []Tristate{No, Yes}
		}
		return []Tristate{No, Mod}
	case Mod:
		return []Tristate{Mod}
	}
	return []Tristate{Yes}
}

// SetValue sets the user value of the symbol, with the same effect as an
// assignment in a .config file. The return value reports whether the
// assignment takes effect right now; a rejected value may still be stored
// and take effect once visibility changes. Values malformed for the type are
// not stored at all.
func (s *Symbol) SetValue(val string) bool {
	return s.setValue(val, false)
}

func (s *Symbol) setValue(val string, fromConfig bool) bool {
	kc := s.kconf
	if !s.validValue(val) {
		kc.warnf("the value %q is invalid for %v, which has type %v; assignment ignored",
			val, s.Name, s.typ)
		return false
	}
	if len(s.nodes) == 0 {
		kc.warnUndef("assigning the value %q to the undefined symbol %v will have no effect",
			val, s.Name)
		return false
	}
	if !fromConfig && !s.hasPrompt() && evalExpr(kc, s.revDep) == No {
		kc.warnf("assigning the value %q to the promptless symbol %v will have no effect",
			val, s.Name)
	}
	s.userVal = val
	s.userSet = true
	if s.choice != nil && (s.typ == TypeBool || s.typ == TypeTristate) {
		switch val {
		case "y":
			s.choice.userSelection = s
			s.choice.userVal = "y"
			s.choice.userSet = true
		case "m":
			s.choice.userVal = "m"
			s.choice.userSet = true
		}
	}
	kc.invalidate()
	return s.accepted(val)
}

// accepted reports whether the just-stored user value takes effect in the
// current model state.
func (s *Symbol) accepted(val string) bool {
	switch s.typ {
	case TypeBool, TypeTristate:
		want := triFromString(val)
		for _, t := range s.Assignable() {
			if t == want {
				return true
			}
		}
		return false
	case TypeInt, TypeHex:
		base := typeBase(s.typ)
		num, err := parseBase(val, base)
		if err != nil {
			return false
		}
		for _, r := range s.ranges {
			if evalExpr(s.kconf, r.cond) != No {
				low, _ := parseBase(exprStrVal(s.kconf, r.lo), base)
				high, _ := parseBase(exprStrVal(s.kconf, r.hi), base)
				return low <= num && num <= high
			}
		}
	}
	return true
}

// UnsetValue resets the user value, as if the symbol had never been assigned.
func (s *Symbol) UnsetValue() {
	s.userVal = ""
	s.userSet = false
	s.kconf.invalidate()
}

// UserValue returns the raw user value and whether one is set.
func (s *Symbol) UserValue() (string, bool) {
	return s.userVal, s.userSet
}

func (s *Symbol) validValue(val string) bool {
	switch s.typ {
	case TypeBool:
		return val == "y" || val == "n"
	case TypeTristate:
		return val == "y" || val == "m" || val == "n"
	case TypeString:
		return true
	case TypeInt:
		_, err := parseBase(val, 10)
		return err == nil
	case TypeHex:
		_, err := parseBase(val, 16)
		return err == nil
	}
	return false
}

func (s *Symbol) hasPrompt() bool {
	for _, node := range s.nodes {
		if node.prompt != nil {
			return true
		}
	}
	return false
}

// Prompt returns the prompt text of the first definition location that has
// one, or "".
func (s *Symbol) Prompt() string {
	for _, node := range s.nodes {
		if node.prompt != nil {
			return node.prompt.text
		}
	}
	return ""
}

// Help returns the help text of the first definition location that has one.
func (s *Symbol) Help() string {
	for _, node := range s.nodes {
		if node.help != "" {
			return node.help
		}
	}
	return ""
}

// Choice returns the choice the symbol belongs to, or nil.
func (s *Symbol) Choice() *Choice {
	return s.choice
}

// Selects returns the select targets of the symbol.
func (s *Symbol) Selects() []*Symbol {
	return targets(s.selects)
}

// Implies returns the imply targets of the symbol.
func (s *Symbol) Implies() []*Symbol {
	return targets(s.implies)
}

func targets(refs []targetRef) []*Symbol {
	var res []*Symbol
	for _, ref := range refs {
		res = append(res, ref.target)
	}
	return res
}

// Defaults returns the default clauses rendered in Kconfig syntax.
func (s *Symbol) Defaults() []string {
	var res []string
	for _, def := range s.defaults {
		str := def.val.String()
		if def.cond != nil {
			str += " if " + def.cond.String()
		}
		res = append(res, str)
	}
	return res
}

// Ranges returns the range clauses rendered in Kconfig syntax.
func (s *Symbol) Ranges() []string {
	var res []string
	for _, r := range s.ranges {
		str := fmt.Sprintf("%v %v", r.lo, r.hi)
		if r.cond != nil {
			str += " if " + r.cond.String()
		}
		res = append(res, str)
	}
	return res
}

// configString returns the .config line(s) for the symbol, or "" if the
// symbol does not belong in the output.
func (s *Symbol) configString() string {
	if s.envVar != "" {
		// Symbols bound to environment variables never get written out.
		return ""
	}
	val := s.Value()
	if !s.writeToConf {
		return ""
	}
	switch s.typ {
	case TypeBool, TypeTristate:
		if val == "n" {
			return fmt.Sprintf("# %v%v is not set\n", configPrefix, s.Name)
		}
		return fmt.Sprintf("%v%v=%v\n", configPrefix, s.Name, val)
	case TypeInt, TypeHex:
		return fmt.Sprintf("%v%v=%v\n", configPrefix, s.Name, val)
	case TypeString:
		return fmt.Sprintf("%v%v=\"%v\"\n", configPrefix, s.Name, escapeString(val))
	}
	return ""
}

// autoconfString returns the auto-header line for the symbol, or "".
func (s *Symbol) autoconfString() string {
	if s.envVar != "" {
		return ""
	}
	val := s.Value()
	if !s.writeToConf {
		return ""
	}
	switch s.typ {
	case TypeBool, TypeTristate:
		switch val {
		case "y":
			return fmt.Sprintf("#define %v%v 1\n", configPrefix, s.Name)
		case "m":
			return fmt.Sprintf("#define %v%v_MODULE 1\n", configPrefix, s.Name)
		}
		return ""
	case TypeInt, TypeHex:
		return fmt.Sprintf("#define %v%v %v\n", configPrefix, s.Name, val)
	case TypeString:
		return fmt.Sprintf("#define %v%v \"%v\"\n", configPrefix, s.Name, escapeString(val))
	}
	return ""
}

func escapeString(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, `\`, `\\`), `"`, `\"`)
}

func formatNum(num int64, typ ConfigType) string {
	if typ == TypeHex {
		return fmt.Sprintf("%#x", num)
	}
	return fmt.Sprint(num)
}

func (s *Symbol) noteCycle() {
	if s.cycleWarned {
		return
	}
	s.cycleWarned = true
	s.kconf.warnf("dependency cycle involving %v; treating it as %v while it is being evaluated",
		s.Name, typeDefault(s.typ))
}

func (s *Symbol) setType(typ ConfigType, node *Menu) error {
	if typ == TypeUnknown {
		return nil
	}
	if s.typ != TypeUnknown && s.typ != typ {
		return fmt.Errorf("%v:%v: %v redeclared with type %v, previously declared with type %v",
			node.file, node.line, s.Name, typ, s.typ)
	}
	s.typ = typ
	return nil
}
