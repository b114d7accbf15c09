// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package kconfig

import "fmt"

// Choice is a group of symbols among which election rules apply. In y mode
// exactly one visible member is y and the rest are n; in m mode (tristate
// choices only) members independently resolve to n or m; in n mode all
// members are n.
type Choice struct {
	Name string // empty for anonymous choices
	Syms []*Symbol

	kconf      *KConfig
	typ        ConfigType
	defaults   []targetRef
	nodes      []*Menu
	isOptional bool

	userVal       string
	userSet       bool
	userSelection *Symbol

	epoch     int
	cachedVis Tristate
	cachedSel *Symbol
	visOK     bool
	selOK     bool
}

func newChoice(kc *KConfig) *Choice {
	return &Choice{kconf: kc}
}

func (c *Choice) sync() {
	if c.epoch != c.kconf.epoch {
		c.epoch = c.kconf.epoch
		c.visOK = false
		c.selOK = false
	}
}

// Type returns the effective type of the choice; tristate degrades to bool
// while module support is off.
func (c *Choice) Type() ConfigType {
	if c.typ == TypeTristate && c.kconf.modulesValue() == No {
		return TypeBool
	}
	return c.typ
}

// Mode returns the current mode of the choice: y (single selection), m
// (modules, tristate choices only) or n (everything off, optional choices
// only).
func (c *Choice) Mode() Tristate {
	val := No
	if c.userSet {
		val = triMin(triFromString(c.userVal), c.Visibility())
	}
	if val == No && !c.isOptional {
		val = Mod
	}
	if val == Mod && c.Type() == TypeBool {
		val = Yes
	}
	return val
}

// Visibility of the choice itself, the upper bound on its mode.
func (c *Choice) Visibility() Tristate {
	c.sync()
	if c.visOK {
		return c.cachedVis
	}
	vis := No
	for _, node := range c.nodes {
		if node.prompt != nil {
			vis = triMax(vis, evalExpr(c.kconf, node.prompt.cond))
		}
	}
	if vis == Mod && (c.typ != TypeTristate || c.kconf.modulesValue() == No) {
		vis = Yes
	}
	c.cachedVis = vis
	c.visOK = true
	return vis
}

// Selection returns the winning member while the choice is in y mode, nil
// otherwise. The user-chosen member wins if it is visible; then the first
// applicable default; then the first visible member.
func (c *Choice) Selection() *Symbol {
	c.sync()
	if c.selOK {
		return c.cachedSel
	}
	var sel *Symbol
	if c.Mode() == Yes {
		if c.userSelection != nil && c.userSelection.Visibility() == Yes {
			sel = c.userSelection
		} else {
			sel = c.defaultSelection()
		}
	}
	c.cachedSel = sel
	c.selOK = true
	return sel
}

func (c *Choice) defaultSelection() *Symbol {
	for _, def := range c.defaults {
		if evalExpr(c.kconf, def.cond) != No && def.target.Visibility() != No {
			return def.target
		}
	}
	for _, sym := range c.Syms {
		if sym.Visibility() != No {
			return sym
		}
	}
	return nil
}

// Assignable returns the modes the user can currently put the choice in.
func (c *Choice) Assignable() []Tristate {
	vis := c.Visibility()
	if vis == No {
		return nil
	}
	if vis == Yes {
		if c.isOptional {
			if c.Type() == TypeBool {
				return []Tristate{No, Yes}
			}
			return []Tristate{No, Mod, Yes}
		}
		if c.Type() == TypeBool {
			return []Tristate{Yes}
		}
		return []Tristate{Mod, Yes}
	}
	// vis == Mod
	if c.isOptional {
		return []Tristate{No, Mod}
	}
	return []Tristate{Mod}
}

// SetMode sets the user mode of the choice. Non-optional choices never
// actually reach n mode, but n is still a well-formed value.
func (c *Choice) SetMode(val string) bool {
	valid := false
	switch c.typ {
	case TypeBool:
		valid = val == "y" || val == "n"
	case TypeTristate:
		valid = val == "y" || val == "m" || val == "n"
	}
	if !valid {
		c.kconf.warnf("the value %q is invalid for the choice, which has type %v; assignment ignored",
			val, c.typ)
		return false
	}
	c.userVal = val
	c.userSet = true
	c.kconf.invalidate()
	want := triFromString(val)
	for _, t := range c.Assignable() {
		if t == want {
			return true
		}
	}
	return false
}

// SetSelection elects sym within the choice. Equivalent to assigning y to the
// member symbol.
func (c *Choice) SetSelection(sym *Symbol) bool {
	if sym.choice != c {
		c.kconf.warnf("%v is not a member of the choice; selection ignored", sym.Name)
		return false
	}
	return sym.SetValue("y")
}

// UnsetValue resets the user mode and selection of the choice.
func (c *Choice) UnsetValue() {
	c.userVal = ""
	c.userSet = false
	c.userSelection = nil
	c.kconf.invalidate()
}

// Optional reports whether the choice carries the 'optional' property.
func (c *Choice) Optional() bool {
	return c.isOptional
}

// Prompt returns the prompt of the first definition location that has one.
func (c *Choice) Prompt() string {
	for _, node := range c.nodes {
		if node.prompt != nil {
			return node.prompt.text
		}
	}
	return ""
}

func (c *Choice) setType(typ ConfigType, node *Menu) error {
	if typ == TypeUnknown {
		return nil
	}
	if c.typ != TypeUnknown && c.typ != typ {
		name := c.Name
		if name == "" {
			name = "choice"
		}
		return fmt.Errorf("%v:%v: %v redeclared with type %v, previously declared with type %v",
			node.file, node.line, name, typ, c.typ)
	}
	c.typ = typ
	return nil
}
