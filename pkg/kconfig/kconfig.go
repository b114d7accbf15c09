// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package kconfig implements parsing and evaluation of Linux kernel Kconfig
// and .config files. It builds an in-memory model of the symbols, choices,
// menus and comments declared in a Kconfig tree, derives the current value
// and visibility of every symbol, and reads and writes .config files
// compatibly with the reference C tools. For Kconfig reference see:
// https://www.kernel.org/doc/html/latest/kbuild/kconfig-language.html
package kconfig

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/0x4248/Kconfiglib/pkg/osutil"
)

const (
	configPrefix = "CONFIG_"
	symModules   = "MODULES"
)

// KConfig represents a parsed Kconfig file (including everything reachable
// via source statements). The structure is immutable after parsing; only
// user values and the value cache mutate.
type KConfig struct {
	Root        *Menu            // the implicit top-level menu
	Configs     map[string]*Menu // first definition node of each config/menuconfig
	DefinedSyms []*Symbol        // symbols with at least one definition, in order
	Choices     []*Choice

	// WarnWriter, if set, additionally receives every warning as it is
	// recorded on the model.
	WarnWriter io.Writer
	// WarnUndefined enables warnings for assignments to undefined symbols.
	WarnUndefined bool

	syms          map[string]*Symbol
	namedChoices  map[string]*Choice
	defconfigList *Symbol
	srctree       string
	epoch         int
	warnings      []string
}

// Menu represents a single node of the item tree: a config/menuconfig, a
// menu, a choice or a comment. In-order traversal of the tree is the
// display order.
type Menu struct {
	Kind   MenuKind
	Name   string // config/choice name, empty for menus and comments
	Sym    *Symbol
	Choice *Choice
	Elems  []*Menu
	Parent *Menu

	kconf        *KConfig
	prompt       *prompt
	help         string
	dependsOn    expr // AND of all enclosing if/menu/depends on conditions
	visibleIf    expr
	isMenuconfig bool
	file         string
	line         int

	deps     map[string]bool
	depsOnce sync.Once

	// properties of this definition location, consumed by finalize
	def *def
}

type prompt struct {
	text string
	cond expr
}

// def accumulates the properties parsed at one definition location before
// they are propagated onto the symbol or choice with the location's
// dependencies applied.
type def struct {
	typ           ConfigType
	prompt        *prompt
	defaults      []defaultVal
	selects       []selRef
	implies       []selRef
	ranges        []rangeProp
	dep           expr
	visible       expr
	optional      bool
	env           string
	defconfigList bool
	allnoconfigY  bool
	modules       bool
	help          string
}

type selRef struct {
	target string
	cond   expr
}

type MenuKind int

const (
	_ MenuKind = iota
	MenuConfig
	MenuGroup
	MenuChoice
	MenuComment
	// if blocks exist only during parsing; they are flattened into their
	// children's conditions and leave no node.
	menuIf
)

// Prompt returns the prompt text of the node, or "" if it has none.
func (m *Menu) Prompt() string {
	if m.prompt != nil {
		return m.prompt.text
	}
	return ""
}

// Help returns the help text attached at this location.
func (m *Menu) Help() string {
	return m.help
}

// IsMenuconfig reports whether the node was declared with menuconfig rather
// than config.
func (m *Menu) IsMenuconfig() bool {
	return m.isMenuconfig
}

// Pos returns the file:line location of the node.
func (m *Menu) Pos() string {
	return fmt.Sprintf("%v:%v", m.file, m.line)
}

// DependsOn returns all transitive configs this config depends on.
func (m *Menu) DependsOn() map[string]bool {
	m.depsOnce.Do(func() {
		m.deps = make(map[string]bool)
		if m.dependsOn != nil {
			m.dependsOn.collectDeps(m.deps)
		}
		if m.visibleIf != nil {
			m.visibleIf.collectDeps(m.deps)
		}
		if m.prompt != nil && m.prompt.cond != nil {
			m.prompt.cond.collectDeps(m.deps)
		}
		var indirect []string
		for cfg := range m.deps {
			dep := m.kconf.Configs[cfg]
			if dep == nil {
				delete(m.deps, cfg)
				continue
			}
			for cfg1 := range dep.DependsOn() {
				indirect = append(indirect, cfg1)
			}
		}
		for _, cfg := range indirect {
			m.deps[cfg] = true
		}
	})
	return m.deps
}

type kconfigParser struct {
	*parser
	kconf     *KConfig
	includes  []*parser
	sourcing  map[string]bool
	stack     []*Menu
	cur       *Menu
	baseDir   string
	helpIdent int
	helpLines []string
}

// Parse parses the Kconfig tree rooted at file. The process environment is
// consulted during parsing for $VAR expansion and option env= bindings; later
// environment changes do not affect the model.
func Parse(file string) (*KConfig, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open Kconfig file %v: %w", file, err)
	}
	return ParseData(data, file)
}

// ParseData parses a Kconfig tree from data; file is used for include
// resolution and error messages.
func ParseData(data []byte, file string) (*KConfig, error) {
	kconf := &KConfig{
		Configs:      make(map[string]*Menu),
		syms:         make(map[string]*Symbol),
		namedChoices: make(map[string]*Choice),
		srctree:      os.Getenv("srctree"),
		epoch:        1,
	}
	kconf.predefine()
	root := &Menu{
		Kind:   MenuGroup,
		kconf:  kconf,
		prompt: &prompt{text: "Linux Kernel Configuration"},
		def:    new(def),
		file:   file,
		line:   1,
	}
	kp := &kconfigParser{
		parser:   newParser(data, file),
		kconf:    kconf,
		sourcing: make(map[string]bool),
		baseDir:  filepath.Dir(file),
		stack:    []*Menu{root},
	}
	kp.parseFile()
	if kp.err != nil {
		return nil, kp.err
	}
	if len(kp.stack) > 1 {
		top := kp.stack[len(kp.stack)-1]
		return nil, fmt.Errorf("%v: unterminated block", top.Pos())
	}
	kconf.Root = root
	if err := kconf.finalize(); err != nil {
		return nil, err
	}
	return kconf, nil
}

func (kp *kconfigParser) parseFile() {
	for kp.nextLine() {
		kp.parseLine()
		if kp.TryConsume("#") {
			_ = kp.ConsumeLine()
		}
	}
	kp.endCurrent()
}

func (kp *kconfigParser) parseLine() {
	if kp.eol() {
		if kp.helpIdent != 0 {
			kp.helpLines = append(kp.helpLines, "")
		}
		return
	}
	if kp.helpIdent != 0 {
		if lvl := kp.identLevel(); lvl >= kp.helpIdent {
			line := strings.TrimRight(kp.ConsumeLine(), " \t")
			kp.helpLines = append(kp.helpLines, strings.Repeat(" ", lvl-kp.helpIdent)+line)
			return
		}
		kp.endHelp()
	}
	if kp.TryConsume("#") {
		_ = kp.ConsumeLine()
		return
	}
	if kp.peek() == '$' {
		// Macro-language expansion line, not used for anything.
		_ = kp.ConsumeLine()
		return
	}
	ident := kp.Ident()
	if kp.TryConsume(":=") || kp.TryConsume("=") {
		// Macro definition, see:
		// https://www.kernel.org/doc/html/latest/kbuild/kconfig-macro-language.html
		// We don't use this for anything now.
		kp.ConsumeLine()
		return
	}
	kp.parseMenu(ident)
}

func (kp *kconfigParser) parseMenu(cmd string) {
	switch cmd {
	case "source":
		file, ok := kp.TryQuotedString()
		if !ok {
			file = kp.ConsumeLine()
		}
		kp.includeSource(file)
	case "mainmenu":
		kp.endCurrent()
		kp.stack[0].prompt = &prompt{text: kp.QuotedString()}
	case "comment":
		kp.newCurrent(&Menu{
			Kind: MenuComment,
			def:  &def{prompt: &prompt{text: kp.QuotedString()}},
		})
	case "menu":
		kp.pushCurrent(&Menu{
			Kind: MenuGroup,
			def:  &def{prompt: &prompt{text: kp.QuotedString()}},
		})
	case "if":
		kp.pushCurrent(&Menu{
			Kind: menuIf,
			def:  &def{dep: kp.parseExpr(true)},
		})
	case "choice":
		name := ""
		if !kp.eol() && kp.peek() != '#' {
			name = kp.Ident()
		}
		kp.pushCurrent(&Menu{
			Kind: MenuChoice,
			Name: name,
			def:  new(def),
		})
	case "endmenu", "endif", "endchoice":
		kp.popCurrent(cmd)
	case "config", "menuconfig":
		kp.newCurrent(&Menu{
			Kind:         MenuConfig,
			Name:         kp.Ident(),
			isMenuconfig: cmd == "menuconfig",
			def:          new(def),
		})
	default:
		kp.parseConfigType(cmd)
	}
}

func (kp *kconfigParser) parseConfigType(typ string) {
	d := kp.current().def
	switch typ {
	case "tristate":
		d.typ = TypeTristate
		kp.tryParsePrompt()
	case "def_tristate":
		d.typ = TypeTristate
		kp.parseDefaultValue()
	case "bool", "boolean":
		d.typ = TypeBool
		kp.tryParsePrompt()
	case "def_bool":
		d.typ = TypeBool
		kp.parseDefaultValue()
	case "int":
		d.typ = TypeInt
		kp.tryParsePrompt()
	case "def_int":
		d.typ = TypeInt
		kp.parseDefaultValue()
	case "hex":
		d.typ = TypeHex
		kp.tryParsePrompt()
	case "def_hex":
		d.typ = TypeHex
		kp.parseDefaultValue()
	case "string":
		d.typ = TypeString
		kp.tryParsePrompt()
	case "def_string":
		d.typ = TypeString
		kp.parseDefaultValue()
	default:
		kp.parseProperty(typ)
	}
}

func (kp *kconfigParser) parseProperty(prop string) {
	d := kp.current().def
	switch prop {
	case "prompt":
		kp.tryParsePrompt()
	case "depends":
		kp.MustConsume("on")
		d.dep = exprAnd(d.dep, kp.parseExpr(true))
	case "visible":
		kp.MustConsume("if")
		d.visible = exprAnd(d.visible, kp.parseExpr(true))
	case "select", "imply":
		target := kp.Ident()
		var cond expr
		if kp.TryConsume("if") {
			cond = kp.parseExpr(true)
		}
		// 'select y' and friends are meaningless, skip them.
		if target != "n" && target != "m" && target != "y" {
			ref := selRef{target, cond}
			if prop == "select" {
				d.selects = append(d.selects, ref)
			} else {
				d.implies = append(d.implies, ref)
			}
		}
	case "option":
		kp.parseOption()
	case "modules":
		d.modules = true
	case "optional":
		d.optional = true
	case "default":
		kp.parseDefaultValue()
	case "range":
		r := rangeProp{lo: kp.parseTerm(), hi: kp.parseTerm()}
		if kp.TryConsume("if") {
			r.cond = kp.parseExpr(true)
		}
		d.ranges = append(d.ranges, r)
	case "help", "---help---":
		// Help rules are tricky: the first non-empty line sets the reference
		// indentation as rendered with 8-column tabs; the body extends until
		// the first less-indented non-empty line.
		for kp.nextLine() {
			if kp.eol() {
				continue
			}
			if lvl := kp.identLevel(); lvl > 0 {
				kp.helpIdent = lvl
				kp.helpLines = append(kp.helpLines, strings.TrimRight(kp.ConsumeLine(), " \t"))
			} else {
				// A zero-indent line means the help body is empty and this
				// is already the next construct.
				kp.parseLine()
			}
			break
		}
	default:
		kp.failf("unknown line")
	}
}

func (kp *kconfigParser) parseOption() {
	d := kp.current().def
	switch {
	case kp.TryConsume("env"):
		kp.MustConsume("=")
		d.env = kp.QuotedString()
	case kp.TryConsume("defconfig_list"):
		d.defconfigList = true
	case kp.TryConsume("allnoconfig_y"):
		d.allnoconfigY = true
	case kp.TryConsume("modules"):
		d.modules = true
	default:
		kp.failf("unrecognized option")
	}
}

func (kp *kconfigParser) tryParsePrompt() {
	if str, ok := kp.TryQuotedString(); ok {
		pr := &prompt{text: str}
		if kp.TryConsume("if") {
			pr.cond = kp.parseExpr(true)
		}
		kp.current().def.prompt = pr
	}
}

func (kp *kconfigParser) parseDefaultValue() {
	def := defaultVal{val: kp.parseExpr(false)}
	if kp.TryConsume("if") {
		def.cond = kp.parseExpr(true)
	}
	kp.current().def.defaults = append(kp.current().def.defaults, def)
}

func (kp *kconfigParser) includeSource(file string) {
	kp.endCurrent()
	file = expandEnv(file)
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(kp.baseDir, file)
		if !osutil.IsExist(path) && kp.kconf.srctree != "" {
			path = filepath.Join(kp.kconf.srctree, file)
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	if kp.sourcing[abs] {
		kp.failf("recursive source of %v", file)
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		kp.failf("%v", err)
		return
	}
	kp.sourcing[abs] = true
	kp.includes = append(kp.includes, kp.parser)
	kp.parser = newParser(data, path)
	kp.parseFile()
	err2 := kp.err
	kp.parser = kp.includes[len(kp.includes)-1]
	kp.includes = kp.includes[:len(kp.includes)-1]
	delete(kp.sourcing, abs)
	if kp.err == nil {
		kp.err = err2
	}
}

func (kp *kconfigParser) pushCurrent(m *Menu) {
	kp.endCurrent()
	m.file, m.line = kp.file, kp.line
	kp.cur = m
	kp.stack = append(kp.stack, m)
}

func (kp *kconfigParser) popCurrent(cmd string) {
	kp.endCurrent()
	if len(kp.stack) < 2 {
		kp.failf("unbalanced %v", cmd)
		return
	}
	want := MenuGroup
	switch cmd {
	case "endif":
		want = menuIf
	case "endchoice":
		want = MenuChoice
	}
	last := kp.stack[len(kp.stack)-1]
	if last.Kind != want {
		kp.failf("unexpected %v", cmd)
		return
	}
	kp.stack = kp.stack[:len(kp.stack)-1]
	top := kp.stack[len(kp.stack)-1]
	last.Parent = top
	top.Elems = append(top.Elems, last)
}

func (kp *kconfigParser) newCurrent(m *Menu) {
	kp.endCurrent()
	m.file, m.line = kp.file, kp.line
	kp.cur = m
}

func (kp *kconfigParser) current() *Menu {
	if kp.cur == nil {
		kp.failf("config property outside of config")
		return &Menu{def: new(def)}
	}
	return kp.cur
}

func (kp *kconfigParser) endCurrent() {
	kp.endHelp()
	if kp.cur == nil {
		return
	}
	if len(kp.stack) == 0 {
		kp.failf("unbalanced endmenu")
		return
	}
	top := kp.stack[len(kp.stack)-1]
	if top != kp.cur {
		kp.cur.Parent = top
		top.Elems = append(top.Elems, kp.cur)
	}
	kp.cur = nil
}

func (kp *kconfigParser) endHelp() {
	if kp.helpIdent == 0 {
		return
	}
	kp.helpIdent = 0
	lines := kp.helpLines
	kp.helpLines = nil
	for len(lines) != 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if kp.cur != nil && len(lines) != 0 && kp.cur.def.help == "" {
		kp.cur.def.help = strings.Join(lines, "\n") + "\n"
	}
}

// predefine registers the symbols that exist in every configuration.
// UNAME_RELEASE is a string symbol holding the running kernel release;
// defconfig_list symbols have been seen using it.
func (kc *KConfig) predefine() {
	sym := kc.lookupSym("UNAME_RELEASE")
	sym.typ = TypeString
	sym.envVar = "<uname release>"
	sym.defaults = append(sym.defaults, defaultVal{&strExpr{osutil.OSRelease()}, nil})
}

func (kc *KConfig) lookupSym(name string) *Symbol {
	if sym := kc.syms[name]; sym != nil {
		return sym
	}
	sym := newSymbol(kc, name)
	kc.syms[name] = sym
	return sym
}

// finalize binds the parsed item tree to symbols and choices: it propagates
// block dependencies onto property conditions, accumulates reverse
// dependencies, elects choice members and flattens if blocks away.
func (kc *KConfig) finalize() error {
	if err := kc.walk(kc.Root, nil, nil); err != nil {
		return err
	}
	flattenIfs(kc.Root)
	for _, sym := range kc.DefinedSyms {
		kc.Configs[sym.Name] = sym.nodes[0]
	}
	return nil
}

func (kc *KConfig) walk(m *Menu, parentDep, visDeps expr) error {
	m.kconf = kc
	d := m.def
	if d == nil {
		d = new(def)
	}
	dep := exprAnd(parentDep, d.dep)
	m.dependsOn = dep
	childVisDeps := visDeps

	switch m.Kind {
	case MenuConfig:
		sym := kc.lookupSym(m.Name)
		m.Sym = sym
		if err := sym.setType(d.typ, m); err != nil {
			return err
		}
		if len(sym.nodes) == 0 {
			kc.DefinedSyms = append(kc.DefinedSyms, sym)
		}
		sym.nodes = append(sym.nodes, m)
		if d.prompt != nil {
			m.prompt = &prompt{d.prompt.text, exprAnd(exprAnd(d.prompt.cond, dep), visDeps)}
		}
		m.help = d.help
		for _, dv := range d.defaults {
			sym.defaults = append(sym.defaults, defaultVal{dv.val, exprAnd(dv.cond, dep)})
		}
		for _, r := range d.ranges {
			sym.ranges = append(sym.ranges, rangeProp{r.lo, r.hi, exprAnd(r.cond, dep)})
		}
		for _, sel := range d.selects {
			target := kc.lookupSym(sel.target)
			cond := exprAnd(sel.cond, dep)
			sym.selects = append(sym.selects, targetRef{target, cond})
			target.revDep = exprOr(target.revDep, condRef(sym, cond))
		}
		for _, imp := range d.implies {
			target := kc.lookupSym(imp.target)
			cond := exprAnd(imp.cond, dep)
			sym.implies = append(sym.implies, targetRef{target, cond})
			target.weakRevDep = exprOr(target.weakRevDep, condRef(sym, cond))
		}
		sym.directDeps = exprOr(sym.directDeps, orOperand(dep))
		if d.env != "" {
			sym.envVar = d.env
			if val, ok := os.LookupEnv(d.env); ok {
				sym.defaults = append(sym.defaults, defaultVal{&strExpr{val}, nil})
			} else {
				kc.warnf("%v: symbol %v references the unset environment variable %v",
					m.Pos(), sym.Name, d.env)
			}
		}
		if d.defconfigList {
			if kc.defconfigList == nil {
				kc.defconfigList = sym
			} else {
				kc.warnf("%v: option defconfig_list set on multiple symbols (%v and %v); only %v is used",
					m.Pos(), kc.defconfigList.Name, sym.Name, kc.defconfigList.Name)
			}
		}
		if d.allnoconfigY {
			sym.allnoconfigY = true
		}
		if d.modules && sym.Name != symModules {
			kc.warnf("%v: option modules on %v is not supported, the symbol named %v is used instead",
				m.Pos(), sym.Name, symModules)
		}

	case MenuChoice:
		ch := kc.namedChoices[m.Name]
		if ch == nil {
			ch = newChoice(kc)
			ch.Name = m.Name
			kc.Choices = append(kc.Choices, ch)
			if m.Name != "" {
				kc.namedChoices[m.Name] = ch
			}
		}
		m.Choice = ch
		ch.nodes = append(ch.nodes, m)
		if err := ch.setType(d.typ, m); err != nil {
			return err
		}
		if d.prompt != nil {
			m.prompt = &prompt{d.prompt.text, exprAnd(exprAnd(d.prompt.cond, dep), visDeps)}
		}
		m.help = d.help
		if d.optional {
			ch.isOptional = true
		}
		for _, dv := range d.defaults {
			se, ok := dv.val.(*symExpr)
			if !ok {
				kc.warnf("%v: choice default is not a symbol", m.Pos())
				continue
			}
			ch.defaults = append(ch.defaults, targetRef{kc.lookupSym(se.name), exprAnd(dv.cond, dep)})
		}

	case MenuGroup:
		m.visibleIf = d.visible
		if d.prompt != nil {
			m.prompt = &prompt{d.prompt.text, dep}
		}
		childVisDeps = exprAnd(visDeps, d.visible)

	case MenuComment:
		if d.prompt != nil {
			m.prompt = &prompt{d.prompt.text, dep}
		}
	}

	for _, elem := range m.Elems {
		if err := kc.walk(elem, dep, childVisDeps); err != nil {
			return err
		}
	}

	if m.Kind == MenuChoice {
		collectChoiceSyms(m, m.Choice)
		finalizeChoiceType(m.Choice)
	}
	m.def = nil
	return nil
}

// condRef builds the reverse-dependency contribution of sym under cond.
func condRef(sym *Symbol, cond expr) expr {
	return exprAnd(&symExpr{sym.Name}, cond)
}

// orOperand turns a missing condition into an explicit y so that it does not
// disappear inside exprOr accumulation.
func orOperand(e expr) expr {
	if e == nil {
		return &strExpr{"y"}
	}
	return e
}

func collectChoiceSyms(m *Menu, ch *Choice) {
	for _, elem := range m.Elems {
		switch elem.Kind {
		case MenuConfig:
			if elem.Sym.choice == nil {
				elem.Sym.choice = ch
				ch.Syms = append(ch.Syms, elem.Sym)
			}
		case menuIf:
			collectChoiceSyms(elem, ch)
		}
	}
}

// finalizeChoiceType infers a missing choice type from the first typed
// member and gives untyped members the choice type.
func finalizeChoiceType(ch *Choice) {
	if ch.typ == TypeUnknown {
		for _, sym := range ch.Syms {
			if sym.typ != TypeUnknown {
				ch.typ = sym.typ
				break
			}
		}
	}
	for _, sym := range ch.Syms {
		if sym.typ == TypeUnknown {
			sym.typ = ch.typ
		}
	}
}

func flattenIfs(m *Menu) {
	var elems []*Menu
	for _, elem := range m.Elems {
		flattenIfs(elem)
		if elem.Kind == menuIf {
			for _, child := range elem.Elems {
				child.Parent = m
			}
			elems = append(elems, elem.Elems...)
		} else {
			elems = append(elems, elem)
		}
	}
	m.Elems = elems
}

// Symbol returns the symbol with the given name, or nil. Both defined and
// merely referenced symbols are returned.
func (kc *KConfig) Symbol(name string) *Symbol {
	return kc.syms[name]
}

// AllSymbols returns all defined symbols in definition order.
func (kc *KConfig) AllSymbols() []*Symbol {
	return kc.DefinedSyms
}

// Walk visits the item tree in display order. fn returning false stops the
// walk.
func (kc *KConfig) Walk(fn func(*Menu) bool) {
	walkMenu(kc.Root, fn)
}

func walkMenu(m *Menu, fn func(*Menu) bool) bool {
	for _, elem := range m.Elems {
		if !fn(elem) {
			return false
		}
		if !walkMenu(elem, fn) {
			return false
		}
	}
	return true
}

// MainmenuText returns the prompt of the top-level menu.
func (kc *KConfig) MainmenuText() string {
	return kc.Root.Prompt()
}

// Modules returns the MODULES symbol, or nil if the tree does not define it.
func (kc *KConfig) Modules() *Symbol {
	sym := kc.syms[symModules]
	if sym == nil || len(sym.nodes) == 0 {
		return nil
	}
	return sym
}

func (kc *KConfig) modulesValue() Tristate {
	sym := kc.syms[symModules]
	if sym == nil || (sym.typ != TypeBool && sym.typ != TypeTristate) {
		return No
	}
	return triFromString(sym.Value())
}

// SelectedBy returns the configs that (transitively) select the given config.
func (kc *KConfig) SelectedBy(name string) map[string]bool {
	res := make(map[string]bool)
	var add func(target string)
	add = func(target string) {
		for _, sym := range kc.DefinedSyms {
			if res[sym.Name] {
				continue
			}
			for _, sel := range sym.selects {
				if sel.target.Name == target {
					res[sym.Name] = true
					add(sym.Name)
					break
				}
			}
		}
	}
	add(name)
	return res
}

// EvalString evaluates a dependency expression, e.g. "FOO && (BAR || m)",
// in the context of the current configuration. The constant m is rewritten
// to 'm && MODULES' like in conditional expressions.
func (kc *KConfig) EvalString(s string) (Tristate, error) {
	p := newParser([]byte(s), "<expression>")
	if !p.nextLine() {
		return No, fmt.Errorf("empty expression")
	}
	e := p.parseExpr(true)
	if p.err == nil && !p.eol() {
		p.failf("garbage at the end of expression")
	}
	if p.err != nil {
		return No, p.err
	}
	return evalExpr(kc, e), nil
}

// UnsetValues resets the user values of all symbols and choices, as if no
// .config had ever been loaded.
func (kc *KConfig) UnsetValues() {
	for _, sym := range kc.DefinedSyms {
		sym.userVal = ""
		sym.userSet = false
	}
	for _, ch := range kc.Choices {
		ch.userVal = ""
		ch.userSet = false
		ch.userSelection = nil
	}
	kc.invalidate()
}

// invalidate drops every cached value. Invalidation is bulk: recomputation
// is cheap and user-value changes are rare compared to queries.
func (kc *KConfig) invalidate() {
	kc.epoch++
}

// Warnings returns the warnings accumulated on the model so far.
func (kc *KConfig) Warnings() []string {
	return append([]string(nil), kc.warnings...)
}

func (kc *KConfig) warnf(msg string, args ...interface{}) {
	w := fmt.Sprintf("warning: "+msg, args...)
	kc.warnings = append(kc.warnings, w)
	if kc.WarnWriter != nil {
		fmt.Fprintln(kc.WarnWriter, w)
	}
}

func (kc *KConfig) warnUndef(msg string, args ...interface{}) {
	if kc.WarnUndefined {
		kc.warnf(msg, args...)
	}
}
