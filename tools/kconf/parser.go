// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/0x4248/Kconfiglib/pkg/kconfig"
	"gopkg.in/yaml.v3"
)

// Overlay is the merged content of the overlay fragment files: a list of
// config assignments guarded by feature constraints, plus verbatim text
// appended to written configs.
type Overlay struct {
	Configs   []*Config
	ConfigMap map[string]*Config
	Verbatim  []byte
	Features  Features
}

type Config struct {
	Name        string
	Value       string
	Constraints []string
	File        string
	Line        int
}

type Features map[string]bool

// Match reports whether all constraints hold: a plain tag requires the
// feature to be enabled, a -tag requires it to be disabled.
func (features Features) Match(constraints []string) bool {
	for _, feat := range constraints {
		if feat[0] == '-' {
			if features[feat[1:]] {
				return false
			}
		} else if !features[feat] {
			return false
		}
	}
	return true
}

type rawFile struct {
	Verbatim string
	Config   []yaml.Node
}

func parseOverlays(files []string, features Features) (*Overlay, error) {
	overlay := &Overlay{
		ConfigMap: make(map[string]*Config),
		Features:  features,
	}
	errs := new(Errors)
	for _, file := range files {
		raw, err := parseFile(file)
		if err != nil {
			return nil, err
		}
		if raw.Verbatim != "" {
			overlay.Verbatim = append(append(overlay.Verbatim,
				strings.TrimSpace(raw.Verbatim)...), '\n')
		}
		for _, node := range raw.Config {
			mergeConfig(overlay, file, node, errs)
		}
	}
	return overlay, errs.err()
}

func parseFile(file string) (*rawFile, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v: %w", file, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	raw := new(rawFile)
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to parse %v: %w", file, err)
	}
	return raw, nil
}

func mergeConfig(overlay *Overlay, file string, node yaml.Node, errs *Errors) {
	name, val, constraints, err := parseNode(node)
	if err != nil {
		errs.push("%v:%v: %v", file, node.Line, err)
		return
	}
	cfg := &Config{
		Name:        name,
		Value:       val,
		Constraints: constraints,
		File:        file,
		Line:        node.Line,
	}
	if prev := overlay.ConfigMap[name]; prev != nil {
		*prev = *cfg
		return
	}
	overlay.ConfigMap[name] = cfg
	overlay.Configs = append(overlay.Configs, cfg)
}

func parseNode(node yaml.Node) (name, val string, constraints []string, err error) {
	// Simplest case: - FOO.
	val = kconfig.ValYes
	if node.Decode(&name) == nil {
		return
	}
	complexVal := make(map[string]yaml.Node)
	if err = node.Decode(complexVal); err != nil {
		return
	}
	var valNode yaml.Node
	for k, v := range complexVal {
		name, valNode = k, v
		break
	}
	// Case: - FOO: 42.
	if intVal := 0; valNode.Decode(&intVal) == nil {
		val = fmt.Sprint(intVal)
		return
	}
	if valNode.Decode(&val) == nil {
		// Case: - FOO: "string".
		if valNode.Style == yaml.DoubleQuotedStyle {
			val = `"` + val + `"`
			return
		}
		// Case: - FOO: n.
		if valNode.Style == 0 && val == "n" {
			val = kconfig.NotSet
			return
		}
		err = fmt.Errorf("bad config format")
		return
	}
	// Case: - FOO: [...] with values and constraint tags mixed.
	propsNode := []yaml.Node{}
	if err = valNode.Decode(&propsNode); err != nil {
		return
	}
	for _, propNode := range propsNode {
		prop := ""
		if err = propNode.Decode(&prop); err != nil {
			return
		}
		if propNode.Style == yaml.DoubleQuotedStyle {
			val = `"` + prop + `"`
		} else if prop == "n" {
			val = kconfig.NotSet
		} else if intVal, err := strconv.ParseInt(prop, 0, 64); err == nil {
			val = fmt.Sprint(intVal)
		} else {
			constraints = append(constraints, prop)
		}
	}
	return
}

// apply sets the overlay assignments whose constraints match on the model.
func (overlay *Overlay) apply(kconf *kconfig.KConfig) {
	cf := &kconfig.ConfigFile{
		Map: make(map[string]*kconfig.Config),
	}
	for _, cfg := range overlay.Configs {
		if !overlay.Features.Match(cfg.Constraints) {
			continue
		}
		cf.Set(cfg.Name, cfg.Value)
	}
	kconf.ApplyConfigFile(cf)
}

type Errors []byte

func (errs *Errors) push(msg string, args ...interface{}) {
	*errs = append(*errs, fmt.Sprintf(msg+"\n", args...)...)
}

func (errs *Errors) err() error {
	if len(*errs) == 0 {
		return nil
	}
	return fmt.Errorf("%s", *errs)
}
