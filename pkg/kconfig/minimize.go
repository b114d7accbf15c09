// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package kconfig

import (
	"sort"

	"github.com/0x4248/Kconfiglib/pkg/debugtracer"
	"github.com/0x4248/Kconfiglib/pkg/osutil"
)

// Minimize finds an equivalent with respect to the provided predicate, but smaller config.
// It accepts base (small) and full (large) config. It is assumed that the predicate returns true for the full config.
// It is also assumed that base and full are not just two completely arbitrary configs, but full is produced from base
// mostly by adding more configs. The minimization procedure thus consists of figuring out what set of configs that
// are present in full and are not present in base affect the predicate.
func (kc *KConfig) Minimize(base, full *ConfigFile, pred func(*ConfigFile) (bool, error),
	dt debugtracer.DebugTracer) (*ConfigFile, error) {
	diff, other := kc.missingConfigs(base, full)
	dt.Log("kconfig minimization: base=%v full=%v diff=%v", len(base.Configs), len(full.Configs), len(diff))
	// First, check the base config as is, it is the smallest we can possibly get.
	if res, err := pred(base); err != nil {
		return nil, err
	} else if res {
		dt.Log("base config satisfies the predicate")
		return base, nil
	}
	// Since base does not satisfy the predicate, full config is our best bet for now.
	current := full.Clone()
	var suspects []string
	// Take half of the diff between base and full, apply to base and test.
	// If this candidate config satisfies the predicate, we commit it as new full and repeat the process.
	// If it does not, try another half.
	// If the effect is caused by a single config, this algorithm is guaranteed to find it.
	// If it is caused by multiple configs, this algorithm will most likely find them (along with some
	// additional unrelated configs that happened to be in the same half). Note that we sort configs
	// so that related configs are most likely situated together.
top:
	for len(diff) >= 2 {
		half := len(diff) / 2
		for _, part := range [][]string{diff[:half], diff[half:]} {
			dt.Log("trying half: %v", part)
			closure := kc.addDependencies(base, full, part)
			candidate := base.Clone()
			// Always move all non-tristate configs from full to base as we don't minimize them.
			for _, cfg := range other {
				candidate.Set(cfg.Name, cfg.Value)
			}
			for _, cfg := range closure {
				candidate.Set(cfg, ValYes)
			}
			res, err := pred(candidate)
			if err != nil {
				return nil, err
			}
			if res {
				dt.Log("half satisfied the predicate")
				diff = part
				current = candidate
				suspects = closure
				continue top
			}
		}
		dt.Log("neither half satisfied the predicate")
		break
	}
	if suspects != nil {
		dt.Log("resulting configs: %v", suspects)
		kc.writeSuspects(dt, suspects)
	} else {
		dt.Log("only the full config satisfies the predicate")
	}
	return current, nil
}

func (kc *KConfig) missingConfigs(base, full *ConfigFile) (tristate []string, other []*Config) {
	for _, cfg := range full.Configs {
		if cfg.Value == ValYes && base.Value(cfg.Name) == NotSet {
			tristate = append(tristate, cfg.Name)
		} else if cfg.Value != NotSet && cfg.Value != ValYes && cfg.Value != ValMod {
			other = append(other, cfg)
		}
	}
	sort.Strings(tristate)
	return
}

func (kc *KConfig) addDependencies(base, full *ConfigFile, configs []string) []string {
	closure := make(map[string]bool)
	for _, cfg := range configs {
		closure[cfg] = true
		if m := kc.Configs[cfg]; m != nil {
			for dep := range m.DependsOn() {
				if full.Value(dep) != NotSet && base.Value(dep) == NotSet {
					closure[dep] = true
				}
			}
		}
	}
	var sorted []string
	for cfg := range closure {
		sorted = append(sorted, cfg)
	}
	sort.Strings(sorted)
	return sorted
}

const CauseConfigFile = "cause.config"

func (kc *KConfig) writeSuspects(dt debugtracer.DebugTracer, suspects []string) {
	cf := &ConfigFile{
		Map: make(map[string]*Config),
	}
	for _, cfg := range suspects {
		cf.Set(cfg, ValYes)
	}
	osutil.WriteFile(CauseConfigFile, cf.Serialize())
}
