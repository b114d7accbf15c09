// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// kconf is a command line driver for the kconfig engine. It loads a Kconfig
// tree, optionally applies a .config and overlay fragments, and writes the
// resulting configuration in .config or auto-header form, prints symbol
// state, evaluates ad-hoc expressions and diffs configs.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/0x4248/Kconfiglib/pkg/kconfig"
	"github.com/0x4248/Kconfiglib/pkg/osutil"
	"github.com/0x4248/Kconfiglib/pkg/tool"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func main() {
	var (
		flagKconfig  = flag.String("kconfig", "Kconfig", "root Kconfig file")
		flagConfig   = flag.String("config", "", ".config file to load before the operation")
		flagMode     = flag.String("mode", "olddefconfig", "one of alldefconfig|allnoconfig|olddefconfig|dump|autoconf|diff|eval")
		flagOutput   = flag.String("output", "", "output file (stdout if empty)")
		flagExpr     = flag.String("expr", "", "expression for eval mode")
		flagDiff     = flag.String("diff", "", "second .config for diff mode")
		flagFeatures = flag.String("features", "", "comma-separated feature tags enabled for overlay constraints")
		flagOverlays tool.FilesFlag
	)
	flag.Var(&flagOverlays, "overlay", "comma-separated overlay fragment files (YAML)")
	flag.Parse()

	if *flagMode == "diff" {
		if *flagConfig == "" || *flagDiff == "" {
			tool.Failf("diff mode needs both -config and -diff")
		}
		diffConfigs(*flagConfig, *flagDiff)
		return
	}

	kconf, err := kconfig.Parse(*flagKconfig)
	if err != nil {
		tool.Fail(err)
	}
	kconf.WarnWriter = os.Stderr

	if *flagConfig != "" {
		if err := kconf.LoadConfig(*flagConfig, true); err != nil {
			tool.Fail(err)
		}
	}
	features := make(Features)
	for _, feat := range strings.Split(*flagFeatures, ",") {
		if feat = strings.TrimSpace(feat); feat != "" {
			features[feat] = true
		}
	}
	overlay, err := parseOverlays(flagOverlays, features)
	if err != nil {
		tool.Fail(err)
	}

	switch *flagMode {
	case "alldefconfig":
		kconf.UnsetValues()
		overlay.apply(kconf)
		writeOutput(*flagOutput, append(kconf.WriteConfig(), overlay.Verbatim...))
	case "allnoconfig":
		kconf.AllNoConfig()
		overlay.apply(kconf)
		writeOutput(*flagOutput, append(kconf.WriteConfig(), overlay.Verbatim...))
	case "olddefconfig":
		overlay.apply(kconf)
		writeOutput(*flagOutput, append(kconf.WriteConfig(), overlay.Verbatim...))
	case "autoconf":
		overlay.apply(kconf)
		writeOutput(*flagOutput, kconf.WriteAutoconf())
	case "dump":
		overlay.apply(kconf)
		writeOutput(*flagOutput, dump(kconf))
	case "eval":
		if *flagExpr == "" {
			tool.Failf("eval mode needs -expr")
		}
		overlay.apply(kconf)
		val, err := kconf.EvalString(*flagExpr)
		if err != nil {
			tool.Fail(err)
		}
		fmt.Println(val)
	default:
		tool.Failf("unknown mode %q", *flagMode)
	}
}

func writeOutput(file string, data []byte) {
	if file == "" {
		os.Stdout.Write(data)
		return
	}
	if err := osutil.WriteFile(file, data); err != nil {
		tool.Fail(err)
	}
}

func dump(kconf *kconfig.KConfig) []byte {
	buf := new(strings.Builder)
	for _, sym := range kconf.AllSymbols() {
		fmt.Fprintf(buf, "%v type=%v value=%q visibility=%v",
			sym.Name, sym.Type(), sym.Value(), sym.Visibility())
		if prompt := sym.Prompt(); prompt != "" {
			fmt.Fprintf(buf, " prompt=%q", prompt)
		}
		if ch := sym.Choice(); ch != nil {
			fmt.Fprintf(buf, " choice mode=%v", ch.Mode())
		}
		buf.WriteByte('\n')
	}
	return []byte(buf.String())
}

// diffConfigs prints a line diff of two .config files after normalizing both
// through the .config parser (comments dropped, formatting canonicalized).
func diffConfigs(file1, file2 string) {
	cf1, err := kconfig.ParseConfig(file1)
	if err != nil {
		tool.Fail(err)
	}
	cf2, err := kconfig.ParseConfig(file2)
	if err != nil {
		tool.Fail(err)
	}
	normalize := func(cf *kconfig.ConfigFile) string {
		norm := &kconfig.ConfigFile{Map: make(map[string]*kconfig.Config)}
		for _, cfg := range cf.Configs {
			norm.Set(cfg.Name, cfg.Value)
		}
		return string(norm.Serialize())
	}
	dmp := diffmatchpatch.New()
	chars1, chars2, lines := dmp.DiffLinesToChars(normalize(cf1), normalize(cf2))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lines)
	for _, diff := range diffs {
		prefix := "  "
		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		}
		for _, line := range strings.Split(strings.TrimRight(diff.Text, "\n"), "\n") {
			fmt.Printf("%v%v\n", prefix, line)
		}
	}
}
