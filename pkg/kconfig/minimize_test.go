// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package kconfig

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/0x4248/Kconfiglib/pkg/debugtracer"
	"github.com/0x4248/Kconfiglib/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestMinimize(t *testing.T) {
	const (
		kconfigData = `
mainmenu "test"
config A
config B
config C
config D
`

		baseConfig = `
CONFIG_A=y
`
		fullConfig = `
CONFIG_A=y
CONFIG_B=y
CONFIG_C=y
CONFIG_D=y
`
	)
	type Test struct {
		pred   func(*ConfigFile) (bool, error)
		result string
	}
	tests := []Test{
		{
			pred: func(cf *ConfigFile) (bool, error) {
				return true, nil
			},
			result: baseConfig,
		},
		{
			pred: func(cf *ConfigFile) (bool, error) {
				return false, nil
			},
			result: fullConfig,
		},
		{
			pred: func(cf *ConfigFile) (bool, error) {
				return cf.Value("C") != NotSet, nil
			},
			result: `
CONFIG_A=y
CONFIG_C=y
`,
		},
	}
	kconf, err := ParseData([]byte(kconfigData), "kconf")
	require.NoError(t, err)
	base, err := ParseConfigData([]byte(baseConfig), "base")
	require.NoError(t, err)
	full, err := ParseConfigData([]byte(fullConfig), "full")
	require.NoError(t, err)
	for i, test := range tests {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			res, err := kconf.Minimize(base, full, test.pred, &debugtracer.TestTracer{T: t})
			if err != nil {
				t.Fatal(err)
			}
			result := string(res.Serialize())
			if result != test.result {
				t.Fatalf("got:\n%v\n\nwant:\n%s", result, test.result)
			}
		})
	}
}

func TestReduce(t *testing.T) {
	kconf, err := ParseData([]byte(`
mainmenu "test"
config A
config B
config C
config D
`), "kconf")
	require.NoError(t, err)
	base, err := ParseConfigData([]byte("CONFIG_A=y\n"), "base")
	require.NoError(t, err)
	full, err := ParseConfigData([]byte("CONFIG_A=y\nCONFIG_B=y\nCONFIG_C=y\nCONFIG_D=y\n"), "full")
	require.NoError(t, err)
	r := rand.New(testutil.RandSource(t))
	// A predicate that always holds reduces all the way down to base.
	res, err := kconf.Reduce(base, full, func(cf *ConfigFile) (bool, error) {
		return true, nil
	}, 10, r, &debugtracer.TestTracer{T: t})
	require.NoError(t, err)
	require.Equal(t, string(base.Serialize()), string(res.Serialize()))
	// A predicate that never holds keeps the full config.
	res, err = kconf.Reduce(base, full, func(cf *ConfigFile) (bool, error) {
		return false, nil
	}, 10, r, &debugtracer.TestTracer{T: t})
	require.NoError(t, err)
	require.Equal(t, string(full.Serialize()), string(res.Serialize()))
}
