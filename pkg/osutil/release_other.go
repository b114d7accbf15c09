// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

//go:build !linux

package osutil

// OSRelease returns the kernel release on systems that expose it; there is
// no portable way to get it elsewhere.
func OSRelease() string {
	return ""
}
