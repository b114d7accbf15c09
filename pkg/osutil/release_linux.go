// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package osutil

import "syscall"

// OSRelease returns the release field of uname(2), e.g. "6.8.0-45-generic".
func OSRelease() string {
	var uts syscall.Utsname
	if err := syscall.Uname(&uts); err != nil {
		return ""
	}
	var release []byte
	for _, ch := range uts.Release {
		if ch == 0 {
			break
		}
		release = append(release, byte(ch))
	}
	return string(release)
}
