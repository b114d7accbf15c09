// Copyright 2026 Kconfiglib project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package tool

import (
	"errors"
	"fmt"
	"strings"
)

// FilesFlag allows passing a comma-separated list of files to a single flag.
type FilesFlag []string

// String converts the flag values into a string, which is required to parse
// them afterwards.
func (files *FilesFlag) String() string {
	return fmt.Sprint(*files)
}

// Set is used by flag.Parse to parse the command line arguments.
func (files *FilesFlag) Set(value string) error {
	if len(*files) > 0 {
		return errors.New("files flag was already set")
	}
	for _, file := range strings.Split(value, ",") {
		*files = append(*files, strings.TrimSpace(file))
	}
	return nil
}
