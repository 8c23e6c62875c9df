// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ostafen/minifs/internal/disk"
	"github.com/ostafen/minifs/internal/minifs"
	"github.com/ostafen/minifs/pkg/util/format"
	osutil "github.com/ostafen/minifs/pkg/util/os"
	"github.com/spf13/cobra"
)

func DefineAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <image> <host-path>...",
		Short: "Copy host files into an image",
		Long: `The 'add' command copies one or more host files into the image, each under
its base name. A directory argument adds every regular file it contains
(non-recursive).`,
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE:         RunAdd,
	}
}

func RunAdd(cmd *cobra.Command, args []string) error {
	fsys, err := minifs.Mount(disk.NormalizeVolumePath(args[0]), loggerFromFlags(cmd))
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	for _, arg := range args[1:] {
		paths, err := osutil.ListFiles(arg)
		if err != nil {
			return err
		}

		for _, path := range paths {
			if err := addFile(fsys, path); err != nil {
				return err
			}
		}
	}
	return nil
}

func addFile(fsys *minifs.FS, path string) error {
	name := filepath.Base(path)

	if err := fsys.Create(name); err != nil {
		return err
	}

	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := openFsFile(fsys, name)
	if err != nil {
		return err
	}
	defer dst.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		return fmt.Errorf("failed to add %q: %w", path, err)
	}

	fmt.Printf("[INFO] Added %s (%s)\n", name, format.FormatBytes(n))
	return nil
}
