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
	"path/filepath"
	"strings"

	"github.com/ostafen/minifs/internal/disk"
	"github.com/ostafen/minifs/internal/fuse"
	"github.com/ostafen/minifs/internal/minifs"
	"github.com/spf13/cobra"
)

func DefineMountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mount <image>",
		Short: "Mount an image read-only to a specified mountpoint",
		Long: `The 'mount' command exposes the root directory of an image through FUSE.
The mount is strictly read-only: file contents are served straight from the
image's data blocks. If no mountpoint is given, one is derived from the
image name.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunMount,
	}

	cmd.Flags().StringP("mountpoint", "m", "", "Absolute path to the directory where the filesystem will be mounted. If not specified, a default will be generated.")
	return cmd
}

func RunMount(cmd *cobra.Command, args []string) error {
	path := disk.NormalizeVolumePath(args[0])

	// Snapshot the metadata with the read-write mount, then serve file
	// contents from a read-only view of the image.
	fsys, err := minifs.Mount(path, loggerFromFlags(cmd))
	if err != nil {
		return err
	}

	files, err := fsys.Files()
	if err != nil {
		fsys.Unmount()
		return err
	}
	if err := fsys.Unmount(); err != nil {
		return err
	}

	mountpoint, _ := cmd.Flags().GetString("mountpoint")
	if mountpoint == "" {
		mountpoint = getMountpoint(args[0])
	}

	r, err := disk.OpenReadOnly(path)
	if err != nil {
		return err
	}
	defer r.Close()

	return fuse.Mount(mountpoint, r, files)
}

// getMountpoint generates a mountpoint name from the image name by
// stripping the extension. If the extension is empty, "_mnt" is added.
func getMountpoint(imageName string) string {
	baseName := filepath.Base(imageName)
	ext := filepath.Ext(baseName)
	baseName = strings.TrimSuffix(baseName, ext)
	mountpoint := baseName
	if ext == "" {
		mountpoint += "_mnt"
	}
	return mountpoint
}
