package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/ostafen/minifs/internal/disk"
	"github.com/ostafen/minifs/internal/minifs"
	"github.com/ostafen/minifs/pkg/reader"
	"github.com/spf13/cobra"
)

func DefineCatCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "cat <image> <name>",
		Short:        "Stream a file out of an image",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunCat,
	}

	cmd.Flags().StringP("output", "o", "", "write the file contents to the given host path instead of stdout")
	return cmd
}

func RunCat(cmd *cobra.Command, args []string) error {
	fsys, err := minifs.Mount(disk.NormalizeVolumePath(args[0]), loggerFromFlags(cmd))
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	f, err := openFsFile(fsys, args[1])
	if err != nil {
		return err
	}
	defer f.Close()

	r := reader.NewBlockReader(f, minifs.BlockSize)

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		_, err = io.Copy(os.Stdout, r)
		return err
	}

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create file %q: %w", output, err)
	}
	defer out.Close()

	w := bufio.NewWriterSize(out, 32*1024)
	if _, err := io.Copy(w, r); err != nil {
		return err
	}
	return w.Flush()
}
