package cmd

import (
	"os"

	"github.com/ostafen/minifs/internal/disk"
	"github.com/ostafen/minifs/internal/minifs"
	"github.com/spf13/cobra"
)

func DefineLsCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "ls <image>",
		Short:        "List the files stored in an image",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunLs,
	}
}

func RunLs(cmd *cobra.Command, args []string) error {
	fsys, err := minifs.Mount(disk.NormalizeVolumePath(args[0]), loggerFromFlags(cmd))
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	return fsys.Ls(os.Stdout)
}
