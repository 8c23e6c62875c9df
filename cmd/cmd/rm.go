package cmd

import (
	"github.com/ostafen/minifs/internal/disk"
	"github.com/ostafen/minifs/internal/minifs"
	"github.com/spf13/cobra"
)

func DefineRmCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "rm <image> <name>",
		Short:        "Delete a file from an image",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunRm,
	}
}

func RunRm(cmd *cobra.Command, args []string) error {
	fsys, err := minifs.Mount(disk.NormalizeVolumePath(args[0]), loggerFromFlags(cmd))
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	return fsys.Delete(args[1])
}
