package cmd

import (
	"github.com/ostafen/minifs/internal/disk"
	"github.com/ostafen/minifs/internal/minifs"
	"github.com/spf13/cobra"
)

func DefineCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "create <image> <name>",
		Short:        "Create an empty file in an image",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunCreate,
	}
}

func RunCreate(cmd *cobra.Command, args []string) error {
	fsys, err := minifs.Mount(disk.NormalizeVolumePath(args[0]), loggerFromFlags(cmd))
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	return fsys.Create(args[1])
}
