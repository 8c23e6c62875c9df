package cmd

import (
	"fmt"

	"github.com/ostafen/minifs/internal/disk"
	"github.com/ostafen/minifs/internal/minifs"
	"github.com/spf13/cobra"
)

func DefineStatCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "stat <image> <name>",
		Short:        "Print the size of a file stored in an image",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         RunStat,
	}
}

func RunStat(cmd *cobra.Command, args []string) error {
	fsys, err := minifs.Mount(disk.NormalizeVolumePath(args[0]), loggerFromFlags(cmd))
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	fd, err := fsys.Open(args[1])
	if err != nil {
		return err
	}
	defer fsys.Close(fd)

	size, err := fsys.Stat(fd)
	if err != nil {
		return err
	}

	fmt.Printf("Size of file '%s' is %d bytes\n", args[1], size)
	return nil
}
