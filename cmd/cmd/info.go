package cmd

import (
	"os"

	"github.com/ostafen/minifs/internal/disk"
	"github.com/ostafen/minifs/internal/minifs"
	"github.com/spf13/cobra"
)

func DefineInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:          "info <image>",
		Short:        "Print filesystem metadata",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE:         RunInfo,
	}
}

func RunInfo(cmd *cobra.Command, args []string) error {
	fsys, err := minifs.Mount(disk.NormalizeVolumePath(args[0]), loggerFromFlags(cmd))
	if err != nil {
		return err
	}
	defer fsys.Unmount()

	return fsys.Info(os.Stdout)
}
