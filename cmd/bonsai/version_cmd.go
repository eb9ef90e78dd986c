package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// VersionMajor is the major number in bonsai's version
	VersionMajor = 0
	// VersionMinor is the minor number in bonsai's version
	VersionMinor = 1
	// VersionPatch is the patch number in bonsai's version
	VersionPatch = 0
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of bonsai",
		Long:  `All software has versions. This is bonsai's`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("bonsai v%s\n", version())
		},
	}
}

func version() string {
	return fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
}
