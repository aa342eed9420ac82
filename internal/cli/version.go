package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coolclis/coolclis/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the coolclis version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("coolclis", version.Version)
		},
	}
}
