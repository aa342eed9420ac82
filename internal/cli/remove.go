package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coolclis/coolclis/internal/config"
)

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Remove a tool from the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			reg, err := openRegistry(cfg)
			if err != nil {
				return err
			}
			defer reg.Close()

			if err := reg.Remove(args[0]); err != nil {
				return err
			}

			fmt.Printf("%s removed %s\n", green("✓"), bold(args[0]))
			return nil
		},
	}
}
