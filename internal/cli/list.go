package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/coolclis/coolclis/internal/config"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered tools",
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

			tools, err := reg.List()
			if err != nil {
				return err
			}

			if len(tools) == 0 {
				fmt.Printf("%s No tools registered. Add one with %s\n",
					dim("○"), bold("coolclis add owner/repo"))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n", bold("NAME"), bold("REPOSITORY"), bold("DESCRIPTION"))
			for _, tool := range tools {
				fmt.Fprintf(w, "%s\t%s\t%s\n", tool.Name, tool.Repo, tool.Description)
			}
			return w.Flush()
		},
	}
}
