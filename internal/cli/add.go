package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coolclis/coolclis/internal/config"
	"github.com/coolclis/coolclis/internal/domain"
)

func newAddCmd() *cobra.Command {
	var name string
	var description string

	cmd := &cobra.Command{
		Use:   "add <owner/repo>",
		Short: "Register a tool for install by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo := args[0]
			parts := strings.Split(repo, "/")
			if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
				return fmt.Errorf("repository must be in the format owner/repo, got %q", repo)
			}

			if name == "" {
				name = parts[1]
			}
			if description == "" {
				description = "No description provided"
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			reg, err := openRegistry(cfg)
			if err != nil {
				return err
			}
			defer reg.Close()

			if err := reg.Add(domain.Tool{Name: name, Repo: repo, Description: description}); err != nil {
				return err
			}

			fmt.Printf("%s registered %s %s %s\n", green("✓"), bold(name), dim("->"), repo)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Tool name (defaults to the repository name)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Description of the tool")
	return cmd
}
