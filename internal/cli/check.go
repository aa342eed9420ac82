package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/coolclis/coolclis/internal/config"
	"github.com/coolclis/coolclis/internal/github"
)

const checkParallelism = 8

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify that every registered repository still exists",
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
				fmt.Printf("%s No tools registered\n", dim("○"))
				return nil
			}

			client := github.NewClient()
			lines := make([]string, len(tools))
			bad := make([]bool, len(tools))

			ctx := cmd.Context()
			g, gctx := errgroup.WithContext(ctx)
			g.SetLimit(min(len(tools), checkParallelism))

			stop := withSpinner(ctx, fmt.Sprintf("Checking %d repositories...", len(tools)))
			for i, tool := range tools {
				i, tool := i, tool
				g.Go(func() error {
					ok, err := client.RepoExists(gctx, tool.Repo)
					switch {
					case err != nil:
						lines[i] = fmt.Sprintf("%s %s %s %v", yellow("!"), bold(tool.Name), dim(tool.Repo), err)
						bad[i] = true
					case !ok:
						lines[i] = fmt.Sprintf("%s %s %s repository not found", red("✗"), bold(tool.Name), dim(tool.Repo))
						bad[i] = true
					default:
						lines[i] = fmt.Sprintf("%s %s %s", green("✓"), bold(tool.Name), dim(tool.Repo))
					}
					return nil
				})
			}
			_ = g.Wait()
			stop()

			failures := 0
			for i, line := range lines {
				fmt.Println(line)
				if bad[i] {
					failures++
				}
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d repositories failed validation", failures, len(tools))
			}
			return nil
		},
	}
}
