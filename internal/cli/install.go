package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/mitchellh/go-homedir"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/coolclis/coolclis/internal/config"
	"github.com/coolclis/coolclis/internal/domain"
)

func newInstallCmd() *cobra.Command {
	var version string
	var dir string
	var binary string

	cmd := &cobra.Command{
		Use:   "install <tool|owner/repo>",
		Short: "Install a tool from its GitHub release assets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			repo, err := resolveRepo(cfg, args[0])
			if err != nil {
				return err
			}

			if binary == "" {
				binary = repo[strings.LastIndex(repo, "/")+1:]
			}
			if dir == "" {
				dir = cfg.BinDir
			} else {
				if dir, err = homedir.Expand(dir); err != nil {
					return err
				}
			}

			inst, err := newInstaller()
			if err != nil {
				return err
			}

			fmt.Printf("Installing %s from %s\n", bold(binary), cyan(repo))

			var bar *progressbar.ProgressBar
			progress := func(received, total int64) {
				if bar == nil {
					bar = progressbar.DefaultBytes(total, "Downloading "+binary)
				}
				bar.Set64(received)
			}

			res, err := inst.Install(cmd.Context(), domain.InstallRequest{
				Repo:    repo,
				Binary:  binary,
				Version: version,
				Dir:     dir,
			}, progress)
			if bar != nil {
				bar.Finish()
				fmt.Println()
			}
			if err != nil {
				return err
			}

			fmt.Printf("%s %s%s%s\n  %s %s %s\n  %s %s\n",
				green("✓"), bold(binary), bold("@"), bold(res.Tag),
				cyan("asset:"), res.Asset.Name, dim("("+humanize.Bytes(uint64(res.Asset.Size))+")"),
				cyan("path:"), res.Path)
			fmt.Printf("%s\n", dim("Make sure "+dir+" is in your PATH"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&version, "version", "v", "", "Release tag to install (defaults to latest)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Installation directory (defaults to ~/.local/bin)")
	cmd.Flags().StringVarP(&binary, "name", "n", "", "Binary name (defaults to the repository name)")
	return cmd
}

// resolveRepo turns the install argument into an owner/repo pair, going
// through the tool registry when a bare name is given.
func resolveRepo(cfg *config.Config, arg string) (string, error) {
	if strings.Contains(arg, "/") {
		if strings.Count(arg, "/") != 1 {
			return "", fmt.Errorf("repository must be in the format owner/repo, got %q", arg)
		}
		return arg, nil
	}

	reg, err := openRegistry(cfg)
	if err != nil {
		return "", err
	}
	defer reg.Close()

	tool, ok, err := reg.Lookup(arg)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", fmt.Errorf("unknown tool %q; run %s to see registered tools", arg, bold("coolclis list"))
	}
	return tool.Repo, nil
}
