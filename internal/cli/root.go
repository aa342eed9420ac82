package cli

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/coolclis/coolclis/internal/config"
	"github.com/coolclis/coolclis/internal/extractor"
	"github.com/coolclis/coolclis/internal/fetcher"
	"github.com/coolclis/coolclis/internal/github"
	"github.com/coolclis/coolclis/internal/installer"
	"github.com/coolclis/coolclis/internal/platform"
	"github.com/coolclis/coolclis/internal/registry"
)

func Execute() error {
	rootCmd := &cobra.Command{
		Use:           "coolclis",
		Short:         "Download and install CLI tools from GitHub releases",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		newInstallCmd(),
		newListCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newCheckCmd(),
		newVersionCmd(),
	)

	// Interrupts cancel the context so an in-flight download or
	// extraction unwinds and removes its temporary files.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func openRegistry(cfg *config.Config) (*registry.Store, error) {
	return registry.Open(cfg.RegistryDB, cfg.ToolsFile)
}

func newInstaller() (*installer.Installer, error) {
	plat, err := platform.Detect()
	if err != nil {
		return nil, err
	}
	return installer.New(
		github.NewClient(),
		fetcher.New(1*time.Hour),
		extractor.New(),
		plat), nil
}
