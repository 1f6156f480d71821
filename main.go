package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/docwell/docwell/cmd"
	"github.com/docwell/docwell/cmd/config"
	"github.com/docwell/docwell/pkg/service"
)

var svc *service.Service

func main() {
	rootCmd := &cobra.Command{
		Use:   "docwell",
		Short: "A hierarchical personal documentation manager",
		Long: `docwell organizes Markdown pages into a tree of sections, keeps the
tree persisted locally, and can sync it with a directory on disk where
sections are folders and pages are Markdown files.`,
		SilenceUsage: true,
	}
	config.RegisterFlags(rootCmd)
	cobra.OnInitialize(config.InitConfig)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logrus.WarnLevel)

		var err error
		svc, err = config.InitService(logger)
		if err != nil {
			return fmt.Errorf("failed to initialize service: %w", err)
		}
		return nil
	}

	rootCmd.AddCommand(cmd.NewSectionCmd(&svc))
	rootCmd.AddCommand(cmd.NewPageCmd(&svc))
	rootCmd.AddCommand(cmd.NewListCmd(&svc))
	rootCmd.AddCommand(cmd.NewPathCmd(&svc))
	rootCmd.AddCommand(cmd.NewImportCmd(&svc))
	rootCmd.AddCommand(cmd.NewExportCmd(&svc))
	rootCmd.AddCommand(cmd.NewRenderCmd(&svc))
	rootCmd.AddCommand(cmd.NewSearchCmd(&svc))
	rootCmd.AddCommand(cmd.NewProjectCmd(&svc))
	rootCmd.AddCommand(cmd.NewClearCmd(&svc))
	rootCmd.AddCommand(cmd.NewVersionCmd())

	err := rootCmd.Execute()
	if svc != nil {
		if cerr := svc.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "Warning: close service: %v\n", cerr)
		}
	}
	if err != nil {
		os.Exit(1)
	}
}
