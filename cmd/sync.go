package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docwell/docwell/pkg/service"
	"github.com/docwell/docwell/pkg/sync"
	"github.com/docwell/docwell/pkg/sync/local"
)

// resolvePicker builds a directory picker from a positional path argument
// or a registered project name. With neither, the picker prompts.
func resolvePicker(s *service.Service, args []string, projectName string) (*local.DirPicker, error) {
	if projectName != "" {
		p, err := s.Projects.Get(projectName)
		if err != nil {
			return nil, err
		}
		if err := s.Projects.Touch(projectName); err != nil {
			s.Log.Debugf("touch project %s: %v", projectName, err)
		}
		return &local.DirPicker{Path: p.Path}, nil
	}
	if len(args) > 0 {
		return &local.DirPicker{Path: args[0]}, nil
	}
	return &local.DirPicker{}, nil
}

func NewImportCmd(svc **service.Service) *cobra.Command {
	var projectName string

	cmd := &cobra.Command{
		Use:   "import [PATH]",
		Short: "Replace the tree with the contents of a directory",
		Long: `Walk a directory and rebuild the document tree from it: each
directory becomes a section, each Markdown file a page. Unreadable entries
are skipped and reported.

Examples:
  docwell import ~/notes
  docwell import --project thesis
  docwell import              # prompts for a directory`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			picker, err := resolvePicker(s, args, projectName)
			if err != nil {
				return err
			}

			report, err := s.Import(picker)
			if errors.Is(err, sync.ErrCancelled) {
				fmt.Println("Import cancelled")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Imported %s\n", report.Summary())
			for _, msg := range report.Errors {
				fmt.Printf("  skipped: %s\n", msg)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "Use a registered project directory")
	return cmd
}

func NewExportCmd(svc **service.Service) *cobra.Command {
	var projectName string

	cmd := &cobra.Command{
		Use:   "export [PATH]",
		Short: "Write the tree out to a directory",
		Long: `Materialize the document tree on disk: a directory per section, a
Markdown file per page. Existing files are overwritten in place; exporting an
unchanged tree twice makes no new entries.

Examples:
  docwell export ~/notes
  docwell export --project thesis`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			picker, err := resolvePicker(s, args, projectName)
			if err != nil {
				return err
			}

			report, err := s.Export(picker)
			if errors.Is(err, sync.ErrCancelled) {
				fmt.Println("Export cancelled")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Printf("Exported %s\n", report.Summary())
			for _, msg := range report.Errors {
				fmt.Printf("  skipped: %s\n", msg)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&projectName, "project", "p", "", "Use a registered project directory")
	return cmd
}
