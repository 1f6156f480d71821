package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docwell/docwell/pkg/service"
	"github.com/docwell/docwell/pkg/tree"
)

func NewSectionCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "section",
		Short: "Manage sections",
	}

	cmd.AddCommand(newSectionNewCmd(svc))
	cmd.AddCommand(newSectionRenameCmd(svc))
	cmd.AddCommand(newSectionDeleteCmd(svc))
	return cmd
}

func newSectionNewCmd(svc **service.Service) *cobra.Command {
	var under string

	cmd := &cobra.Command{
		Use:   "new NAME",
		Short: "Create a new section",
		Long: `Create a new section at the root, or nested under an existing one.

Examples:
  docwell section new "Academic"
  docwell section new "Projects" --under academic-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			parent := under
			if parent == "" {
				parent = tree.RootSentinel
			}
			item, err := s.CreateSection(args[0], parent)
			if err != nil {
				return err
			}

			path, err := s.Store.PathOf(item.ID)
			if err != nil {
				path = item.Name
			}
			fmt.Printf("Created section %s (%s)\n", path, item.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&under, "under", "u", "", "Parent section id (default: root)")
	return cmd
}

func newSectionRenameCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a section",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := s.RenameSection(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed %s to %q\n", args[0], args[1])
			return nil
		},
	}
}

func newSectionDeleteCmd(svc **service.Service) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a section, its subsections and all their pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if !force {
				path, err := s.Store.PathOf(args[0])
				if err != nil {
					return err
				}
				if !confirm(cmd, fmt.Sprintf("Delete %q and all its content?", path)) {
					fmt.Println("Aborted")
					return nil
				}
			}

			deleted, err := s.DeleteSection(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Deleted section %s (%d pages removed)\n", args[0], len(deleted))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
