package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docwell/docwell/pkg/service"
)

func NewPageCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Manage pages",
	}

	cmd.AddCommand(newPageNewCmd(svc))
	cmd.AddCommand(newPageShowCmd(svc))
	cmd.AddCommand(newPageEditCmd(svc))
	cmd.AddCommand(newPageMoveCmd(svc))
	cmd.AddCommand(newPageDeleteCmd(svc))
	return cmd
}

func newPageNewCmd(svc **service.Service) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "new TITLE",
		Short: "Create a new page under a section",
		Long: `Create a new Markdown page with starter content.

Examples:
  docwell page new "Notes" --section projects-2`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			page, err := s.CreatePage(section, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created page %q (%s)\n", page.Title, page.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Parent section id (required)")
	_ = cmd.MarkFlagRequired("section")
	return cmd
}

func newPageShowCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Print a page's Markdown source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			page, ok := s.Store.Tree().Pages[args[0]]
			if !ok {
				return fmt.Errorf("page not found: %s", args[0])
			}
			fmt.Print(page.Content)
			return nil
		},
	}
}

func newPageEditCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID",
		Short: "Open a page in your editor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := s.EditPage(args[0]); err != nil {
				return err
			}
			fmt.Printf("Saved page %s\n", args[0])
			return nil
		},
	}
}

func newPageMoveCmd(svc **service.Service) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "move ID",
		Short: "Move a page to a different section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := s.MovePage(args[0], section); err != nil {
				return err
			}
			fmt.Printf("Moved page %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Target section id (default: root)")
	return cmd
}

func newPageDeleteCmd(svc **service.Service) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if !force {
				page, ok := s.Store.Tree().Pages[args[0]]
				if !ok {
					return fmt.Errorf("page not found: %s", args[0])
				}
				if !confirm(cmd, fmt.Sprintf("Delete page %q?", page.Title)) {
					fmt.Println("Aborted")
					return nil
				}
			}

			if err := s.DeletePage(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted page %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
