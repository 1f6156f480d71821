package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/docwell/docwell/pkg/models"
	"github.com/docwell/docwell/pkg/service"
)

func NewListCmd(svc **service.Service) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the document tree",
		Long: `Print the section/page hierarchy with ids.

Examples:
  docwell list
  docwell list --section academic-1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			var roots []*models.Item
			if section != "" {
				item, ok := s.Store.Tree().Items[section]
				if !ok {
					return fmt.Errorf("section not found: %s", section)
				}
				roots = []*models.Item{item}
			} else {
				roots = s.Store.RootItems()
			}

			if len(roots) == 0 && len(s.Store.RootPages()) == 0 {
				fmt.Println("No sections yet. Create one with: docwell section new NAME")
				return nil
			}

			for _, item := range roots {
				printItem(s, item, 0)
			}
			if section == "" {
				for _, page := range s.Store.RootPages() {
					fmt.Printf("- %s (%s)\n", page.Title, page.ID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Only show this section's subtree")
	return cmd
}

func printItem(s *service.Service, item *models.Item, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Printf("%s%s/ (%s)\n", indent, item.Name, item.ID)

	for _, page := range s.Store.PagesOf(item.ID) {
		fmt.Printf("%s  - %s (%s)\n", indent, page.Title, page.ID)
	}
	for _, child := range s.Store.ChildrenOf(item.ID) {
		printItem(s, child, depth+1)
	}
}

func NewPathCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "path ID",
		Short: "Show where a section sits in the hierarchy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			path, err := s.Store.PathOf(args[0])
			if err != nil {
				return err
			}
			fmt.Println(path)
			return nil
		},
	}
}
