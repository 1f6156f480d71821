package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docwell/docwell/pkg/service"
)

func NewSearchCmd(svc **service.Service) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Full-text search across pages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			hits, err := s.SearchPages(args[0], limit)
			if err != nil {
				return err
			}
			if len(hits) == 0 {
				fmt.Println("No matches")
				return nil
			}
			for _, h := range hits {
				location := h.Path
				if location == "" {
					location = "(root)"
				}
				fmt.Printf("%s — %s (%s)\n", h.Title, location, h.PageID)
				if h.Snippet != "" {
					fmt.Printf("    %s\n", h.Snippet)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of results")
	return cmd
}
