package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docwell/docwell/pkg/service"
)

func NewRenderCmd(svc **service.Service) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "render ID",
		Short: "Render a page's Markdown as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			html, err := s.RenderPage(args[0])
			if err != nil {
				return err
			}

			if output != "" {
				if err := os.WriteFile(output, []byte(html), 0644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
				fmt.Printf("Wrote %s\n", output)
				return nil
			}
			fmt.Print(html)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write HTML to a file instead of stdout")
	return cmd
}
