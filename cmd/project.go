package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docwell/docwell/pkg/service"
	"github.com/docwell/docwell/pkg/sync"
	"github.com/docwell/docwell/pkg/sync/local"
)

func NewProjectCmd(svc **service.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage project directories",
	}

	cmd.AddCommand(newProjectNewCmd(svc))
	cmd.AddCommand(newProjectAddCmd(svc))
	cmd.AddCommand(newProjectListCmd(svc))
	cmd.AddCommand(newProjectRemoveCmd(svc))
	return cmd
}

func newProjectNewCmd(svc **service.Service) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "new [PATH]",
		Short: "Start a fresh project in a directory",
		Long: `Reset the document tree and seed the chosen directory with a
welcome README. The directory is registered for later import/export.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			picker := &local.DirPicker{}
			if len(args) > 0 {
				picker.Path = args[0]
			}

			root, err := s.StartProject(picker)
			if errors.Is(err, sync.ErrCancelled) {
				fmt.Println("Cancelled")
				return nil
			}
			if err != nil {
				return err
			}

			if name != "" {
				if dir, ok := root.(*local.DirFolder); ok {
					if err := s.Projects.Add(name, dir.Path()); err != nil {
						s.Log.Warnf("register project: %v", err)
					}
				}
			}
			fmt.Println("Project created")
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Register the directory under this name")
	return cmd
}

func newProjectAddCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME PATH",
		Short: "Register an existing directory as a named project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := s.Projects.Add(args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Registered project %q\n", args[0])
			return nil
		},
	}
}

func newProjectListCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			projects, err := s.Projects.List()
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Println("No projects registered")
				return nil
			}
			for _, p := range projects {
				fmt.Printf("%s\t%s\n", p.Name, p.Path)
			}
			return nil
		},
	}
}

func newProjectRemoveCmd(svc **service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Unregister a project (the directory is untouched)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc
			if err := s.Projects.Remove(args[0]); err != nil {
				return err
			}
			fmt.Printf("Removed project %q\n", args[0])
			return nil
		},
	}
}

func NewClearCmd(svc **service.Service) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all local data",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := *svc

			if !force && !confirm(cmd, "Clear all data? This cannot be undone") {
				fmt.Println("Aborted")
				return nil
			}
			if err := s.ClearAll(); err != nil {
				return err
			}
			fmt.Println("All data cleared")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation")
	return cmd
}
