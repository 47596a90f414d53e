package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"shoplens/internal/library"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	projectsCmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage saved projects",
	}

	projectsCmd.AddCommand(newProjectsListCommand(ctx))
	projectsCmd.AddCommand(newProjectsShowCommand(ctx))
	projectsCmd.AddCommand(newProjectsDeleteCommand(ctx))
	projectsCmd.AddCommand(newProjectsClearCommand(ctx))

	return projectsCmd
}

func newProjectsListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved projects, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				projects, err := store.ListProjects(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(projects) == 0 {
					fmt.Fprintln(out, "No saved projects")
					return nil
				}

				rows := make([][]string, 0, len(projects))
				for _, project := range projects {
					seoState := "-"
					if project.SEO != nil {
						seoState = string(project.SEO.Marketplace)
					}
					rows = append(rows, []string{
						project.ID,
						truncateLabel(project.Name, 32),
						strconv.Itoa(project.AssetCount()),
						seoState,
						formatTimestamp(project.UpdatedAt),
					})
				}
				fmt.Fprintln(out, renderTable(
					[]string{"ID", "Name", "Assets", "Listing", "Updated"},
					rows, 2))
				return nil
			})
		},
	}
}

func newProjectsShowCommand(ctx *commandContext) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "show <project-id>",
		Short: "Show one project's assets and listing content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				project, err := store.GetProject(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()

				fmt.Fprintf(out, "Project:     %s\n", project.Name)
				fmt.Fprintf(out, "Marketplace: %s\n", project.Marketplace)
				fmt.Fprintf(out, "Updated:     %s\n", formatTimestamp(project.UpdatedAt))

				rows := make([][]string, 0, len(project.Assets))
				for _, asset := range project.Assets {
					marker := ""
					if asset.ID == project.GalleryID {
						marker = "gallery"
					} else if asset.ID == project.ActiveID {
						marker = "active"
					}
					rows = append(rows, []string{
						asset.ID,
						string(asset.Type),
						truncateLabel(asset.Label, 36),
						marker,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Asset", "Type", "Label", ""}, rows))

				if project.SEO != nil {
					fmt.Fprintln(out)
					printSEOResult(out, project.SEO)
				}

				if outDir != "" {
					paths, err := writeAssets(outDir, project.Assets)
					if err != nil {
						return err
					}
					fmt.Fprintf(out, "\nExported %d images to %s\n", len(paths), outDir)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outDir, "export", "e", "", "Export the project's images to a directory")
	return cmd
}

func newProjectsDeleteCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete one saved project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *library.Store) error {
				if err := store.DeleteProject(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", args[0])
				return nil
			})
		},
	}
}

func newProjectsClearCommand(ctx *commandContext) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete all projects without --yes")
			}
			return ctx.withStore(func(store *library.Store) error {
				if err := store.DeleteAllProjects(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All projects deleted")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion of every saved project")
	return cmd
}
