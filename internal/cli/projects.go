package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/folio/folio-go/internal/apiclient"
	"github.com/folio/folio-go/internal/model"
)

func (a *app) projectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"p"},
		Short:   "Browse and edit the project catalog",
	}
	cmd.AddCommand(
		a.projectsListCmd(),
		a.projectsSectionsCmd(),
		a.projectsShowCmd(),
		a.projectsAddCmd(),
		a.projectsEditCmd(),
	)
	return cmd
}

func (a *app) projectsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.client.ListProjects(a.context(cmd))
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No projects yet.")
				return nil
			}
			printProjects(cmd, projects)
			return nil
		},
	}
}

func (a *app) projectsSectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "Show projects grouped the way the site does",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.client.Sections(a.context(cmd))
			if err != nil {
				return fmt.Errorf("failed to load sections: %w", err)
			}
			for _, group := range []struct {
				name     string
				projects []model.Project
			}{
				{"Featured", s.Featured},
				{"Live", s.Live},
				{"In progress", s.InProgress},
				{"n8n workflows", s.N8N},
			} {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s (%d)\n", group.name, len(group.projects))
				fmt.Fprintln(cmd.OutOrStdout(), strings.Repeat("-", 60))
				printProjects(cmd, group.projects)
			}
			return nil
		},
	}
}

func (a *app) projectsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.client.GetProject(a.context(cmd), args[0])
			if errors.Is(err, apiclient.ErrNotFound) {
				return fmt.Errorf("project %s not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to load project: %w", err)
			}
			printProject(cmd, p)
			return nil
		},
	}
}

type projectFlags struct {
	title, description, category, status, link string
	tags                                       []string
}

func (f *projectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Project title")
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "Description")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "Category (default \""+model.DefaultCategory+"\")")
	cmd.Flags().StringVarP(&f.status, "status", "s", "", "Status (default \""+model.DefaultStatus+"\")")
	cmd.Flags().StringVarP(&f.link, "link", "l", "", "Project URL")
	cmd.Flags().StringSliceVar(&f.tags, "tags", nil, "Comma-separated tags")
}

// apply overlays the flags the user set onto in.
func (f *projectFlags) apply(cmd *cobra.Command, in *model.ProjectInput) {
	changed := cmd.Flags().Changed
	if changed("title") {
		in.Title = f.title
	}
	if changed("description") {
		in.Description = f.description
	}
	if changed("category") {
		in.Category = f.category
	}
	if changed("status") {
		in.Status = f.status
	}
	if changed("link") {
		in.Link = f.link
	}
	if changed("tags") {
		in.Tags = f.tags
	}
}

func (a *app) projectsAddCmd() *cobra.Command {
	var f projectFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a project (admin)",
		Long: `Add a project to the catalog.

Examples:
  folioctl projects add -t "Portfolio" -s Live --tags go,mysql
  folioctl projects add -t "Lead router" -c "N8N Workflow"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.RequireAdmin(); err != nil {
				return err
			}
			var in model.ProjectInput
			f.apply(cmd, &in)

			p, err := a.client.CreateProject(a.context(cmd), in)
			if err != nil {
				return fmt.Errorf("failed to add project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added project %d: %s\n", p.ID, p.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func (a *app) projectsEditCmd() *cobra.Command {
	var f projectFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a project (admin)",
		Long: `Edit a project. Fields without a flag keep their current value.

Examples:
  folioctl projects edit 12 -s Delivered
  folioctl projects edit 12 --tags go,chi,mysql`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.session.RequireAdmin(); err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid project id %q", args[0])
			}

			ctx := a.context(cmd)
			current, err := a.client.GetProject(ctx, args[0])
			if errors.Is(err, apiclient.ErrNotFound) {
				return fmt.Errorf("project %d not found", id)
			}
			if err != nil {
				return fmt.Errorf("failed to load project: %w", err)
			}

			in := model.ProjectInput{
				Title:       current.Title,
				Description: current.Description,
				Category:    current.Category,
				Status:      current.Status,
				Link:        current.Link,
				Tags:        current.Tags,
			}
			f.apply(cmd, &in)

			p, err := a.client.UpdateProject(ctx, id, in)
			if err != nil {
				return fmt.Errorf("failed to update project: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %d: %s\n", p.ID, p.Title)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func printProjects(cmd *cobra.Command, projects []model.Project) {
	for _, p := range projects {
		title := p.Title
		if len(title) > 36 {
			title = title[:33] + "..."
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %-5d  %-36s  %-18s  %s\n", p.ID, title, p.Category, p.Status)
	}
}

func printProject(cmd *cobra.Command, p model.Project) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "#%d %s\n", p.ID, p.Title)
	fmt.Fprintf(out, "  Category: %s\n", p.Category)
	fmt.Fprintf(out, "  Status:   %s\n", p.Status)
	if p.Link != "" {
		fmt.Fprintf(out, "  Link:     %s\n", p.Link)
	}
	if len(p.Tags) > 0 {
		fmt.Fprintf(out, "  Tags:     %s\n", strings.Join(p.Tags, ", "))
	}
	fmt.Fprintf(out, "  Created:  %s\n", p.CreatedAt.Format("2006-01-02"))
	if p.Description != "" {
		fmt.Fprintf(out, "\n%s\n", p.Description)
	}
}
