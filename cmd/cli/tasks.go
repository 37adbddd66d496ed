package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ErlanBelekov/taskboard/internal/client/api"
	"github.com/spf13/cobra"
)

func newTasksCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and manage your tasks",
	}

	cmd.AddCommand(newTasksListCmd(a))
	cmd.AddCommand(newTasksAddCmd(a))
	cmd.AddCommand(newTasksGetCmd(a))
	cmd.AddCommand(newTasksUpdateCmd(a))
	cmd.AddCommand(newTasksDeleteCmd(a))

	return cmd
}

func newTasksListCmd(a *app) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your tasks, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.protected(cmd.Context(), func(ctx context.Context, _ api.User) error {
				tasks, err := a.client.ListTasks(ctx, status)
				if err != nil {
					return err
				}
				return formatTaskTable(cmd.OutOrStdout(), tasks)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "only tasks with this status (pending, in-progress, completed)")
	return cmd
}

func newTasksAddCmd(a *app) *cobra.Command {
	req := api.CreateTaskRequest{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Title = args[0]
			return a.protected(cmd.Context(), func(ctx context.Context, _ api.User) error {
				task, err := a.client.CreateTask(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created task %s.\n", task.ID)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&req.Description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&req.Status, "status", "s", "", "initial status (default pending)")
	cmd.Flags().StringVarP(&req.Color, "color", "c", "", "display color (default #ffffff)")
	return cmd
}

func newTasksGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.protected(cmd.Context(), func(ctx context.Context, _ api.User) error {
				task, err := a.client.GetTask(ctx, args[0])
				if err != nil {
					return err
				}
				printTask(cmd.OutOrStdout(), task)
				return nil
			})
		},
	}
}

func newTasksUpdateCmd(a *app) *cobra.Command {
	var title, description, status, color string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a task; omitted flags are left as they are",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.UpdateTaskRequest{}
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("description") {
				req.Description = &description
			}
			if flags.Changed("status") {
				req.Status = &status
			}
			if flags.Changed("color") {
				req.Color = &color
			}
			if req == (api.UpdateTaskRequest{}) {
				return fmt.Errorf("nothing to update: pass at least one of --title, --description, --status, --color")
			}

			return a.protected(cmd.Context(), func(ctx context.Context, _ api.User) error {
				task, err := a.client.UpdateTask(ctx, args[0], req)
				if err != nil {
					return err
				}
				printTask(cmd.OutOrStdout(), task)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description (empty clears it)")
	cmd.Flags().StringVarP(&status, "status", "s", "", "new status")
	cmd.Flags().StringVarP(&color, "color", "c", "", "new color")
	return cmd
}

func newTasksDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.protected(cmd.Context(), func(ctx context.Context, _ api.User) error {
				if err := a.client.DeleteTask(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s.\n", args[0])
				return nil
			})
		},
	}
}

func formatTaskTable(w io.Writer, tasks []api.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tCOLOR\tCREATED")
	for _, t := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Title, t.Color, t.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func printTask(w io.Writer, t *api.Task) {
	fmt.Fprintf(w, "ID:          %s\n", t.ID)
	fmt.Fprintf(w, "Title:       %s\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", t.Description)
	}
	fmt.Fprintf(w, "Status:      %s\n", t.Status)
	fmt.Fprintf(w, "Color:       %s\n", t.Color)
	fmt.Fprintf(w, "Created:     %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Updated:     %s\n", t.UpdatedAt.Local().Format("2006-01-02 15:04"))
}
