package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jobledger/jobledger/internal/cli/formatter"
	"github.com/jobledger/jobledger/internal/domain"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage the team directory",
	}

	cmd.AddCommand(
		newTeamAddCmd(app),
		newTeamListCmd(app),
		newTeamArchiveCmd(app),
	)

	return cmd
}

func newTeamAddCmd(app *App) *cobra.Command {
	var name, role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a team member",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now().UTC()
			m := &domain.TeamMember{
				ID:        uuid.New().String(),
				Name:      name,
				Role:      role,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := app.Team.Create(context.Background(), m); err != nil {
				return err
			}
			fmt.Printf("Added team member %s [%s]\n", m.Name, formatter.ShortID(m.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Member name")
	cmd.Flags().StringVar(&role, "role", "", "Role (e.g. technician, apprentice)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List team members",
		RunE: func(cmd *cobra.Command, args []string) error {
			members, err := app.Team.List(context.Background(), all)
			if err != nil {
				return err
			}
			if len(members) == 0 {
				fmt.Println("No team members found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTeamList(members))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include archived members")

	return cmd
}

func newTeamArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive MEMBER",
		Short: "Archive a team member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			memberID, err := resolveTeamMemberID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Team.Archive(ctx, memberID); err != nil {
				return err
			}
			fmt.Printf("Archived team member %s\n", formatter.ShortID(memberID))
			return nil
		},
	}
}
