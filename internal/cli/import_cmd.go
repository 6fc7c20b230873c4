package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import customers and team members from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportDirectory(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d customers and %d team members\n",
				result.CustomerCount, result.TeamCount)
			return nil
		},
	}
}
