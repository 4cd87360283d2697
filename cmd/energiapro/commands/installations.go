package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/energiapro-io/energiapro-client/pkg/energiapro"
)

// installationHeaders are the tabular column names for installations.
var installationHeaders = []string{"ID", "Street Name", "Street Address", "Building", "Postal Code", "City"}

// NewInstallationsCommand creates the installations command
func NewInstallationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "installations CLIENT_ID",
		Aliases: []string{"installation"},
		Short:   "List installations",
		Long:    "List the gas installations attached to an EnergiaPro client account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := createClient()
			if err != nil {
				return err
			}

			installations, err := client.Installations().List(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to list installations: %w", err)
			}

			if len(installations) == 0 && viper.GetString("output") == OutputFormatTable {
				cmd.Println("No installations found")

				return nil
			}

			return renderRows(viper.GetString("output"), installations, installationHeaders, installationRow)
		},
	}
}

// installationRow projects an installation into table cells.
func installationRow(installation energiapro.Installation) []string {
	return []string{
		installation.ID,
		installation.StreetName,
		installation.StreetAddress,
		strconv.FormatInt(installation.BuildingNumber, 10),
		installation.PostalCode,
		installation.City,
	}
}
