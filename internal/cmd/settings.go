package cmd

import (
	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/config"
	"github.com/impactboard/admin-cli/pkg/output"
)

// settingKeys are the keys shown by "settings show", in display order.
var settingKeys = []string{
	"api.base_url",
	"api.timeout",
	"api.retry_count",
	"output.format",
	"log.level",
	"log.file",
	"notify.ttl_seconds",
	"approvals.page_size",
	"approvals.demo_fallback",
	"realtime.url",
}

var settingsCmd = &cobra.Command{
	Use:     "settings",
	Aliases: []string{"config"},
	Short:   "Manage CLI settings",
	Long:    "Show and change the values in the CLI config file",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make(map[string]string, len(settingKeys))
		fields := make([]output.Field, 0, len(settingKeys)+1)
		for _, k := range settingKeys {
			values[k] = config.GetString(k)
			fields = append(fields, output.Field{Label: k, Value: values[k]})
		}
		fields = append(fields, output.Field{Label: "config file", Value: config.GetConfigFilePath()})
		return output.PrintRecord("", values, fields)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:       "set <key> <value>",
	Short:     "Save a setting to the config file",
	Args:      cobra.ExactArgs(2),
	ValidArgs: settingKeys,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.SetString(args[0], args[1]); err != nil {
			return err
		}
		output.PrintSuccess("✓ %s = %s", args[0], args[1])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
