package cmd

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/impactboard/admin-cli/pkg/api"
	"github.com/impactboard/admin-cli/pkg/notify"
	"github.com/impactboard/admin-cli/pkg/service"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for bash, zsh, fish, or powershell.

To load completions in your shell session, run:

Bash:
  source <(impactboard-admin completion bash)

Zsh:
  source <(impactboard-admin completion zsh)

Fish:
  impactboard-admin completion fish | source

PowerShell:
  impactboard-admin completion powershell | Out-String | Invoke-Expression

To load completions for every new session, execute once:

Bash:
  impactboard-admin completion bash > /etc/bash_completion.d/impactboard-admin

Zsh:
  impactboard-admin completion zsh > /usr/local/share/zsh/site-functions/_impactboard-admin

Fish:
  impactboard-admin completion fish > ~/.config/fish/completions/impactboard-admin.fish

PowerShell:
  impactboard-admin completion powershell >> $PROFILE
`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
		return fmt.Errorf("unknown shell: %s", args[0])
	},
}

// completePendingIDs offers the IDs of the pending queue, described by type
// and title. Demo data is never offered and no toasts are shown.
func completePendingIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 && cmd != approvalsApproveCmd {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	svc := service.NewApprovalsService(api.Default().Admin, notify.NewQueue(), service.ApprovalsOptions{})
	if !svc.Load(cmd.Context()) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var ids []string
	for _, it := range svc.Items() {
		if slices.Contains(args, it.ID) {
			continue
		}
		ids = append(ids, fmt.Sprintf("%s\t%s: %s", it.ID, it.ContentType, it.Title))
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	for _, c := range []*cobra.Command{approvalsShowCmd, approvalsApproveCmd, approvalsRejectCmd} {
		c.ValidArgsFunction = completePendingIDs
	}
	rootCmd.AddCommand(completionCmd)
}
