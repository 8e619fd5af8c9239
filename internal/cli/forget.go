package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/git-release-name/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "forget SHA",
		Short: "Delete a recorded release name",
		Args:  cobra.ExactArgs(1),
		Run:   runForget,
	}

	cmd.Flags().StringP("ns", "n", "", "Namespace (required)")
	cmd.Flags().Bool("hard", false, "Permanent delete (irreversible)")

	cmd.MarkFlagRequired("ns")

	RootCmd.AddCommand(cmd)
}

func runForget(cmd *cobra.Command, args []string) {
	ns, _ := cmd.Flags().GetString("ns")
	hard, _ := cmd.Flags().GetBool("hard")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	err = s.Rm(cmd.Context(), store.RmParams{
		NS:   ns,
		SHA:  args[0],
		Hard: hard,
	})
	if err != nil {
		exitErr("forget", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"ns":%q,"sha":%q}`+"\n", ns, args[0])
}
