package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export recorded release names as JSON",
		Long:  "Export every live version in the registry as JSON. Filter by namespace with -n.",
		Run:   runExport,
	}

	cmd.Flags().StringP("ns", "n", "", "Filter by namespace")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	ns, _ := cmd.Flags().GetString("ns")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	releases, err := s.ExportAll(cmd.Context(), ns)
	if err != nil {
		exitErr("export", err)
	}

	b, _ := json.MarshalIndent(releases, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
