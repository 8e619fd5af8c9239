package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/git-release-name/internal/model"
	"github.com/rcliao/git-release-name/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded release names",
		Long:  "List the latest recorded name per sha, or every version recorded for one sha with --sha.",
		Run:   runHistory,
	}

	cmd.Flags().StringP("ns", "n", "", "Filter by namespace")
	cmd.Flags().String("sha", "", "Show all versions for this sha (requires --ns)")
	cmd.Flags().IntP("limit", "l", 20, "Max results")
	cmd.Flags().Bool("names-only", false, "Only output sha and name")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	ns, _ := cmd.Flags().GetString("ns")
	shaFlag, _ := cmd.Flags().GetString("sha")
	limit, _ := cmd.Flags().GetInt("limit")
	namesOnly, _ := cmd.Flags().GetBool("names-only")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var releases []model.Release
	if shaFlag != "" {
		if ns == "" {
			exitErr("history", fmt.Errorf("--sha requires --ns"))
		}
		releases, err = s.Get(cmd.Context(), store.GetParams{NS: ns, SHA: shaFlag, History: true})
	} else {
		releases, err = s.List(cmd.Context(), store.ListParams{NS: ns, Limit: limit})
	}
	if err != nil {
		exitErr("history", err)
	}

	out := cmd.OutOrStdout()
	if namesOnly {
		for _, r := range releases {
			fmt.Fprintf(out, "%s %s\n", r.SHA, r.Name)
		}
		return
	}

	b, _ := json.MarshalIndent(releases, "", "  ")
	fmt.Fprintln(out, string(b))
}
