package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rcliao/git-release-name/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show dictionary and registry statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	d, err := loadDictionary()
	if err != nil {
		exitErr("load dictionary", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	st, err := s.Stats(cmd.Context(), getDBPath())
	if err != nil {
		exitErr("stats", err)
	}

	out := struct {
		Dictionary map[string]int `json:"dictionary"`
		Registry   any            `json:"registry"`
	}{
		Dictionary: map[string]int{
			model.Adverb.Plural():    d.Len(model.Adverb),
			model.Adjective.Plural(): d.Len(model.Adjective),
			model.Noun.Plural():      d.Len(model.Noun),
		},
		Registry: st,
	}

	b, _ := json.MarshalIndent(out, "", "  ")
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
