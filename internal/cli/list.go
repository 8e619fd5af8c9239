package cli

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rcliao/git-release-name/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the dictionary words in use",
		Run:   runList,
	}

	cmd.Flags().StringSliceP("include", "i", nil, "Word kinds to list: nouns|n, adjectives|adj, adverbs|adv (repeatable)")
	cmd.Flags().StringP("format", "f", "fixed", "Row format: csv or fixed")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	includes, _ := cmd.Flags().GetStringSlice("include")
	format, _ := cmd.Flags().GetString("format")

	kinds, err := parseKinds(includes)
	if err != nil {
		exitErr("list", err)
	}
	d, err := loadDictionary()
	if err != nil {
		exitErr("load dictionary", err)
	}

	entries := d.List(kinds...)
	switch format {
	case "csv":
		err = printCSV(cmd.OutOrStdout(), entries)
	case "fixed":
		printFixed(cmd.OutOrStdout(), entries)
	default:
		err = fmt.Errorf("unknown row format %q (use csv or fixed)", format)
	}
	if err != nil {
		exitErr("list", err)
	}
}

// parseKinds resolves include tokens, dropping repeats but keeping order.
func parseKinds(includes []string) ([]model.Kind, error) {
	var kinds []model.Kind
	seen := make(map[model.Kind]bool)
	for _, inc := range includes {
		k, err := model.ParseKind(inc)
		if err != nil {
			return nil, err
		}
		if !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds, nil
}

func printFixed(w io.Writer, entries []model.Entry) {
	fmt.Fprintf(w, "%4s %-20s %s\n", "type", "word", "index")
	for _, e := range entries {
		fmt.Fprintf(w, "%4s %-20s %d\n", e.Kind, e.Word, e.Index)
	}
}

func printCSV(w io.Writer, entries []model.Entry) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"type", "word", "index"})
	for _, e := range entries {
		cw.Write([]string{e.Kind.String(), e.Word, strconv.Itoa(e.Index)})
	}
	cw.Flush()
	return cw.Error()
}
