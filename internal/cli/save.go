package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/git-release-name/internal/sha"
	"github.com/rcliao/git-release-name/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "save SHA",
		Short: "Record the release name of a sha",
		Long:  "Resolve a sha and record its release name in the registry under a namespace (usually the project).",
		Args:  cobra.ExactArgs(1),
		Run:   runSave,
	}

	cmd.Flags().StringP("ns", "n", "", "Namespace (required)")
	addFormatFlag(cmd)

	cmd.MarkFlagRequired("ns")

	RootCmd.AddCommand(cmd)
}

func runSave(cmd *cobra.Command, args []string) {
	ns, _ := cmd.Flags().GetString("ns")

	format, err := formatFor(cmd)
	if err != nil {
		exitErr("format", err)
	}
	r, err := newResolver()
	if err != nil {
		exitErr("load dictionary", err)
	}

	key, err := sha.Parse(args[0])
	if err != nil {
		exitErr("save", err)
	}
	p, err := r.ResolveKey(key)
	if err != nil {
		exitErr("save", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rel, err := s.Put(cmd.Context(), store.PutParams{
		NS:   ns,
		SHA:  args[0],
		Name: p.WithCase(format).Render(),
		Case: format.String(),
	})
	if err != nil {
		exitErr("save", err)
	}
	logger.Debug("Recorded release", zap.String("ns", ns), zap.String("key", key.String()), zap.Int("version", rel.Version))

	b, _ := json.Marshal(rel)
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
