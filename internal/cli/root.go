// Package cli implements the git-release-name CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rcliao/git-release-name/internal/config"
	"github.com/rcliao/git-release-name/internal/dictionary"
	"github.com/rcliao/git-release-name/internal/phrase"
	"github.com/rcliao/git-release-name/internal/store"
)

var (
	configPath string
	dbPath     string
	wordsDir   string
	verbose    bool

	cfg    = config.Default()
	logger = zap.NewNop()
)

// RootCmd is the top-level command. Given shas it prints their names.
var RootCmd = &cobra.Command{
	Use:   "git-release-name [SHA...]",
	Short: "Generate a release name from a git sha",
	Long: `Takes a git sha and uses its relatively unique combination of letters and
numbers to generate a release name of the form "adverb adjective noun".

Each argument is looked up in turn. Shas shorter than 8 characters are
left-padded with zeros; only the first 8 characters of longer shas are used.
With no arguments, shas are read one per line from stdin, or a random name is
printed when stdin is a terminal.`,
	Args:              cobra.ArbitraryArgs,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: runLookup,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/git-release-name/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Registry database path (default: $GIT_RELEASE_NAME_DB or ~/.git-release-name/names.db)")
	RootCmd.PersistentFlags().StringVar(&wordsDir, "words", "", "Directory holding adverbs.txt, adjectives.txt and nouns.txt")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	addFormatFlag(RootCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configPath, nil)
	if err != nil {
		return err
	}
	if dbPath != "" {
		loaded.DB = dbPath
	}
	if wordsDir != "" {
		loaded.DictionaryDir = wordsDir
	}
	cfg = loaded

	level, _ := cfg.Level()
	if verbose {
		level = zapcore.DebugLevel
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	l, err := zc.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	logger.Debug("Config loaded",
		zap.String("format", cfg.Format),
		zap.String("dictionary_dir", cfg.DictionaryDir),
		zap.String("db", cfg.DB))
	return nil
}

// addFormatFlag registers -f/--format for case selection on cmd.
func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "", fmt.Sprintf("Case format of the phrase: %v (default from config, else lower)", phrase.Cases()))
}

// formatFor returns the case requested on cmd. A flag that was given but is
// not a known token is an error; an absent flag falls back to the config.
func formatFor(cmd *cobra.Command) (phrase.Case, error) {
	if cmd.Flags().Changed("format") {
		token, _ := cmd.Flags().GetString("format")
		return phrase.ParseCase(token)
	}
	return cfg.Case()
}

func loadDictionary() (*dictionary.Dictionary, error) {
	if cfg.DictionaryDir == "" {
		return dictionary.Default(), nil
	}
	logger.Debug("Loading word lists", zap.String("dir", cfg.DictionaryDir))
	return dictionary.LoadDir(cfg.DictionaryDir)
}

func newResolver() (*phrase.Resolver, error) {
	d, err := loadDictionary()
	if err != nil {
		return nil, err
	}
	return phrase.NewResolver(d), nil
}

func getDBPath() string {
	if cfg.DB != "" {
		return cfg.DB
	}
	return config.Default().DB
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
