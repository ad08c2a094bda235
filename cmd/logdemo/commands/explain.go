package commands

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/logargs/pkg/logargs"
)

// Sources of an explained session.
const (
	sourceEnvironment = "environment"
	sourceFlags       = "flags"
)

// explanation is what the explain command prints.
type explanation struct {
	Source    string          `yaml:"source"`
	FilterEnv string          `yaml:"filter_env"`
	Session   logargs.Session `yaml:"session"`
}

func init() {
	rootCmd.AddCommand(explainCmd)
}

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Print the logging session the other commands would install",
	Long: `Resolve the logging configuration from the environment and the
logging flags, and print it as YAML without installing it.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationSkipLogging: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		ex, err := explain(cfg.FilterEnv, logArgs, cfg.LevelMap())
		if err != nil {
			return exitError(err)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(ex); err != nil {
			return err
		}
		return enc.Close()
	},
}

// explain resolves the session the same way Execute would: the filter
// variable first, then the flags.
func explain(filterEnv string, args logargs.LoggingArgs, levelMap logargs.LevelMap) (explanation, error) {
	if s, ok := logargs.ParsePreArgsWithEnv(filterEnv).Session(); ok {
		return explanation{Source: sourceEnvironment, FilterEnv: filterEnv, Session: s}, nil
	}

	s, err := args.Resolve(levelMap)
	if err != nil {
		return explanation{}, err
	}
	return explanation{Source: sourceFlags, FilterEnv: filterEnv, Session: s}, nil
}
