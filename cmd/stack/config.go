package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-stack/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the embedded default configuration as YAML.

Save it to ~/.stack/configs/stack.yaml or ./configs/stack.yaml and edit
it to tune the game. With --effective, the config that would actually be
loaded (search path, --config and --theme applied) is printed instead.

Examples:
  stack config > ~/.stack/configs/stack.yaml
  stack config --effective --config ./my-stack.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the resolved config instead of the default")
	configCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagEffective {
		fmt.Print(string(config.GetDefaultYAML()))
		return
	}

	cfg, err := loadConfig(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	if err := cfg.Validate(); err != nil {
		fail("invalid config: %v", err)
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fail("encoding config: %v", err)
	}
	fmt.Print(string(out))
}
