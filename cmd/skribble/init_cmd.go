package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/skribble/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .skribble.yaml settings file",
	Long: `Create a .skribble.yaml settings file in the current directory with sensible
defaults. With --with-style-config, the built-in style configuration is written too.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if err := writeNew(defaultSettingsFile, []byte(defaultSettings), force); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultSettingsFile)

		if withStyle, _ := cmd.Flags().GetBool("with-style-config"); withStyle {
			if err := writeNew(defaultStyleConfig, config.DefaultSource(), force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", defaultStyleConfig)
		}
		return nil
	},
}

func writeNew(path string, data []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

const defaultSettings = `# skribble configuration
# Docs: https://github.com/yacobolo/skribble

# Shared settings
style-config: skribble.config.json # empty or missing = built-in configuration
verbose: false
concurrency: 0                     # 0 = one file per CPU
imports:
  - "skribble-css/client:c"
  - "@skribble-css/client:c"

# Generation settings
generate:
  include:
    - "**/*.{js,jsx,mjs,cjs,ts,tsx,mts,cts}"
  css-output: src/styles/skribble.css
  types-output: src/skribble.d.ts
  no-types: false

# Linting settings
lint:
  strict: false
  output-format: issues    # issues | summary | full | json
  max-issues: 0            # 0 = unlimited
  max-same-issues: 0       # 0 = unlimited
  print-lines: true
  print-linter-name: true
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing files")
	initCmd.Flags().Bool("with-style-config", false, "Also write the built-in style configuration to "+defaultStyleConfig)
}
