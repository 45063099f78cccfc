package app

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"

	"varbin/internal/cli"
	"varbin/internal/config"
)

func newConfigCmd(g *cli.Global) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective defaults (built-ins overlaid with the config file) as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, cfg, err := setup(cmd, g, nil)
			if err != nil {
				return err
			}
			b, err := config.Marshal(cfg)
			if err != nil {
				return runtimeError(err)
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

// jsonOut writes v as indented JSON.
func jsonOut(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
