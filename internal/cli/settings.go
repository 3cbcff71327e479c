package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindSettings connects persistent flags to SPECFLOW_* environment
// variables, so `SPECFLOW_SCHEMA=minimal specflow status x` behaves like
// `specflow status x --schema minimal`.
func bindSettings(cmd *cobra.Command) {
	viper.SetEnvPrefix("SPECFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlag("schema", cmd.PersistentFlags().Lookup("schema"))
}

// schemaOverride returns the effective --schema value, env included. Empty
// means "use the change metadata or project default".
func schemaOverride() string {
	return strings.TrimSpace(viper.GetString("schema"))
}
