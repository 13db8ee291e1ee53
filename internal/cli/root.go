// Package cli implements the itr command: offline regime comparison for a
// filing kept in a (possibly Age-encrypted) JSON file.
package cli

import (
	"fmt"
	"io"
	"strings"

	"itrfiling/internal/taxengine"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Engine switches share their names with the server's TAX_* environment.
const (
	keyRebate87A  = "apply-rebate-87a"
	keySurcharge  = "apply-surcharge"
	keyAgeBased   = "age-based-slabs"
	keyPassphrase = "passphrase"
)

// NewRootCommand builds the itr command tree writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("TAX")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	var cfgFile string
	root := &cobra.Command{
		Use:           "itr",
		Short:         "Compare old and new regime income tax for a filing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if cfgFile == "" {
				return nil
			}
			v.SetConfigFile(cfgFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("failed to read config %s: %w", cfgFile, err)
			}
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	flags.Bool(keyRebate87A, false, "apply the section 87A rebate")
	flags.Bool(keySurcharge, false, "apply surcharge above 50 lakh")
	flags.Bool(keyAgeBased, false, "use the senior and super senior old regime slabs")
	for _, key := range []string{keyRebate87A, keySurcharge, keyAgeBased} {
		_ = v.BindPFlag(key, flags.Lookup(key))
	}

	root.AddCommand(newCompareCommand(v), newSchedulesCommand(v))
	return root
}

func engineOptions(v *viper.Viper) taxengine.Options {
	return taxengine.Options{
		ApplyRebate87A: v.GetBool(keyRebate87A),
		ApplySurcharge: v.GetBool(keySurcharge),
		AgeBasedSlabs:  v.GetBool(keyAgeBased),
	}
}
