package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"itrfiling/internal/service"
	"itrfiling/internal/taxengine"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type compareFlags struct {
	file    string
	out     string
	format  string
	encrypt bool
}

func newCompareCommand(v *viper.Viper) *cobra.Command {
	var f compareFlags
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compute both regimes for a filing file and recommend one",
		Long: `Reads a filing in the body format of POST /api/tax/compare and prints the comparison.
Age-encrypted input is decrypted with TAX_PASSPHRASE or an interactive prompt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompare(cmd, v, f)
		},
	}
	cmd.Flags().StringVarP(&f.file, "file", "f", "", "filing JSON file, - for stdin")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write the result here instead of stdout")
	cmd.Flags().StringVar(&f.format, "format", "json", "output format: json or text")
	cmd.Flags().BoolVar(&f.encrypt, "encrypt", false, "Age-encrypt the output with the passphrase")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runCompare(cmd *cobra.Command, v *viper.Viper, f compareFlags) error {
	if f.format != "json" && f.format != "text" {
		return fmt.Errorf("unknown format %q", f.format)
	}
	passphrase := newPassphraseSource(v.GetString(keyPassphrase), cmd.ErrOrStderr())

	data, err := readInput(cmd, f.file)
	if err != nil {
		return err
	}
	var secret string
	if isEncrypted(data) {
		if secret, err = passphrase("Passphrase: "); err != nil {
			return err
		}
		if data, err = decryptData(data, secret); err != nil {
			return err
		}
	}

	var req service.CompareRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("failed to parse filing: %w", err)
	}

	res, err := service.NewTaxService(taxengine.NewEngine(engineOptions(v))).Compare(cmd.Context(), req)
	if err != nil {
		return err
	}

	var out []byte
	if f.format == "text" {
		out = renderComparison(res)
	} else if out, err = json.MarshalIndent(res, "", "  "); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if f.encrypt {
		if secret == "" {
			if secret, err = passphrase("Output passphrase: "); err != nil {
				return err
			}
		}
		if out, err = encryptData(out, secret); err != nil {
			return fmt.Errorf("failed to encrypt result: %w", err)
		}
	}

	if f.out == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	return os.WriteFile(f.out, out, 0o600)
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read filing: %w", err)
	}
	return data, nil
}

func renderComparison(res service.ComparisonResponse) []byte {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Regime\tTaxable income\tFlat rate income\tTotal tax\tRefund (payable)\t")
	for _, r := range []taxengine.TaxComputationResult{res.OldRegimeResult, res.NewRegimeResult} {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t\n",
			r.Regime,
			r.TaxableIncome.StringFixed(2),
			r.FlatRateIncome.StringFixed(2),
			r.TotalTaxLiability.StringFixed(2),
			r.RefundOrPayable.StringFixed(2))
	}
	_ = w.Flush()

	fmt.Fprintf(&buf, "\nRecommended: %s (saves %s)\n", res.RecommendedRegime, res.SavingsAmount.StringFixed(2))
	if len(res.Warnings) > 0 {
		fmt.Fprintln(&buf, "\nWarnings:")
		for _, warn := range res.Warnings {
			fmt.Fprintf(&buf, "  %s: %s\n", warn.Code, warn.Message)
		}
	}
	return buf.Bytes()
}
