// Package cli implements the validatus command line.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Gobd/validatus"
	"github.com/Gobd/validatus/internal/logging"
)

// ErrInvalid is returned by the check command when the value fails its rules.
var ErrInvalid = errors.New("value is invalid")

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:   "validatus",
		Short: "Validate text values against named rules",
		Long: `validatus checks a value against an ordered list of named rules such as
required, isEmail, isLength or isURL, and reports the result of every rule.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.Setup(verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRulesCmd())
	rootCmd.AddCommand(newSchemaCmd())

	return rootCmd
}

type ruleFlags struct {
	file  string
	specs []string
}

func (f *ruleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.file, "rules", "r", "", "YAML or JSON file with the rule list")
	cmd.Flags().StringArrayVar(&f.specs, "rule", nil, "Rule as name or name=<yaml config>, repeatable")
}

func (f *ruleFlags) load() ([]validatus.Descriptor, error) {
	var ds validatus.Descriptors
	if f.file != "" {
		b, err := os.ReadFile(f.file)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &ds); err != nil {
			return nil, fmt.Errorf("%s: %w", f.file, err)
		}
	}
	for _, spec := range f.specs {
		d, err := ParseRuleSpec(spec)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	log.Debug().Int("rules", len(ds)).Str("file", f.file).Msg("Rules loaded")
	return ds, nil
}

// ParseRuleSpec parses a --rule flag value. A config after "=" that starts
// with { or [ is read as a YAML flow collection. Anything else is kept as a
// string, so contains=007 seeds "007" and not 7.
func ParseRuleSpec(spec string) (validatus.Descriptor, error) {
	name, raw, ok := strings.Cut(spec, "=")
	if !ok || raw == "" {
		return validatus.ParseDescriptor(name)
	}
	var config any = raw
	if trimmed := strings.TrimSpace(raw); strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		if err := yaml.Unmarshal([]byte(trimmed), &config); err != nil {
			return validatus.Descriptor{}, fmt.Errorf("rule %s: %w", name, err)
		}
	}
	return validatus.ParseDescriptor(map[string]any{name: config})
}

func newRegistry() *validatus.Registry {
	return validatus.New(validatus.WithLogger(logging.Get("registry")))
}

func readValue(cmd *cobra.Command, arg string) (string, error) {
	if arg != "-" {
		return arg, nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}

func newCheckCmd() *cobra.Command {
	var (
		rules  ruleFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "check VALUE",
		Short: "Check a value against rules",
		Long: `Check a value against rules and print the result of every rule.
Use - as VALUE to read it from stdin. Exits non-zero when the value is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := readValue(cmd, args[0])
			if err != nil {
				return err
			}
			descriptors, err := rules.load()
			if err != nil {
				return err
			}

			reg := newRegistry()
			res, err := reg.Evaluate(value, descriptors...)
			if err != nil {
				return err
			}

			switch output {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			case "text":
				writeText(cmd.OutOrStdout(), reg, value, descriptors, res)
			default:
				return fmt.Errorf("unknown output format %q", output)
			}

			if !res.Valid {
				return ErrInvalid
			}
			return nil
		},
	}

	rules.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "text", "Output format: text or json")
	return cmd
}

func writeText(w io.Writer, reg *validatus.Registry, value string, descriptors []validatus.Descriptor, res validatus.Result) {
	var failures validatus.ValidationErrors
	if err := reg.Validate(value, descriptors...); err != nil {
		_ = errors.As(err, &failures)
	}

	for name, ok := range res.Validations.All() {
		if ok {
			fmt.Fprintf(w, "ok   %s\n", name)
			continue
		}
		if msg, found := failures[name]; found {
			fmt.Fprintf(w, "FAIL %s: %s\n", name, msg)
			continue
		}
		fmt.Fprintf(w, "FAIL %s\n", name)
	}

	switch {
	case res.Validations.Len() == 0:
		fmt.Fprintln(w, "no rules")
	case res.Valid:
		fmt.Fprintln(w, "valid")
	default:
		fmt.Fprintln(w, "invalid")
	}
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the available rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range newRegistry().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newSchemaCmd() *cobra.Command {
	var rules ruleFlags

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the rules as an OpenAPI schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			descriptors, err := rules.load()
			if err != nil {
				return err
			}
			schema, err := newRegistry().Schema(descriptors...)
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return nil
		},
	}

	rules.register(cmd)
	return cmd
}
