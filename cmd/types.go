package cmd

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	m "extfix.dev/pkg/extfix/internal/model"
	"extfix.dev/pkg/extfix/internal/signature"
)

var typesFormatFlag string

// typesCmd represents the types command.
var typesCmd = newTypesCmd()

func newTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the known file types and their signatures",
		Long:  "List every registered file type with its canonical extension, alias extensions and signature bytes.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries := collectTypeEntries(sigTable, resolver)

			switch typesFormatFlag {
			case "table":
				cmd.Print(renderTypesTable(entries))
				return nil
			case "yaml":
				out, err := yaml.Marshal(entries)
				if err != nil {
					return fmt.Errorf("encode types: %w", err)
				}

				cmd.Print(string(out))

				return nil
			default:
				return fmt.Errorf("unknown format %q (want table or yaml)", typesFormatFlag)
			}
		},
	}

	cmd.Flags().StringVar(&typesFormatFlag, "format", "table", "output format: table or yaml")

	return cmd
}

func init() {
	rootCmd.AddCommand(typesCmd)
}

// typeEntry is the external representation of one registry row.
type typeEntry struct {
	Type       string   `yaml:"type"`
	Extension  string   `yaml:"extension"`
	Aliases    []string `yaml:"aliases,omitempty"`
	Signatures []string `yaml:"signatures"`
}

func collectTypeEntries(table signature.Table, res signature.Resolver) []typeEntry {
	byType := make(map[m.FileType][]string)

	for _, rule := range table.Rules() {
		byType[rule.Type] = append(byType[rule.Type], formatSignature(rule))
	}

	entries := make([]typeEntry, 0, len(byType))

	for fileType, signatures := range byType {
		aliases := res.Aliases(fileType)

		entry := typeEntry{
			Type:       string(fileType),
			Extension:  res.Canonical(fileType),
			Signatures: signatures,
		}
		if len(aliases) > 1 {
			entry.Aliases = aliases[1:]
		}

		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Type < entries[j].Type
	})

	return entries
}

// formatSignature renders a rule as hex, with ?? for wildcard bytes and the
// offset prefixed when non-zero: "@4 66 74 79 70 ...".
func formatSignature(rule signature.Rule) string {
	parts := make([]string, 0, len(rule.Pattern)+1)

	if rule.Offset != 0 {
		parts = append(parts, fmt.Sprintf("@%d", rule.Offset))
	}

	for i, b := range rule.Pattern {
		if rule.Mask[i] == 0 {
			parts = append(parts, "??")
			continue
		}

		parts = append(parts, fmt.Sprintf("%02X", b))
	}

	return strings.Join(parts, " ")
}

func renderTypesTable(entries []typeEntry) string {
	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Type", "Extension", "Aliases", "Signatures"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
	})

	for _, entry := range entries {
		table.Append([]string{
			entry.Type,
			entry.Extension,
			strings.Join(entry.Aliases, ", "),
			strings.Join(entry.Signatures, "; "),
		})
	}

	table.Render()

	return buf.String()
}
