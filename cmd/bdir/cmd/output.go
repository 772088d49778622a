package cmd

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/bdirkit/pkg/storage"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatCBOR  = "cbor"
)

// output writes v in the format chosen with --output. The table format
// prints rows as aligned label/value pairs.
func output(cmd *cobra.Command, v interface{}, rows [][2]string) error {
	format, _ := cmd.Flags().GetString("output")
	w := cmd.OutOrStdout()

	switch format {
	case formatTable, "":
		return outputTable(w, rows)
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	case formatCBOR:
		data, err := cbor.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "encode cbor")
		}
		_, err = fmt.Fprintln(w, hex.EncodeToString(data))
		return err
	}
	return errors.Newf("unknown output format %q", format)
}

func outputTable(w io.Writer, rows [][2]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", row[0], row[1])
	}
	return tw.Flush()
}

// sortedRows lists m by key.
func sortedRows(m map[string]string) [][2]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][2]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, [2]string{k, m[k]})
	}
	return rows
}

func metaRows(m storage.Meta) [][2]string {
	return [][2]string{
		{"ID", m.ID},
		{"Modality", string(m.Modality)},
		{"Digest", m.Digest},
		{"Size", fmt.Sprint(m.Size)},
		{"Stored", m.StoredAt.Format(time.RFC3339)},
	}
}

// readInput reads a record file, or stdin for "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return data, nil
}

// writeOutput writes data to path, or stdout for "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
