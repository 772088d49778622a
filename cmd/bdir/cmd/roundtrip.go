package cmd

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// ErrRoundTripMismatch is returned when re-encoding changes the bytes.
var ErrRoundTripMismatch = errors.New("re-encoded record differs from input")

// RoundTripReport is printed by the roundtrip command
type RoundTripReport struct {
	Identical       bool `json:"identical" yaml:"identical" cbor:"identical"`
	InputLength     int  `json:"input_length" yaml:"input_length" cbor:"input_length"`
	OutputLength    int  `json:"output_length" yaml:"output_length" cbor:"output_length"`
	FirstDifference int  `json:"first_difference" yaml:"first_difference" cbor:"first_difference"`
}

// firstDifference is the offset of the first differing byte, or -1.
func firstDifference(a, b []byte) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return n
	}
	return -1
}

// roundtripCmd represents the roundtrip command
var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <file>",
	Short: "Decode and re-encode a record, comparing the bytes",
	Long: `Decode a record, encode it again with every length recomputed and compare
the result with the input. Records with stale length fields or trailing
bytes will differ; --write saves the normalized encoding.

Examples:
  bdir roundtrip right_index.fir
  bdir roundtrip --write fixed.fir legacy.fir`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, data, err := decodeInput(cmd, args[0], false)
		if err != nil {
			return err
		}
		encoded, err := d.Encode()
		if err != nil {
			return err
		}

		report := RoundTripReport{
			InputLength:     len(data),
			OutputLength:    len(encoded),
			FirstDifference: firstDifference(data, encoded),
		}
		report.Identical = report.FirstDifference < 0

		if path, _ := cmd.Flags().GetString("write"); path != "" {
			if err := writeOutput(cmd, path, encoded); err != nil {
				return err
			}
		}

		rows := [][2]string{
			{"Identical", strconv.FormatBool(report.Identical)},
			{"Input length", strconv.Itoa(report.InputLength)},
			{"Output length", strconv.Itoa(report.OutputLength)},
		}
		if !report.Identical {
			rows = append(rows, [2]string{"First difference", strconv.Itoa(report.FirstDifference)})
		}
		if err := output(cmd, report, rows); err != nil {
			return err
		}
		if !report.Identical {
			return errors.Wrapf(ErrRoundTripMismatch, "at offset %d", report.FirstDifference)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
	addRecordFlags(roundtripCmd)
	roundtripCmd.Flags().String("write", "", "Write the re-encoded record to this path")
}
