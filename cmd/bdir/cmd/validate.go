package cmd

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/hengadev/errsx"
	"github.com/spf13/cobra"

	"github.com/ssargent/bdirkit/pkg/bdir"
)

// ErrInvalidRecord is returned after reporting a record that fails validation.
var ErrInvalidRecord = errors.New("record is not valid")

// ValidationReport is printed by the validate command
type ValidationReport struct {
	Valid   bool              `json:"valid" yaml:"valid" cbor:"valid"`
	Purpose bdir.Purpose      `json:"purpose" yaml:"purpose" cbor:"purpose"`
	Errors  map[string]string `json:"errors,omitempty" yaml:"errors,omitempty" cbor:"errors,omitempty"`
}

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a record against the field rules for a purpose",
	Long: `Decode a record and check every field against the rules for the given
purpose. AUTH accepts lossy compression and unknown positions; REGISTRATION
requires lossless images of a known finger or eye.

The command exits non-zero when the record is not valid.

Examples:
  bdir validate --purpose registration right_index.fir
  bdir validate -o json left_eye.iir`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		purposeName, _ := cmd.Flags().GetString("purpose")
		if purposeName == "" {
			purposeName = appConfig.Codec.Purpose
		}
		purpose, err := bdir.ParsePurpose(purposeName)
		if err != nil {
			return err
		}

		d, _, err := decodeInput(cmd, args[0], false)
		if err != nil {
			return err
		}

		report := ValidationReport{Valid: true, Purpose: purpose}
		if err := d.Validate(purpose); err != nil {
			errs, ok := err.(errsx.Map)
			if !ok {
				return err
			}
			report.Valid = false
			report.Errors = make(map[string]string, len(errs))
			for field, fieldErr := range errs {
				report.Errors[field] = fmt.Sprint(fieldErr)
			}
		}

		rows := [][2]string{
			{"Purpose", string(report.Purpose)},
			{"Valid", strconv.FormatBool(report.Valid)},
		}
		rows = append(rows, sortedRows(report.Errors)...)
		if err := output(cmd, report, rows); err != nil {
			return err
		}
		if !report.Valid {
			return errors.Wrapf(ErrInvalidRecord, "%d invalid fields for %s", len(report.Errors), purpose)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addRecordFlags(validateCmd)
	validateCmd.Flags().StringP("purpose", "p", "", "AUTH or REGISTRATION (config default when empty)")
}
