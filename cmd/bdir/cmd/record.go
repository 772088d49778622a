package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/bdirkit/pkg/bdir"
	"github.com/ssargent/bdirkit/pkg/interchange"
)

// addRecordFlags registers the decoder selection flags.
func addRecordFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("modality", "m", "", "Record modality: finger or iris (detected from the format identifier when empty)")
	cmd.Flags().String("version", "", "Record standard version, e.g. ISO19794_4_2011 (modality default when empty)")
}

// selectorFor resolves the decoder for data from the flags.
func selectorFor(cmd *cobra.Command, data []byte) (interchange.Selector, error) {
	modality, _ := cmd.Flags().GetString("modality")
	version, _ := cmd.Flags().GetString("version")

	if modality == "" {
		m, err := interchange.Detect(data)
		if err != nil {
			return interchange.Selector{}, err
		}
		modality = string(m)
	}
	return interchange.ParseSelector(modality, version)
}

// decodeInput reads and decodes the record at path.
func decodeInput(cmd *cobra.Command, path string, headerOnly bool) (*interchange.Decoded, []byte, error) {
	data, err := readInput(cmd, path)
	if err != nil {
		return nil, nil, err
	}
	sel, err := selectorFor(cmd, data)
	if err != nil {
		return nil, nil, err
	}
	d, err := interchange.Decode(data, sel, bdir.DecodeOptions{HeaderOnly: headerOnly, Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	return d, data, nil
}
