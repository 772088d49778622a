package cmd

import (
	"github.com/spf13/cobra"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode <file>",
	Short: "Decode a record and print its summary",
	Long: `Decode a finger or iris record and print a summary of its headers.

With --header-only the image data and extended blocks are skipped, which is
enough to read the capture geometry of large records.

Examples:
  bdir decode right_index.fir
  bdir decode --header-only -o json left_eye.iir
  cat record.bin | bdir decode -m finger -`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		headerOnly := appConfig.Codec.HeaderOnly
		if cmd.Flags().Changed("header-only") {
			headerOnly, _ = cmd.Flags().GetBool("header-only")
		}

		d, _, err := decodeInput(cmd, args[0], headerOnly)
		if err != nil {
			return err
		}
		summary := d.Summary()
		return output(cmd, summary, summary.Rows())
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	addRecordFlags(decodeCmd)
	decodeCmd.Flags().Bool("header-only", false, "Skip the image data and extended blocks")
}
