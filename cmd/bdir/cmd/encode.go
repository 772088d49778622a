package cmd

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/bdirkit/pkg/bdir"
	"github.com/ssargent/bdirkit/pkg/finger"
	"github.com/ssargent/bdirkit/pkg/interchange"
	"github.com/ssargent/bdirkit/pkg/iris"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode <finger|iris>",
	Short: "Wrap an image in a finger or iris record",
	Long: `Build a single-image record around an already compressed image.

The purpose picks the target compression: AUTH stores lossy JPEG2000 and
REGISTRATION lossless JPEG2000. No image transcoder is built in, so the
--image-format must already match the target.

Examples:
  bdir encode finger --image index.jp2 --image-format jp2 --subtype "right index" \
      --purpose registration --width 320 --height 480 --out index.fir
  bdir encode iris --image eye.jp2 --image-format jp2-lossy --subtype left \
      --width 640 --height 480 --out eye.iir`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"finger", "iris"},
	RunE: func(cmd *cobra.Command, args []string) error {
		modality, err := bdir.ParseModality(args[0])
		if err != nil {
			return err
		}

		purposeName, _ := cmd.Flags().GetString("purpose")
		if purposeName == "" {
			purposeName = appConfig.Codec.Purpose
		}
		purpose, err := bdir.ParsePurpose(purposeName)
		if err != nil {
			return err
		}

		formatName, _ := cmd.Flags().GetString("image-format")
		format, err := bdir.ParseImageFormat(formatName)
		if err != nil {
			return err
		}

		imagePath, _ := cmd.Flags().GetString("image")
		image, err := readInput(cmd, imagePath)
		if err != nil {
			return err
		}

		subtype, _ := cmd.Flags().GetString("subtype")
		width, _ := cmd.Flags().GetUint16("width")
		height, _ := cmd.Flags().GetUint16("height")
		vendor, _ := cmd.Flags().GetUint16("vendor")
		deviceType, _ := cmd.Flags().GetUint16("device-type")
		quality, _ := cmd.Flags().GetUint8("quality")
		qualityVendor, _ := cmd.Flags().GetUint16("quality-vendor")
		qualityAlgorithm, _ := cmd.Flags().GetUint16("quality-algorithm")

		var data []byte
		switch modality {
		case bdir.ModalityFinger:
			resolution, _ := cmd.Flags().GetUint16("resolution")
			bitDepth, _ := cmd.Flags().GetUint8("bit-depth")
			data, err = finger.EncodeImage(cmd.Context(), finger.ImageRequest{
				Purpose:                  purpose,
				Subtype:                  subtype,
				CaptureTime:              time.Now(),
				DeviceVendor:             vendor,
				DeviceType:               deviceType,
				Quality:                  quality,
				QualityAlgorithmVendorID: qualityVendor,
				QualityAlgorithmID:       qualityAlgorithm,
				Width:                    width,
				Height:                   height,
				Resolution:               resolution,
				BitDepth:                 bitDepth,
				Image:                    image,
				Format:                   format,
			}, nil)
		case bdir.ModalityIris:
			data, err = iris.EncodeImage(cmd.Context(), iris.ImageRequest{
				Purpose:                  purpose,
				Subtype:                  subtype,
				CaptureTime:              time.Now(),
				DeviceVendor:             vendor,
				DeviceType:               deviceType,
				Quality:                  quality,
				QualityAlgorithmVendorID: qualityVendor,
				QualityAlgorithmID:       qualityAlgorithm,
				Width:                    width,
				Height:                   height,
				Image:                    image,
				Format:                   format,
			}, nil)
		}
		if errors.Is(err, bdir.ErrTranscoderRequired) {
			return errors.WithHint(err, "compress the image to the purpose's target format first")
		}
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if err := writeOutput(cmd, out, data); err != nil {
			return err
		}
		if out == "-" {
			return nil
		}

		d, err := interchange.Decode(data, interchange.DefaultSelector(modality), bdir.DecodeOptions{Logger: logger})
		if err != nil {
			return err
		}
		summary := d.Summary()
		return output(cmd, summary, summary.Rows())
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().String("image", "", "Compressed image file, or - for stdin (required)")
	encodeCmd.Flags().String("image-format", string(bdir.ImageFormatJPEG2000Lossless), "Format of the image file")
	encodeCmd.Flags().String("subtype", "", "Finger position or eye, e.g. \"right index\" or \"left\"")
	encodeCmd.Flags().StringP("purpose", "p", "", "AUTH or REGISTRATION (config default when empty)")
	encodeCmd.Flags().Uint16("width", 0, "Image width in pixels")
	encodeCmd.Flags().Uint16("height", 0, "Image height in pixels")
	encodeCmd.Flags().Uint16("resolution", 500, "Finger image resolution in pixels per inch")
	encodeCmd.Flags().Uint8("bit-depth", 8, "Finger image bit depth")
	encodeCmd.Flags().Uint16("vendor", 0, "Capture device vendor id")
	encodeCmd.Flags().Uint16("device-type", 0, "Capture device type id")
	encodeCmd.Flags().Uint8("quality", 0, "Quality score (0-100)")
	encodeCmd.Flags().Uint16("quality-vendor", 0, "Quality algorithm vendor id")
	encodeCmd.Flags().Uint16("quality-algorithm", 0, "Quality algorithm id; no quality block when 0")
	encodeCmd.Flags().String("out", "", "Output record path, or - for stdout (required)")
	if err := encodeCmd.MarkFlagRequired("image"); err != nil {
		panic(err)
	}
	if err := encodeCmd.MarkFlagRequired("out"); err != nil {
		panic(err)
	}
}
