package cmd

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ssargent/bdirkit/pkg/api"
	"github.com/ssargent/bdirkit/pkg/storage"
)

// openStore opens the record archive under the configured data directory.
func openStore() (api.RecordStoreCloser, error) {
	if container == nil {
		return nil, errors.New("dependency container not initialized")
	}
	if err := os.MkdirAll(appConfig.DataDir, 0750); err != nil {
		return nil, errors.Wrap(err, "failed to create data dir")
	}
	return container.GetRecordStoreFactory().CreateRecordStore(appConfig.DataDir)
}

// storeCmd represents the store command
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Archive records in the local record store",
	Long: `Archive encoded records under the data directory. Records are checked by
decoding them before they are stored, and identical bytes are stored once.`,
}

var storePutCmd = &cobra.Command{
	Use:   "put <file>",
	Short: "Store a record",
	Long: `Decode a record file and store it, printing its id and metadata.

Example:
  bdir store put right_index.fir`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, data, err := decodeInput(cmd, args[0], false)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		_, meta, err := store.Put(d.Selector.Modality, data)
		if err != nil {
			return err
		}
		logger.Debug("stored record", "id", meta.ID, "digest", meta.Digest)
		return output(cmd, meta, metaRows(meta))
	},
}

var storeGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Write a stored record to a file",
	Long: `Write the stored bytes of a record to --out, or stdout with --out -.

Example:
  bdir store get 2ZnTbcXn0QGXeUwQqM3Tq4pHGrP --out copy.fir`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := storage.ParseID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		data, err := store.Get(id)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString("out")
		return writeOutput(cmd, out, data)
	},
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := storage.ParseID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(id); err != nil {
			return err
		}
		cmd.Printf("Deleted record %s\n", id)
		return nil
	},
}

var storeInfoCmd = &cobra.Command{
	Use:   "info <id>",
	Short: "Show the metadata of a stored record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := storage.ParseID(args[0])
		if err != nil {
			return err
		}
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		meta, err := store.Meta(id)
		if err != nil {
			return err
		}
		return output(cmd, meta, metaRows(meta))
	},
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storePutCmd, storeGetCmd, storeDeleteCmd, storeInfoCmd)

	addRecordFlags(storePutCmd)
	storeGetCmd.Flags().String("out", "-", "Output path, or - for stdout")
}
