package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"storage-kit/core/storage"
	"storage-kit/feature/blob"

	"github.com/spf13/cobra"
)

var (
	blobTier        string
	blobOverwrite   bool
	blobContentType string
	blobOutput      string
	blobPrefix      string
)

// blobCmd represents the blob command
var blobCmd = &cobra.Command{
	Use:   "blob",
	Short: "Work with blobs in the configured storage account",
}

// withBlobs runs fn against the blob facade and releases the services afterwards.
func withBlobs(fn func(cmd *cobra.Command, svc *blob.Service, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		svcs, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer svcs.Close(cmd.Context())
		return fn(cmd, svcs.blobs.Service(), args)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var blobUploadCmd = &cobra.Command{
	Use:   "upload <container> <key> <file|->",
	Short: "Upload a file (or stdin) to container/key",
	Args:  cobra.ExactArgs(3),
	RunE: withBlobs(func(cmd *cobra.Command, svc *blob.Service, args []string) error {
		tier, err := storage.ParseTier(blobTier)
		if err != nil {
			return err
		}

		var r io.Reader = cmd.InOrStdin()
		if args[2] != "-" {
			f, err := os.Open(args[2])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[2], err)
			}
			defer f.Close()
			r = f
		}

		opts := blob.UploadOptions{Tier: tier, DeleteExisting: blobOverwrite, ContentType: blobContentType}
		if err := svc.Upload(cmd.Context(), args[0], args[1], r, opts); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s/%s\n", args[0], args[1])
		return nil
	}),
}

var blobDownloadCmd = &cobra.Command{
	Use:   "download <container> <key>",
	Short: "Download container/key to stdout or --out",
	Args:  cobra.ExactArgs(2),
	RunE: withBlobs(func(cmd *cobra.Command, svc *blob.Service, args []string) error {
		data, err := svc.Download(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		if blobOutput == "" || blobOutput == "-" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		return os.WriteFile(blobOutput, data, 0o644)
	}),
}

var blobDeleteCmd = &cobra.Command{
	Use:   "delete <container> <key>",
	Short: "Delete container/key if it exists",
	Args:  cobra.ExactArgs(2),
	RunE: withBlobs(func(cmd *cobra.Command, svc *blob.Service, args []string) error {
		deleted, err := svc.Delete(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), deleted)
		return nil
	}),
}

var blobTierCmd = &cobra.Command{
	Use:   "tier <container> <key> <hot|cool|archive>",
	Short: "Change the access tier of container/key",
	Args:  cobra.ExactArgs(3),
	RunE: withBlobs(func(cmd *cobra.Command, svc *blob.Service, args []string) error {
		tier, err := storage.ParseTier(args[2])
		if err != nil {
			return err
		}
		return svc.SetTier(cmd.Context(), args[0], args[1], tier)
	}),
}

var blobPropsCmd = &cobra.Command{
	Use:   "props <container> <key>",
	Short: "Print the properties of container/key as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: withBlobs(func(cmd *cobra.Command, svc *blob.Service, args []string) error {
		props, err := svc.Properties(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), props)
	}),
}

var blobExistsCmd = &cobra.Command{
	Use:   "exists <container> <key>",
	Short: "Print whether container/key exists",
	Args:  cobra.ExactArgs(2),
	RunE: withBlobs(func(cmd *cobra.Command, svc *blob.Service, args []string) error {
		ok, err := svc.Exists(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ok)
		return nil
	}),
}

var blobListCmd = &cobra.Command{
	Use:   "list <container>",
	Short: "List keys under --prefix",
	Args:  cobra.ExactArgs(1),
	RunE: withBlobs(func(cmd *cobra.Command, svc *blob.Service, args []string) error {
		keys, err := svc.List(cmd.Context(), args[0], blobPrefix)
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(cmd.OutOrStdout(), k)
		}
		return nil
	}),
}

var blobContainerExistsCmd = &cobra.Command{
	Use:   "container-exists <container>",
	Short: "Print whether the container exists",
	Args:  cobra.ExactArgs(1),
	RunE: withBlobs(func(cmd *cobra.Command, svc *blob.Service, args []string) error {
		ok, err := svc.ContainerExists(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), ok)
		return nil
	}),
}

func init() {
	blobUploadCmd.Flags().StringVar(&blobTier, "tier", "", "Access tier applied after upload (hot, cool, archive)")
	blobUploadCmd.Flags().BoolVar(&blobOverwrite, "overwrite", false, "Delete the existing blob before uploading")
	blobUploadCmd.Flags().StringVar(&blobContentType, "content-type", "", "Content type stored with the blob")
	blobDownloadCmd.Flags().StringVarP(&blobOutput, "out", "o", "", "Write to this file instead of stdout")
	blobListCmd.Flags().StringVar(&blobPrefix, "prefix", "", "Only list keys starting with this prefix")

	blobCmd.AddCommand(blobUploadCmd, blobDownloadCmd, blobDeleteCmd, blobTierCmd,
		blobPropsCmd, blobExistsCmd, blobListCmd, blobContainerExistsCmd)
	RootCmd.AddCommand(blobCmd)
}
