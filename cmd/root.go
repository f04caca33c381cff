package cmd

import (
	"fmt"
	"os"

	"storage-kit/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd is the storage-kit entry point; subcommands attach in their init.
var RootCmd = &cobra.Command{
	Use:   "storage-kit",
	Short: "Blob and queue access for a storage account",
	Long: `storage-kit resolves a storage account from a connection string and
serves its blobs and queues over HTTP or from the command line.
Blobs can live on Azure Storage, an S3 compatible store or in memory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs RootCmd and exits non-zero on failure.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}
	if l, logErr := logger.NewConsole(); logErr == nil {
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
