package cmd

import (
	"time"

	"storage-kit/core/queue"
	queuefeature "storage-kit/feature/queue"

	"github.com/spf13/cobra"
)

var (
	queueTTL         time.Duration
	queueDelay       time.Duration
	queueNeverExpire bool
)

// queueCmd represents the queue command
var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Work with queues in the configured storage account",
}

var queueEnqueueCmd = &cobra.Command{
	Use:   "enqueue <queue> <message>",
	Short: "Add a message to a queue, creating it if needed",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		svcs, err := newServices(cmd.Context())
		if err != nil {
			return err
		}
		defer svcs.Close(cmd.Context())

		var opts queuefeature.EnqueueOptions
		switch {
		case queueNeverExpire:
			ttl := queue.NeverExpire
			opts.TTL = &ttl
		case cmd.Flags().Changed("ttl"):
			opts.TTL = &queueTTL
		}
		if cmd.Flags().Changed("delay") {
			opts.InitialDelay = &queueDelay
		}

		receipt, err := svcs.queues.Service().Enqueue(cmd.Context(), args[0], args[1], opts)
		if err != nil {
			return err
		}
		return printJSON(cmd.OutOrStdout(), receipt)
	},
}

func init() {
	queueEnqueueCmd.Flags().DurationVar(&queueTTL, "ttl", queue.DefaultTTL, "Message time to live")
	queueEnqueueCmd.Flags().DurationVar(&queueDelay, "delay", 0, "Initial visibility delay (max 168h)")
	queueEnqueueCmd.Flags().BoolVar(&queueNeverExpire, "never-expire", false, "Keep the message until it is deleted")

	queueCmd.AddCommand(queueEnqueueCmd)
	RootCmd.AddCommand(queueCmd)
}
