package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"storage-kit/core/config"
	"storage-kit/core/policy"
	"storage-kit/core/queue"
	"storage-kit/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("QUEUE_DRIVER", "memory")
	t.Setenv("LOG_LEVEL", "error")
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := new(bytes.Buffer)
	RootCmd.SetOut(out)
	RootCmd.SetErr(out)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetArgs(nil)
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
	})
	err := RootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBuildServices(t *testing.T) {
	cfg := &config.Config{
		Storage: storage.Config{Driver: storage.DriverMemory},
		Queue:   queue.Config{Driver: queue.DriverMemory},
		Policy:  policy.Config{RetryCount: 1, RetryIntervalMs: 10, LocationMode: "primary_only", MaxExecutionSeconds: 1},
	}
	cfg.Log.Level = "error"

	svcs, err := buildServices(context.Background(), cfg)
	require.NoError(t, err)
	defer svcs.Close(context.Background())

	assert.Equal(t, 1, svcs.policy.RetryCount)
	assert.Equal(t, "blob", svcs.blobs.Name())
	assert.Equal(t, "queue", svcs.queues.Name())

	cfg.Policy.LocationMode = "nowhere"
	_, err = buildServices(context.Background(), cfg)
	assert.Error(t, err)
}

func TestBlobUploadCommand(t *testing.T) {
	memoryEnv(t)
	file := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(file, []byte("hello"), 0o600))

	out, err := run(t, "blob", "upload", "Box", "dir/a.txt", file, "--tier", "cool")
	require.NoError(t, err)
	assert.Contains(t, out, "uploaded Box/dir/a.txt")

	_, err = run(t, "blob", "upload", "box", "a.txt", file, "--tier", "tepid")
	assert.Error(t, err)
}

func TestBlobReadCommandsOnEmptyStore(t *testing.T) {
	memoryEnv(t)

	out, err := run(t, "blob", "exists", "box", "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "false\n", out)

	out, err = run(t, "blob", "list", "box", "--prefix", "x")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "blob", "download", "box", "a.txt")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestQueueEnqueueCommand(t *testing.T) {
	memoryEnv(t)

	out, err := run(t, "queue", "enqueue", "Jobs", "hello", "--never-expire", "--delay", "1m")
	require.NoError(t, err)

	var receipt queue.Receipt
	require.NoError(t, json.Unmarshal([]byte(out), &receipt))
	assert.NotEmpty(t, receipt.MessageID)
	assert.Equal(t, 9999, receipt.ExpiresAt.Year())
}
