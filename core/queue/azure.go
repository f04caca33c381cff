package queue

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storage-kit/core/account"
	"storage-kit/core/httpx"
	"storage-kit/core/policy"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	azpolicy "github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
)

// azureClient talks to Azure Queue Storage.
type azureClient struct {
	primary   *azqueue.ServiceClient
	secondary *azqueue.ServiceClient
	mode      policy.LocationMode
}

func newAzureClient(cfg Config, acct *account.Account, pol policy.Policy) (*azureClient, error) {
	return newAzureClientWithTransport(acct, pol, httpx.NewClient(cfg.TimeoutSeconds))
}

func newAzureClientWithTransport(acct *account.Account, pol policy.Policy, transport azpolicy.Transporter) (*azureClient, error) {
	endpoints := acct.QueueEndpoints()
	if endpoints.Primary == "" {
		return nil, fmt.Errorf("%w: account has no queue endpoint", account.ErrConfiguration)
	}

	opts := &azqueue.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry:     pol.AzureRetryOptions(),
			Transport: transport,
		},
	}

	primary, err := newServiceClient(acct, endpoints.Primary, opts)
	if err != nil {
		return nil, err
	}
	c := &azureClient{primary: primary, mode: pol.LocationMode}
	if endpoints.Secondary != "" && pol.LocationMode != policy.PrimaryOnly {
		if c.secondary, err = newServiceClient(acct, endpoints.Secondary, opts); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func newServiceClient(acct *account.Account, endpoint string, opts *azqueue.ClientOptions) (*azqueue.ServiceClient, error) {
	serviceURL := strings.TrimRight(endpoint, "/") + "/"
	if acct.HasSharedKey() {
		cred, err := azqueue.NewSharedKeyCredential(acct.Name(), acct.Key())
		if err != nil {
			return nil, fmt.Errorf("failed to build shared key credential: %w", err)
		}
		client, err := azqueue.NewServiceClientWithSharedKeyCredential(serviceURL, cred, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create azure queue client: %w", err)
		}
		return client, nil
	}

	u, err := url.Parse(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse endpoint: %w", err)
	}
	if sas := acct.SAS(); sas != "" {
		u.RawQuery = sas
	}
	client, err := azqueue.NewServiceClientWithNoCredential(u.String(), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure queue client: %w", err)
	}
	return client, nil
}

// read runs fn against each location allowed by the mode until one answers.
// A 404 is authoritative and is never retried elsewhere.
func (c *azureClient) read(ctx context.Context, fn func(*azqueue.ServiceClient) error) error {
	var lastErr error
	tried := 0
	for _, loc := range c.mode.ReadOrder() {
		client := c.primary
		if loc == policy.Secondary {
			if c.secondary == nil {
				continue
			}
			client = c.secondary
		}
		tried++
		err := fn(client)
		if err == nil || hasStatus(err, http.StatusNotFound) || ctx.Err() != nil {
			return err
		}
		lastErr = err
	}
	if tried == 0 {
		return fn(c.primary)
	}
	return lastErr
}

func (c *azureClient) QueueExists(ctx context.Context, name string) (bool, error) {
	err := c.read(ctx, func(client *azqueue.ServiceClient) error {
		_, err := client.NewQueueClient(name).GetProperties(ctx, nil)
		return err
	})
	switch {
	case err == nil:
		return true, nil
	case hasStatus(err, http.StatusNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to check queue %s: %w", name, err)
	}
}

func (c *azureClient) CreateQueue(ctx context.Context, name string) error {
	if _, err := c.primary.NewQueueClient(name).Create(ctx, nil); err != nil {
		if hasCode(err, "QueueAlreadyExists") {
			return nil
		}
		return fmt.Errorf("failed to create queue %s: %w", name, err)
	}
	return nil
}

func (c *azureClient) Enqueue(ctx context.Context, name, message string, ttl, delay *time.Duration) (*Receipt, error) {
	opts := &azqueue.EnqueueMessageOptions{
		TimeToLive:        seconds(ttl),
		VisibilityTimeout: seconds(delay),
	}
	resp, err := c.primary.NewQueueClient(name).EnqueueMessage(ctx, message, opts)
	if err != nil {
		switch {
		case hasStatus(err, http.StatusNotFound):
			return nil, fmt.Errorf("enqueue to %s: %w", name, ErrNotFound)
		case hasStatus(err, http.StatusBadRequest):
			return nil, fmt.Errorf("enqueue to %s: %w: %v", name, ErrInvalidArgument, err)
		}
		return nil, fmt.Errorf("failed to enqueue to %s: %w", name, err)
	}

	receipt := &Receipt{}
	if len(resp.Messages) > 0 && resp.Messages[0] != nil {
		m := resp.Messages[0]
		receipt.MessageID = deref(m.MessageID)
		receipt.InsertedAt = deref(m.InsertionTime)
		receipt.ExpiresAt = deref(m.ExpirationTime)
		receipt.NextVisibleAt = deref(m.TimeNextVisible)
	}
	return receipt, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

func hasStatus(err error, status int) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == status
	}
	return false
}

func hasCode(err error, code string) bool {
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return strings.EqualFold(respErr.ErrorCode, code)
	}
	return false
}
