package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"storage-kit/core/account"
	"storage-kit/core/httpx"
	"storage-kit/core/policy"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	azpolicy "github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
)

// azureClient talks to Azure Blob Storage. Writes go to the primary endpoint, reads follow
// the configured location mode.
type azureClient struct {
	primary   *azblob.Client
	secondary *azblob.Client
	mode      policy.LocationMode
}

func newAzureClient(cfg Config, acct *account.Account, pol policy.Policy) (*azureClient, error) {
	return newAzureClientWithTransport(acct, pol, httpx.NewClient(cfg.TimeoutSeconds))
}

func newAzureClientWithTransport(acct *account.Account, pol policy.Policy, transport azpolicy.Transporter) (*azureClient, error) {
	endpoints := acct.BlobEndpoints()
	if endpoints.Primary == "" {
		return nil, fmt.Errorf("%w: account has no blob endpoint", account.ErrConfiguration)
	}

	opts := &azblob.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry:     pol.AzureRetryOptions(),
			Transport: transport,
		},
	}

	primary, err := newAzblobClient(acct, endpoints.Primary, opts)
	if err != nil {
		return nil, err
	}

	c := &azureClient{primary: primary, mode: pol.LocationMode}
	if endpoints.Secondary != "" && pol.LocationMode != policy.PrimaryOnly {
		if c.secondary, err = newAzblobClient(acct, endpoints.Secondary, opts); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func newAzblobClient(acct *account.Account, endpoint string, opts *azblob.ClientOptions) (*azblob.Client, error) {
	serviceURL := strings.TrimRight(endpoint, "/") + "/"
	if acct.HasSharedKey() {
		cred, err := azblob.NewSharedKeyCredential(acct.Name(), acct.Key())
		if err != nil {
			return nil, fmt.Errorf("failed to build shared key credential: %w", err)
		}
		client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create azure blob client: %w", err)
		}
		return client, nil
	}

	withSAS, err := appendSAS(serviceURL, acct.SAS())
	if err != nil {
		return nil, err
	}
	client, err := azblob.NewClientWithNoCredential(withSAS, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure blob client: %w", err)
	}
	return client, nil
}

func appendSAS(endpoint, sas string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to parse endpoint: %w", err)
	}
	if sas == "" {
		return u.String(), nil
	}
	if u.RawQuery != "" {
		u.RawQuery += "&" + sas
	} else {
		u.RawQuery = sas
	}
	return u.String(), nil
}

// read runs fn against each location allowed by the mode until one answers.
// A not-found answer is authoritative and is never retried elsewhere.
func (c *azureClient) read(ctx context.Context, fn func(*azblob.Client) error) error {
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
		if err == nil || isNotFound(err) || ctx.Err() != nil {
			return err
		}
		lastErr = err
	}
	if tried == 0 {
		return fn(c.primary)
	}
	return lastErr
}

func (c *azureClient) ContainerExists(ctx context.Context, container string) (bool, error) {
	err := c.read(ctx, func(client *azblob.Client) error {
		_, err := client.ServiceClient().NewContainerClient(container).GetProperties(ctx, nil)
		return err
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check container %s: %w", container, err)
	}
	return true, nil
}

func (c *azureClient) CreateContainer(ctx context.Context, container string) error {
	if _, err := c.primary.CreateContainer(ctx, container, nil); err != nil {
		if bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create container %s: %w", container, err)
	}
	return nil
}

func (c *azureClient) Upload(ctx context.Context, container, key string, r io.Reader, opts PutOptions) error {
	uploadOpts := &azblob.UploadStreamOptions{}
	if opts.ContentType != "" {
		uploadOpts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: to.Ptr(opts.ContentType)}
	}
	if len(opts.Metadata) > 0 {
		uploadOpts.Metadata = make(map[string]*string, len(opts.Metadata))
		for k, v := range opts.Metadata {
			uploadOpts.Metadata[k] = to.Ptr(v)
		}
	}
	if _, err := c.primary.UploadStream(ctx, container, key, r, uploadOpts); err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", container, key, err)
	}
	return nil
}

func (c *azureClient) Download(ctx context.Context, container, key string) (io.ReadCloser, error) {
	var body io.ReadCloser
	err := c.read(ctx, func(client *azblob.Client) error {
		resp, err := client.DownloadStream(ctx, container, key, nil)
		if err != nil {
			return err
		}
		body = resp.Body
		return nil
	})
	if err != nil {
		return nil, wrapAzureError(err, "download", container, key)
	}
	return body, nil
}

func (c *azureClient) Delete(ctx context.Context, container, key string) (bool, error) {
	_, err := c.primary.DeleteBlob(ctx, container, key, &azblob.DeleteBlobOptions{
		DeleteSnapshots: to.Ptr(azblob.DeleteSnapshotsOptionTypeInclude),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete %s/%s: %w", container, key, err)
	}
	return true, nil
}

func (c *azureClient) SetTier(ctx context.Context, container, key string, tier Tier) error {
	accessTier, ok := azureAccessTier(tier)
	if !ok {
		return fmt.Errorf("tier %s cannot be set", tier)
	}
	bb := c.primary.ServiceClient().NewContainerClient(container).NewBlockBlobClient(key)
	if _, err := bb.SetTier(ctx, accessTier, nil); err != nil {
		return wrapAzureError(err, "set tier of", container, key)
	}
	return nil
}

func (c *azureClient) Properties(ctx context.Context, container, key string) (*Properties, error) {
	var props *Properties
	err := c.read(ctx, func(client *azblob.Client) error {
		resp, err := client.ServiceClient().NewContainerClient(container).NewBlobClient(key).GetProperties(ctx, nil)
		if err != nil {
			return err
		}
		props = &Properties{
			Key:         key,
			Size:        derefInt64(resp.ContentLength),
			ContentType: derefString(resp.ContentType),
			Tier:        tierFromAzure(derefString(resp.AccessTier)),
			Metadata:    flattenMetadata(resp.Metadata),
		}
		if resp.ETag != nil {
			props.ETag = strings.Trim(string(*resp.ETag), "\"")
		}
		if resp.LastModified != nil {
			props.LastModified = *resp.LastModified
		}
		if resp.CreationTime != nil {
			props.CreatedAt = *resp.CreationTime
		}
		return nil
	})
	if err != nil {
		return nil, wrapAzureError(err, "fetch properties of", container, key)
	}
	return props, nil
}

func (c *azureClient) Exists(ctx context.Context, container, key string) (bool, error) {
	_, err := c.Properties(ctx, container, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (c *azureClient) List(ctx context.Context, container, prefix string) ([]string, error) {
	keys := []string{}
	err := c.read(ctx, func(client *azblob.Client) error {
		keys = keys[:0]
		pager := client.NewListBlobsFlatPager(container, &azblob.ListBlobsFlatOptions{
			Prefix: &prefix,
		})
		for pager.More() {
			page, err := pager.NextPage(ctx)
			if err != nil {
				return err
			}
			if page.Segment == nil {
				continue
			}
			for _, item := range page.Segment.BlobItems {
				if item == nil || item.Name == nil {
					continue
				}
				if item.Properties != nil && item.Properties.BlobType != nil && *item.Properties.BlobType != blob.BlobTypeBlockBlob {
					continue
				}
				keys = append(keys, *item.Name)
			}
		}
		return nil
	})
	if err != nil {
		if isNotFound(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list %s/%s: %w", container, prefix, err)
	}
	return keys, nil
}

func wrapAzureError(err error, op, container, key string) error {
	if isNotFound(err) {
		return fmt.Errorf("%s %s/%s: %w", op, container, key, ErrNotFound)
	}
	return fmt.Errorf("failed to %s %s/%s: %w", op, container, key, err)
}

func isNotFound(err error) bool {
	if bloberror.HasCode(err, bloberror.BlobNotFound, bloberror.ContainerNotFound, bloberror.ResourceNotFound) {
		return true
	}
	var respErr *azcore.ResponseError
	if errors.As(err, &respErr) {
		return respErr.StatusCode == http.StatusNotFound
	}
	return false
}

func azureAccessTier(t Tier) (blob.AccessTier, bool) {
	switch t {
	case TierHot:
		return blob.AccessTierHot, true
	case TierCool:
		return blob.AccessTierCool, true
	case TierArchive:
		return blob.AccessTierArchive, true
	default:
		return "", false
	}
}

func tierFromAzure(s string) Tier {
	switch strings.ToLower(s) {
	case "hot":
		return TierHot
	case "cool", "cold":
		return TierCool
	case "archive":
		return TierArchive
	default:
		return TierUnspecified
	}
}

func flattenMetadata(m map[string]*string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v != nil {
			out[k] = *v
		}
	}
	return out
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
