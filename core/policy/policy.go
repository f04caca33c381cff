package policy

import (
	"context"
	"fmt"
	"strings"
	"time"

	azpolicy "github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
)

// LocationMode selects which copy of a geo-redundant account serves reads.
type LocationMode string

const (
	PrimaryOnly          LocationMode = "primary_only"
	PrimaryThenSecondary LocationMode = "primary_then_secondary"
	SecondaryOnly        LocationMode = "secondary_only"
	SecondaryThenPrimary LocationMode = "secondary_then_primary"
)

// Location identifies one endpoint of an account.
type Location int

const (
	Primary Location = iota
	Secondary
)

// ParseLocationMode converts a configuration value into a LocationMode.
func ParseLocationMode(s string) (LocationMode, error) {
	switch LocationMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", PrimaryOnly:
		return PrimaryOnly, nil
	case PrimaryThenSecondary:
		return PrimaryThenSecondary, nil
	case SecondaryOnly:
		return SecondaryOnly, nil
	case SecondaryThenPrimary:
		return SecondaryThenPrimary, nil
	default:
		return "", fmt.Errorf("unknown location mode %q", s)
	}
}

// ReadOrder returns the endpoints to try, in order, for a read.
func (m LocationMode) ReadOrder() []Location {
	switch m {
	case PrimaryThenSecondary:
		return []Location{Primary, Secondary}
	case SecondaryOnly:
		return []Location{Secondary}
	case SecondaryThenPrimary:
		return []Location{Secondary, Primary}
	default:
		return []Location{Primary}
	}
}

// Policy is the client-side behaviour applied to every logical storage operation.
type Policy struct {
	// RetryCount is the number of retries after the first attempt.
	RetryCount int
	// RetryInterval is the fixed delay between attempts.
	RetryInterval time.Duration
	// LocationMode decides where reads are served from.
	LocationMode LocationMode
	// MaxExecutionTime bounds one logical operation, retries included. Zero disables it.
	MaxExecutionTime time.Duration
}

// Default returns linear retry (1s, 5 attempts), primary-only reads and a 10s ceiling.
func Default() Policy {
	return Policy{
		RetryCount:       5,
		RetryInterval:    time.Second,
		LocationMode:     PrimaryOnly,
		MaxExecutionTime: 10 * time.Second,
	}
}

// WithTimeout bounds ctx by MaxExecutionTime.
func (p Policy) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.MaxExecutionTime <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.MaxExecutionTime)
}

// AzureRetryOptions expresses the policy as SDK retry options. Delay and max delay are equal so
// attempts are spaced evenly.
func (p Policy) AzureRetryOptions() azpolicy.RetryOptions {
	opts := azpolicy.RetryOptions{
		MaxRetries:    int32(p.RetryCount),
		RetryDelay:    p.RetryInterval,
		MaxRetryDelay: p.RetryInterval,
	}
	if p.RetryCount <= 0 {
		// the SDK treats 0 as "use default", -1 disables retries
		opts.MaxRetries = -1
	}
	return opts
}
