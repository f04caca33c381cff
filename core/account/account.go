package account

import (
	"errors"
	"fmt"
	"strings"
)

// ErrConfiguration is returned when a connection string cannot be turned into an account.
var ErrConfiguration = errors.New("invalid storage configuration")

const (
	defaultProtocol = "https"
	defaultSuffix   = "core.windows.net"

	// DevelopmentAccountName is the fixed account name of the local storage emulator.
	DevelopmentAccountName = "devstoreaccount1"
	// DevelopmentAccountKey is the published, well-known key of the local storage emulator.
	DevelopmentAccountKey = "Eby8vdM02xNOcqFlqUwJPLlmEtlCDXJ1OUzFT50uSRZ6IFsuFq2UVErCz4I6tq/K1SZFPTOtr/KBHBeksoGMGw=="
)

// Account is an immutable, credential-bound description of a storage account.
// It never talks to the network; drivers build SDK clients from it.
type Account struct {
	name   string
	key    string
	sas    string
	blob   Endpoints
	queue  Endpoints
	suffix string
}

// Endpoints holds the primary and (optional) secondary URL of one storage service.
type Endpoints struct {
	Primary   string
	Secondary string
}

// New builds an account from a name and key. It always succeeds; bad credentials
// surface on first use.
func New(accountName, accountKey string) *Account {
	return &Account{
		name:   accountName,
		key:    accountKey,
		suffix: defaultSuffix,
		blob:   derived(defaultProtocol, accountName, "blob", defaultSuffix),
		queue:  derived(defaultProtocol, accountName, "queue", defaultSuffix),
	}
}

// Development returns the local storage emulator account (Azurite).
func Development() *Account {
	return &Account{
		name:   DevelopmentAccountName,
		key:    DevelopmentAccountKey,
		suffix: defaultSuffix,
		blob:   Endpoints{Primary: "http://127.0.0.1:10000/" + DevelopmentAccountName},
		queue:  Endpoints{Primary: "http://127.0.0.1:10001/" + DevelopmentAccountName},
	}
}

// Parse builds an account from a connection string such as
// "DefaultEndpointsProtocol=https;AccountName=x;AccountKey=y;EndpointSuffix=core.windows.net".
func Parse(connectionString string) (*Account, error) {
	values, err := split(connectionString)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(values["UseDevelopmentStorage"], "true") {
		return Development(), nil
	}

	protocol := valueOr(values, "DefaultEndpointsProtocol", defaultProtocol)
	suffix := valueOr(values, "EndpointSuffix", defaultSuffix)
	name := values["AccountName"]

	acct := &Account{
		name:   name,
		key:    values["AccountKey"],
		sas:    strings.TrimPrefix(values["SharedAccessSignature"], "?"),
		suffix: suffix,
	}

	if name == "" && values["BlobEndpoint"] == "" && values["QueueEndpoint"] == "" {
		return nil, fmt.Errorf("%w: connection string needs either AccountName or an explicit endpoint", ErrConfiguration)
	}
	if acct.key == "" && acct.sas == "" {
		return nil, fmt.Errorf("%w: connection string needs either AccountKey or SharedAccessSignature", ErrConfiguration)
	}
	if acct.key != "" && name == "" {
		return nil, fmt.Errorf("%w: AccountKey requires AccountName", ErrConfiguration)
	}

	acct.blob = resolve(values, "Blob", protocol, name, "blob", suffix)
	acct.queue = resolve(values, "Queue", protocol, name, "queue", suffix)

	return acct, nil
}

// Name returns the account name (empty for SAS-only accounts).
func (a *Account) Name() string { return a.name }

// Key returns the shared account key (empty for SAS-only accounts).
func (a *Account) Key() string { return a.key }

// SAS returns the shared access signature without a leading '?'.
func (a *Account) SAS() string { return a.sas }

// HasSharedKey reports whether requests can be signed with the account key.
func (a *Account) HasSharedKey() bool { return a.name != "" && a.key != "" }

// BlobEndpoints returns the blob service endpoints.
func (a *Account) BlobEndpoints() Endpoints { return a.blob }

// QueueEndpoints returns the queue service endpoints.
func (a *Account) QueueEndpoints() Endpoints { return a.queue }

// String hides the credentials.
func (a *Account) String() string {
	return fmt.Sprintf("account(name=%s, blob=%s)", a.name, a.blob.Primary)
}

func split(connectionString string) (map[string]string, error) {
	trimmed := strings.TrimSpace(connectionString)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: connection string is empty", ErrConfiguration)
	}

	values := make(map[string]string)
	for _, segment := range strings.Split(strings.TrimRight(trimmed, ";"), ";") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		parts := strings.SplitN(segment, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("%w: malformed segment %q", ErrConfiguration, segment)
		}
		values[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return values, nil
}

func valueOr(values map[string]string, key, fallback string) string {
	if v, ok := values[key]; ok && v != "" {
		return v
	}
	return fallback
}

func resolve(values map[string]string, prefix, protocol, name, service, suffix string) Endpoints {
	ep := Endpoints{
		Primary:   strings.TrimRight(values[prefix+"Endpoint"], "/"),
		Secondary: strings.TrimRight(values[prefix+"SecondaryEndpoint"], "/"),
	}
	if ep.Primary == "" && name != "" {
		ep = derived(protocol, name, service, suffix)
	}
	return ep
}

func derived(protocol, name, service, suffix string) Endpoints {
	return Endpoints{
		Primary:   fmt.Sprintf("%s://%s.%s.%s", protocol, name, service, suffix),
		Secondary: fmt.Sprintf("%s://%s-secondary.%s.%s", protocol, name, service, suffix),
	}
}
