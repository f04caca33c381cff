// Package account resolves storage credentials into an immutable Account.
//
// An Account is the handle every storage and queue driver is built from. It can be created
// from a connection string or from an account name and key; neither path performs network I/O.
//
// # Connection Strings
//
// The usual key/value form is supported:
//
//	DefaultEndpointsProtocol=https;AccountName=myaccount;AccountKey=...;EndpointSuffix=core.windows.net
//
// Explicit BlobEndpoint/QueueEndpoint values override the derived endpoints, a
// SharedAccessSignature may replace the key, and UseDevelopmentStorage=true selects the
// local emulator account. Malformed strings fail with ErrConfiguration.
//
// # Usage
//
//	acct, err := account.Parse(cfg.Storage.ConnectionString)
//	if err != nil {
//	    return err
//	}
//	acct = account.New("myaccount", key)
package account
