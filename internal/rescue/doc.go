// Package rescue provides a typed client for the adoptable-animal listings API.
//
// # Overview
//
// The API follows the Petfinder v2 shape: a paged animal search, single animal
// and organization lookups, and a species catalog. All calls are read-only GETs
// returning JSON.
//
//	client, err := rescue.NewClient(rescue.Options{
//		BaseURL:      cfg.APIURL,
//		ClientID:     cfg.ClientID,
//		ClientSecret: cfg.ClientSecret,
//	})
//	page, err := client.SearchAnimals(ctx, rescue.AnimalQuery{Type: "Dog", Location: "97201"})
//
// # Authentication
//
// When a client id is configured, requests carry a bearer token obtained with
// the OAuth2 client-credentials grant against /v2/oauth2/token. The token is
// cached and refreshed on expiry by golang.org/x/oauth2. Without a client id
// requests are unauthenticated.
//
// # Request Handling
//
// All requests:
//   - Use context for cancellation and timeout control
//   - Set Accept: application/json and User-Agent: pawpal/<version>
//   - Carry a fresh X-Request-Id, logged alongside any failure
//
// # Error Handling
//
// HTTP status codes of 400 and above become *apierror.APIError with the status,
// the server message (or the problem+json detail or title) and any field
// errors, in server order. A rejected token exchange is reported the same way.
// Transport and decode failures are plain wrapped errors:
//
//   - "execute request: dial tcp: connection refused"
//   - "decode response: unexpected end of JSON input"
//
// Use apierror.FormatMessage to turn either kind into display text.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package rescue
