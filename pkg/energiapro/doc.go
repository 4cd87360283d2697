// Package energiapro defines the public types, configuration, and error
// taxonomy for the EnergiaPro customer API client.
//
// The EnergiaPro API is a metering-data API behind a two-step credential
// exchange: the client posts its username together with a one-time salted
// hash of its secret key to obtain a bearer token, then sends that token
// with every data call. Tokens expire after 60 minutes; the client caches
// them for 55 and re-authenticates transparently, including exactly one
// retry when the API rejects a token mid-flight.
//
// Construct a client with the eproclient package:
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/energiapro-io/energiapro-client/pkg/energiapro"
//	  "github.com/energiapro-io/energiapro-client/pkg/eproclient"
//	)
//
//	func example() {
//	  cli, err := eproclient.New(&energiapro.Config{
//	    Username:  "user",
//	    SecretKey: "secret",
//	  })
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//
//	  ctx := context.Background()
//
//	  installations, err := cli.Installations().List(ctx, "507167")
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//
//	  for _, installation := range installations {
//	    measurements, err := cli.Measurements().List(ctx, &energiapro.MeasurementsRequest{
//	      ClientID:       "507167",
//	      InstallationID: installation.ID,
//	      From:           "2024-04-01",
//	      To:             "2024-04-30",
//	    })
//	    if err != nil {
//	      log.Fatal(err)
//	    }
//	    _ = measurements
//	  }
//	}
//
// # Errors
//
// Failures surface as typed errors: InvalidArgumentError for caller mistakes
// caught before any network call, TransportError for network failures,
// HTTPStatusError for non-2xx responses without a decodable vendor error
// body, DecodeError for unexpected payload shapes, ErrMissingToken when an
// authentication response carries no token, and APIError for errors the
// vendor classifies with a numeric code. The IsTokenError, IsInvalidArgument,
// and related helpers classify them without type assertions at call sites.
package energiapro
