// Package eproclient constructs EnergiaPro API clients implementing the
// energiapro.Client interface.
//
// It layers configuration, HTTP transport, and token management on top of
// the types defined in the energiapro package. Most applications should
// import eproclient to build a client, then use the returned
// energiapro.Client to access the Installations() and Measurements()
// operation clients.
//
// Quick start
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
//	  installations, err := cli.Installations().List(context.Background(), "507167")
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//	  _ = installations
//	}
package eproclient
