// Package server runs an http.Handler with production timeouts and graceful
// shutdown.
//
// A Server is built either with New and functional options or from an
// environment-backed Config:
//
//	srv, err := server.NewFromConfig(cfg, server.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	return srv.Run(ctx, router)()
//
// Run blocks until ctx is cancelled, then drains in-flight requests for at
// most the configured shutdown timeout. TLS is enabled when both
// SERVER_TLS_CERT_FILE and SERVER_TLS_KEY_FILE are set.
package server
