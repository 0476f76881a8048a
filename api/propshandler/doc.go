// Package propshandler implements the HTTP handler and client of the override
// daemon.
//
// The handler wraps a spoof.Engine bound to the daemon's build record. Apply
// requests mutate that record; guard requests classify the call stack sent
// by the host against the shared impersonation latch.
//
// Server-side usage:
//
//	handler := propshandler.NewHandler(engine, record, metricsServer, logger)
//	router := chi.NewRouter()
//	handler.RegisterRoutes(router)
//
// Client-side usage:
//
//	client := propshandler.NewClient("http://127.0.0.1:8080")
//	if err := client.GuardCertificateChain(ctx, frames); errors.Is(err, interfaces.ErrUnsupportedOperation) {
//	    // abort the certificate chain request
//	}
package propshandler
