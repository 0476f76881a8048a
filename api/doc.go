/*
Package api holds the wire types and server configuration of the override
daemon.

The propshandler subpackage implements the HTTP handler and a matching
client. A host process calls it at two points:

 1. When an application process attaches: POST /api/v1/apply/{package_name}
    applies the profile selected for the package to the daemon's build
    record.
 2. Before a certificate chain is retrieved: POST
    /api/v1/guard/certificate-chain with the current call stack. A 403
    response means the request must be aborted with an unsupported
    operation failure.

Read-only endpoints expose the current record, the impersonation latch and
the compiled-in profile table.
*/
package api
