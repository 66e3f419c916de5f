// Package server wires and runs the sync server's transports.
//
// It orchestrates the HTTP and gRPC listener lifecycles: startup, OS signal
// handling, and graceful shutdown of every enabled transport.
package server
