// Package file provides the TOML-backed configuration store.
//
// Values are read from ~/.qadigest/config.toml by default. Any key can be
// overridden from the environment: "server.addr" is read from
// QADIGEST_SERVER_ADDR. Overrides are never written back to the file.
package file
