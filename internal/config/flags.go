package config

import (
	"flag"
)

// parses CLI flags for the server binary
func ParseServerFlags(args []string) Flags {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	port := fs.String("port", "", "port to listen on (overrides PORT)")
	backend := fs.String("audit-backend", "", "audit store: memory, postgres or redis (overrides AUDIT_BACKEND)")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Port: *port, AuditBackend: *backend}
}
