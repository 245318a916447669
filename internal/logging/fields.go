package logging

import "log/slog"

// Common field names for consistent logging across commands.
const (
	FieldComponent = "component"
	FieldUsername  = "username"
	FieldIP        = "ip"
	FieldSeed      = "seed"
	FieldCount     = "count"
	FieldError     = "error"
)

// Component returns a slog attribute for the emitting component.
func Component(name string) slog.Attr {
	return slog.String(FieldComponent, name)
}

// Username returns a slog attribute for the username.
func Username(name string) slog.Attr {
	return slog.String(FieldUsername, name)
}

// IP returns a slog attribute for the IP address.
func IP(ip string) slog.Attr {
	return slog.String(FieldIP, ip)
}

// Seed returns a slog attribute for the random seed in use.
func Seed(seed int64) slog.Attr {
	return slog.Int64(FieldSeed, seed)
}

// Count returns a slog attribute for a record count.
func Count(n int) slog.Attr {
	return slog.Int(FieldCount, n)
}

// Err returns a slog attribute for an error.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String(FieldError, "")
	}
	return slog.String(FieldError, err.Error())
}
