// Package sourceenv provides the stores envcheck reads variables from.
//
// New reads the process environment, optionally under a prefix
// (PORT → APP_PORT). NewMap keeps variables in memory, which keeps tests
// independent of the real environment.
//
// Example:
//
//	store := sourceenv.New(sourceenv.Options{Prefix: "APP_"})
//	checker, err := envcheck.New(opts, envcheck.WithStore(store))
package sourceenv
