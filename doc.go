// Package envcheck checks that required environment variables are present and
// validates and transforms their values at application startup.
//
// Quick Start:
//
//	checker, err := envcheck.New(envcheck.Options{
//	    RequiredVars: []string{"DATABASE_URL", "PORT"},
//	    OptionalVars: []string{"DEBUG"},
//	    Validation: &envcheck.RuleSet{
//	        Format:      map[string]envcheck.Format{"DATABASE_URL": envcheck.FormatURL},
//	        NumberRange: map[string]envcheck.Range{"PORT": {Min: envcheck.Some(1.0), Max: envcheck.Some(65535.0)}},
//	        Transform:   map[string]envcheck.TransformFunc{"DEBUG": envcheck.StrictBoolean},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := checker.Check()
//	if err := result.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// Rule families: regex, format, custom, numberRange, transform. Formats: email, url, uuid,
// date, json, port, ip, semver, hex, base64.
//
// The .env file named by Options.EnvFile is loaded at construction without overwriting
// variables that are already set. Rules can also be read from YAML, JSON or TOML files
// with the sourcefile package, or derived from struct tags with OptionsFromStruct.
//
// See example_test.go for detailed usage.
package envcheck
