// Package sourcefile loads checker options from YAML, JSON, or TOML files.
//
// Format is auto-detected from extension (.yaml, .yml, .json, .toml).
//
// Example file (envcheck.yaml):
//
//	required: [DATABASE_URL, PORT]
//	optional: [DEBUG]
//	validation:
//	  format:
//	    DATABASE_URL: url
//	  numberRange:
//	    PORT: {min: 1, max: 65535}
//	  custom:
//	    PORT: int(value) % 2 == 0
//	  transform:
//	    DEBUG: toBoolean
//
// Custom rules are CEL expressions over the string variable value.
//
// Example:
//
//	opts, err := sourcefile.Load("envcheck.yaml", sourcefile.Options{Required: true})
//	checker, err := envcheck.New(opts)
package sourcefile
