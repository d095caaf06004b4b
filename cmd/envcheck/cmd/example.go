package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

const defaultExample = "nestjs"

var examples = map[string]string{
	"nestjs": `// API service: database, JWT secret and port.
package main

import (
	"log"

	"github.com/Azhovan/envcheck"
)

func main() {
	rules := envcheck.NewRuleSet(envcheck.RuleSet{
		Format: map[string]envcheck.Format{
			"DATABASE_URL": envcheck.FormatURL,
			"JWT_SECRET":   envcheck.FormatHex,
		},
		NumberRange: map[string]envcheck.Range{
			"PORT": {Min: envcheck.Some(1.0), Max: envcheck.Some(65535.0)},
		},
		Transform: map[string]envcheck.TransformFunc{
			"DEBUG":     envcheck.StrictBoolean,
			"LOG_LEVEL": func(v string) (any, error) { return envcheck.ToLowerCase(v), nil },
		},
	})

	res, err := envcheck.CheckEnv(envcheck.Options{
		RequiredVars: []string{"DATABASE_URL", "JWT_SECRET", "PORT"},
		OptionalVars: []string{"DEBUG", "LOG_LEVEL"},
		Validation:   &rules,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := res.Err(); err != nil {
		log.Fatal(err)
	}

	log.Printf("listening on port %v", res.TransformedVars["PORT"])
}
`,
	"nextjs": `// Web frontend: public API URL and database.
package main

import (
	"log"

	"github.com/Azhovan/envcheck"
)

func main() {
	rules := envcheck.NewRuleSet(envcheck.RuleSet{
		Format: map[string]envcheck.Format{
			"NEXT_PUBLIC_API_URL": envcheck.FormatURL,
			"DATABASE_URL":        envcheck.FormatURL,
		},
		Transform: map[string]envcheck.TransformFunc{
			"NEXT_PUBLIC_DEBUG": envcheck.StrictBoolean,
		},
	})

	res, err := envcheck.CheckEnv(envcheck.Options{
		RequiredVars: []string{"NEXT_PUBLIC_API_URL", "DATABASE_URL"},
		OptionalVars: []string{"NEXT_PUBLIC_DEBUG"},
		Validation:   &rules,
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := res.Err(); err != nil {
		log.Fatal(err)
	}
}
`,
	"express": `// HTTP server: port, CORS origins and rate limit.
package main

import (
	"log"

	"github.com/Azhovan/envcheck"
)

func main() {
	rules := envcheck.NewRuleSet(envcheck.RuleSet{
		NumberRange: map[string]envcheck.Range{
			"PORT": {Min: envcheck.Some(1.0), Max: envcheck.Some(65535.0)},
		},
		Format: map[string]envcheck.Format{
			"APP_VERSION": envcheck.FormatSemver,
		},
		Transform: map[string]envcheck.TransformFunc{
			"CORS_ORIGIN": func(v string) (any, error) { return envcheck.ToArray(v), nil },
			"RATE_LIMIT":  envcheck.StrictNumber,
		},
	})

	checker, err := envcheck.New(envcheck.Options{
		RequiredVars: []string{"PORT", "APP_VERSION"},
		OptionalVars: []string{"CORS_ORIGIN", "RATE_LIMIT"},
		Strict:       true,
		Validation:   &rules,
	})
	if err != nil {
		log.Fatal(err)
	}

	vars := checker.GetAllTransformedVars()
	log.Printf("allowed origins: %v", vars["CORS_ORIGIN"])
}
`,
}

func newExampleCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example configuration",
		Long:  "Print an example program for a service type: nestjs, nextjs or express.",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, ok := examples[strings.ToLower(kind)]
			if !ok {
				src = examples[defaultExample]
			}
			fmt.Fprint(cmd.OutOrStdout(), src)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", defaultExample, "example type (nestjs, nextjs, express)")
	return cmd
}
