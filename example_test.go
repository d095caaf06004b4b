package envcheck_test

import (
	"fmt"
	"log"
	"os"

	"github.com/Azhovan/envcheck"
	"github.com/Azhovan/envcheck/sourceenv"
)

// Example demonstrates checking required and optional variables.
func Example() {
	store := sourceenv.NewMap(map[string]string{
		"DATABASE_URL": "postgresql://localhost:5432/app",
		"PORT":         "3000",
	})

	res, err := envcheck.CheckEnv(envcheck.Options{
		RequiredVars: []string{"DATABASE_URL", "PORT", "API_KEY"},
		OptionalVars: []string{"DEBUG"},
		LoadEnvFile:  envcheck.Some(false),
	}, envcheck.WithStore(store))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("valid:", res.Valid)
	fmt.Println("missing:", res.MissingVars)
	for _, msg := range res.Errors {
		fmt.Println(msg)
	}

	// Output:
	// valid: false
	// missing: [API_KEY]
	// [ENV-CHECKER] Missing required variable: API_KEY
}

// ExampleNew_validation demonstrates format, range and transform rules.
func ExampleNew_validation() {
	store := sourceenv.NewMap(map[string]string{
		"PORT":        "8080",
		"CORS_ORIGIN": "https://a.com, https://b.com",
		"RATE_LIMIT":  "5000",
	})

	rules := envcheck.NewRuleSet(envcheck.RuleSet{
		Format: map[string]envcheck.Format{"PORT": envcheck.FormatPort},
		NumberRange: map[string]envcheck.Range{
			"RATE_LIMIT": {Min: envcheck.Some(1.0), Max: envcheck.Some(1000.0)},
		},
		Transform: map[string]envcheck.TransformFunc{
			"PORT":        envcheck.StrictNumber,
			"CORS_ORIGIN": func(v string) (any, error) { return envcheck.ToArray(v), nil },
		},
	})

	checker, err := envcheck.New(envcheck.Options{
		RequiredVars: []string{"PORT"},
		OptionalVars: []string{"CORS_ORIGIN", "RATE_LIMIT"},
		LoadEnvFile:  envcheck.Some(false),
		Validation:   &rules,
	}, envcheck.WithStore(store), envcheck.WithOutput(os.Stdout))
	if err != nil {
		log.Fatal(err)
	}

	port, _ := checker.GetTransformedVar("PORT")
	origins, _ := checker.GetTransformedVar("CORS_ORIGIN")
	fmt.Printf("port: %v (%T)\n", port, port)
	fmt.Printf("origins: %q\n", origins)

	if err := checker.PrintSummary(); err != nil {
		log.Fatal(err)
	}

	// Output:
	// port: 8080 (float64)
	// origins: ["https://a.com" "https://b.com"]
	// [ENV-CHECKER] Environment variables summary:
	//   Required variables present: 1/1
	//   Optional variables present: 2/2
	//   Validation errors:
	//     - Variable RATE_LIMIT must be <= 1000
}

// ExampleChecker_GetBoolean demonstrates typed accessors with defaults.
func ExampleChecker_GetBoolean() {
	store := sourceenv.NewMap(map[string]string{
		"DEBUG":   "yes",
		"VERBOSE": "maybe",
		"WORKERS": "4",
	})

	checker, err := envcheck.New(envcheck.Options{LoadEnvFile: envcheck.Some(false)}, envcheck.WithStore(store))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(checker.GetBoolean("DEBUG").OrDefault(false))
	fmt.Println(checker.GetBoolean("VERBOSE").Set)
	fmt.Println(checker.GetBoolean("VERBOSE", true).OrDefault(false))
	fmt.Println(checker.GetNumber("WORKERS").OrDefault(1))
	fmt.Println(checker.GetVar("REGION", "eu-west-1").OrDefault(""))

	// Output:
	// true
	// false
	// true
	// 4
	// eu-west-1
}

// ExampleOptionsFromStruct demonstrates deriving options from struct tags.
func ExampleOptionsFromStruct() {
	type Config struct {
		DatabaseURL string `check:"required,format:url"`
		Port        int    `check:"required,format:port,transform:toNumber"`
		LogLevel    string `env:"LOG_LEVEL" regex:"^(debug|info|warn|error)$"`
	}

	opts, err := envcheck.OptionsFromStruct(Config{})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(opts.RequiredVars)
	fmt.Println(opts.OptionalVars)

	// Output:
	// [DATABASE_URL PORT]
	// [LOG_LEVEL]
}
