// Package celrule compiles CEL (Common Expression Language) expressions into
// custom predicates for environment variable values.
//
// Expressions see a single string variable named value and must evaluate to a bool:
//
//	pred, err := celrule.Compile(`int(value) % 2 == 0`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pred("3000") // true
//
// Supported operations are those of the CEL standard library, including
// comparisons, boolean logic, size(), contains, startsWith, endsWith, matches,
// and the int(), uint(), double() conversions.
package celrule
