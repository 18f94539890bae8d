// Package flagutil bridges cobra flag state to config overrides.
//
// A flag the user did not set must not shadow environment or config-file
// input, so these helpers return nil unless the flag was changed.
package flagutil

import (
	"os"

	"github.com/spf13/pflag"
)

// StringIfChanged returns the value when the flag was set, nil otherwise.
func StringIfChanged(flags *pflag.FlagSet, name string, value string) *string {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}

// IntIfChanged returns the value when the flag was set, nil otherwise.
func IntIfChanged(flags *pflag.FlagSet, name string, value int) *int {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}

// BoolIfChanged returns the value when the flag was set, nil otherwise.
func BoolIfChanged(flags *pflag.FlagSet, name string, value bool) *bool {
	if !flags.Changed(name) {
		return nil
	}
	return &value
}

// StringOr returns the value when non-empty, otherwise the environment
// variable's value.
func StringOr(value, envVar string) string {
	if value != "" {
		return value
	}
	return os.Getenv(envVar)
}
