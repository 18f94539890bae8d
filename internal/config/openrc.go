package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadOpenRC reads an openrc credentials file and exports its OS_* variables
// into the process environment, where the OpenStack session bootstrap picks
// them up. Only plain `export KEY=VALUE` assignments are honored; lines that
// need shell evaluation (command substitution, variable expansion, prompts)
// are skipped.
func LoadOpenRC(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open openrc file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if !strings.HasPrefix(key, "OS_") {
			continue
		}

		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		if strings.ContainsAny(value, "$`") {
			continue
		}

		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read openrc file: %w", err)
	}
	return nil
}
