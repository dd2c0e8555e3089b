package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteTemplate writes the config template and returns the resolved path.
func WriteTemplate(path string, overwrite bool) (string, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return "", err
	}
	if !overwrite {
		if _, err := os.Stat(resolved); err == nil {
			return "", fmt.Errorf("config already exists: %s", resolved)
		}
	}
	if err := os.MkdirAll(filepath.Dir(resolved), 0o700); err != nil {
		return "", fmt.Errorf("config dir create failed (%s): %w", resolved, err)
	}
	if err := os.WriteFile(resolved, []byte(template), 0o600); err != nil {
		return "", fmt.Errorf("config write failed (%s): %w", resolved, err)
	}
	return resolved, nil
}

const template = `# fusionctl configuration

# trace | debug | info | warn | error | off
log_level = "info"

# hex (contiguous) | spaced (space separated, upper case)
output = "hex"

# byte offset of the payload inside each decode input
offset = 0
`
