// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/patent-gateway/pkg/types"
)

// Secret key files recognized in the secrets directory. The filename is the
// key name; the trimmed file contents are the value.
const (
	secretUSPTOAPIKey       = "uspto-api-key"
	secretPatentsViewAPIKey = "patentsview-api-key"
)

// overlaySecrets reads the secrets directory and fills in API keys the
// environment did not provide. A missing directory is not an error;
// unreadable files warn on stderr and are skipped.
func overlaySecrets(cfg *types.Config, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	values := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			values[entry.Name()] = v
		}
	}

	if cfg.ODP.APIKey == "" {
		cfg.ODP.APIKey = values[secretUSPTOAPIKey]
	}
	if cfg.PatentsView.APIKey == "" {
		cfg.PatentsView.APIKey = values[secretPatentsViewAPIKey]
	}
	return nil
}
