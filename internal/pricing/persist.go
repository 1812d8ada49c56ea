package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SaveProfile writes the profile as an indented JSON artifact. The write is
// atomic: the content goes to a temp file in the target directory first and
// is then renamed over the destination, so an interrupted calibration never
// leaves a partially written profile behind.
func SaveProfile(profile *MarketProfile, path string) error {
	if profile == nil {
		return &ConfigError{Message: "no profile to save"}
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp profile file: %w", err)
	}
	defer os.Remove(tmp.Name())

	encoder := json.NewEncoder(tmp)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(profile); err != nil {
		tmp.Close()
		return fmt.Errorf("encode profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp profile file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace profile file: %w", err)
	}
	return nil
}

// LoadProfile reads and validates a profile artifact. A profile that does
// not pass validation is rejected whole; no partially valid profile is
// returned.
func LoadProfile(path string) (*MarketProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profile file: %w", err)
	}

	var profile MarketProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, &ConfigError{Message: fmt.Sprintf("malformed profile JSON: %v", err)}
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &profile, nil
}
