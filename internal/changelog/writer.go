package changelog

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Merge inserts v into c. A version with the same identifier is replaced in
// place. Releasing a version absorbs the unreleased section, since its
// commits are now part of the release. Unreleased always stays first.
func Merge(c *Changelog, v *Version) {
	target := NormalizeVersion(v.Version)
	for i := range c.Versions {
		if NormalizeVersion(c.Versions[i].Version) == target {
			c.Versions[i] = *v
			return
		}
	}

	versions := make([]Version, 0, len(c.Versions)+1)
	versions = append(versions, *v)
	for _, existing := range c.Versions {
		if existing.IsUnreleased() {
			continue
		}
		versions = append(versions, existing)
	}
	c.Versions = versions
}

// Encode validates c and writes it as YAML.
func Encode(c *Changelog, w io.Writer) error {
	if err := Validate(c); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding changelog YAML: %w", err)
	}
	return enc.Close()
}

// Save validates c and writes it to path. The file is left untouched when
// validation fails.
func Save(path string, c *Changelog) error {
	var buf bytes.Buffer
	if err := Encode(c, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing changelog file: %w", err)
	}
	return nil
}
