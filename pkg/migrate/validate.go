package migrate

import (
	"fmt"
	"io/fs"
	"regexp"
	"strings"
)

var fileNameRe = regexp.MustCompile(`^\d{14}_[a-z0-9_]+\.sql$`)

// Validate revisa que cada migración embebida tenga nombre versionado y secciones Up y Down.
func Validate() error {
	return validateFS(embedded, Dir)
}

func validateFS(fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no migrations in %s", dir)
	}
	seen := map[string]string{}
	for _, e := range entries {
		name := e.Name()
		if !fileNameRe.MatchString(name) {
			return fmt.Errorf("invalid migration filename %q", name)
		}
		version := name[:14]
		if prev, dup := seen[version]; dup {
			return fmt.Errorf("duplicate version %s (%s, %s)", version, prev, name)
		}
		seen[version] = name

		data, err := fs.ReadFile(fsys, dir+"/"+name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		content := string(data)
		if !strings.Contains(content, "-- +goose Up") || !strings.Contains(content, "-- +goose Down") {
			return fmt.Errorf("%s: missing goose Up/Down annotations", name)
		}
	}
	return nil
}
