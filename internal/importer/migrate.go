package importer

import (
	"fmt"

	"github.com/conneroisu/branddna/internal/brand"
	"github.com/conneroisu/branddna/internal/serializer"
)

// Migration upgrades a raw document from one schema version to the next.
// Apply edits doc in place.
type Migration struct {
	From  string
	To    string
	Apply func(doc map[string]interface{}) error
}

// migrate strips export stamps, walks the migration chain from the
// document's version and stamps the current version. A document without
// a version is treated as current.
func migrate(doc map[string]interface{}, chain []Migration) error {
	for _, key := range serializer.StampKeys {
		delete(doc, key)
	}

	meta, _ := doc["metadata"].(map[string]interface{})
	version := brand.CurrentVersion
	if meta != nil {
		if v, ok := meta["version"].(string); ok && v != "" {
			version = v
		}
	}

	for steps := 0; version != brand.CurrentVersion; steps++ {
		if steps > len(chain) {
			return fmt.Errorf("migration chain from %s does not terminate", version)
		}
		m, ok := findMigration(chain, version)
		if !ok {
			break
		}
		if m.Apply != nil {
			if err := m.Apply(doc); err != nil {
				return fmt.Errorf("migrate %s to %s: %w", m.From, m.To, err)
			}
		}
		version = m.To
	}

	// Migrations may have replaced the metadata section.
	if meta, ok := doc["metadata"].(map[string]interface{}); ok {
		meta["version"] = brand.CurrentVersion
	}

	return nil
}

func findMigration(chain []Migration, from string) (Migration, bool) {
	for _, m := range chain {
		if m.From == from {
			return m, true
		}
	}

	return Migration{}, false
}
