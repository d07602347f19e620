package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/SyN415/local-marketplace-lister-sub000/pkg/migrate"
)

func TestListingAnalysesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_listing_analyses.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no listing analyses migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS listing_analyses",
		"CHECK (asking_price > 0)",
		"CHECK (recommendation IN ('BUY', 'SKIP'))",
		"idx_listing_analyses_created_at",
		"DROP TABLE IF EXISTS listing_analyses",
	}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Fatalf("migration missing %q", check)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir failed validation: %v", err)
	}
}
