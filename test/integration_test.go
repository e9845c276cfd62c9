// ABOUTME: Integration tests for the trainer CLI.
// ABOUTME: Tests full workflow from CLI commands against an isolated badger store.
package test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	trainerBinary := filepath.Join(projectRoot, "trainer-test")

	buildCmd := exec.Command("go", "build", "-o", trainerBinary, "./cmd/trainer")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}
	defer os.Remove(trainerBinary)

	// Isolate config and data under temp dirs; with no config file the
	// CLI defaults to the badger backend under XDG_DATA_HOME.
	tmp := t.TempDir()
	env := append(os.Environ(),
		"XDG_CONFIG_HOME="+filepath.Join(tmp, "config"),
		"XDG_DATA_HOME="+filepath.Join(tmp, "data"),
	)

	run := func(args ...string) (string, error) {
		cmd := exec.Command(trainerBinary, args...)
		cmd.Env = env
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Define an activity type
	output, err := run("type", "add", "pushups", "--daily", "50")
	if err != nil {
		t.Fatalf("Failed to add type: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added activity type pushups") {
		t.Errorf("Expected 'Added activity type pushups' in output, got: %s", output)
	}

	// Log activities
	output, err = run("add", "pushups", "30")
	if err != nil {
		t.Fatalf("Failed to log activity: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Logged pushups") {
		t.Errorf("Expected 'Logged pushups' in output, got: %s", output)
	}

	output, err = run("add", "pushups", "20", "--at", "2025-01-15 07:00", "--notes", "early set")
	if err != nil {
		t.Fatalf("Failed to log backdated activity: %v\n%s", err, output)
	}

	// Unknown types are rejected with a hint
	output, err = run("add", "swimming", "1")
	if err == nil {
		t.Errorf("Expected error for unknown type, got: %s", output)
	}

	// List shows both entries
	output, err = run("list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "pushups") {
		t.Errorf("Expected 'pushups' in list output, got: %s", output)
	}
	if !strings.Contains(output, "early set") {
		t.Errorf("Expected notes in list output, got: %s", output)
	}

	// The backdated entry created its own week bucket
	output, err = run("weeks")
	if err != nil {
		t.Fatalf("Failed to list weeks: %v\n%s", err, output)
	}
	if !strings.Contains(output, "2025.03") {
		t.Errorf("Expected week 2025.03 in output, got: %s", output)
	}

	// Update moves entry 2 into a different week
	output, err = run("update", "2", "--at", "2025-01-22 07:00")
	if err != nil {
		t.Fatalf("Failed to update: %v\n%s", err, output)
	}
	output, err = run("weeks")
	if err != nil {
		t.Fatalf("Failed to list weeks: %v\n%s", err, output)
	}
	if strings.Contains(output, "2025.03") {
		t.Errorf("Emptied week 2025.03 still listed: %s", output)
	}
	if !strings.Contains(output, "2025.04") {
		t.Errorf("Expected week 2025.04 in output, got: %s", output)
	}

	// Summary shows progress against the daily goal
	output, err = run("summary", "-d", "day")
	if err != nil {
		t.Fatalf("Failed to summarize: %v\n%s", err, output)
	}
	if !strings.Contains(output, "pushups") {
		t.Errorf("Expected 'pushups' in summary output, got: %s", output)
	}

	// Export, wipe via delete, and re-import
	exportPath := filepath.Join(tmp, "backup.json")
	output, err = run("export", "-o", exportPath)
	if err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	if _, err := os.Stat(exportPath); err != nil {
		t.Fatalf("Export file missing: %v", err)
	}

	for _, id := range []string{"1", "2"} {
		if output, err = run("delete", id); err != nil {
			t.Fatalf("Failed to delete %s: %v\n%s", id, err, output)
		}
	}
	output, err = run("list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No activities found") {
		t.Errorf("Expected empty list after deletes, got: %s", output)
	}

	output, err = run("import", exportPath)
	if err != nil {
		t.Fatalf("Failed to import: %v\n%s", err, output)
	}

	output, err = run("list")
	if err != nil {
		t.Fatalf("Failed to list after import: %v\n%s", err, output)
	}
	if !strings.Contains(output, "pushups") {
		t.Errorf("Expected restored activities, got: %s", output)
	}

	// Imported ids were 1 and 2; the recalculated counter continues at 3
	output, err = run("add", "pushups", "10")
	if err != nil {
		t.Fatalf("Failed to log after import: %v\n%s", err, output)
	}
	if !strings.Contains(output, "#3") {
		t.Errorf("Expected id 3 after import recalculation, got: %s", output)
	}
}
