package main

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestDayAliasUsesSingleFlag(t *testing.T) {
	var day string
	cmd := &cobra.Command{Use: "example"}
	addDayFlagAliases(cmd)
	cmd.Flags().StringVar(&day, "on", "", "Example day")

	if err := cmd.Flags().Set("date", "2024-01-10"); err != nil {
		t.Fatalf("set date alias: %v", err)
	}
	if day != "2024-01-10" {
		t.Fatalf("expected day to be set via alias, got %q", day)
	}
	if !cmd.Flags().Changed("on") {
		t.Fatal("expected on flag to be marked as changed")
	}

	usage := cmd.Flags().FlagUsages()
	if strings.Contains(usage, "--date ") {
		t.Fatalf("did not expect alias to appear in usage, got %q", usage)
	}
}

func TestNotesAlias(t *testing.T) {
	var notes string
	cmd := &cobra.Command{Use: "example"}
	addNotesFlagAliases(cmd)
	cmd.Flags().StringVar(&notes, "notes", "", "Example notes")

	if err := cmd.Flags().Set("note", "hello"); err != nil {
		t.Fatalf("set note alias: %v", err)
	}
	if notes != "hello" {
		t.Fatalf("expected notes to be set via alias, got %q", notes)
	}
}
