package cmd

import "testing"

func TestSurfaceFlagRegistered(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("surface")
	if f == nil {
		t.Fatal("surface flag not registered")
	}
	if f.DefValue != "cli" {
		t.Fatalf("surface default = %q, want %q", f.DefValue, "cli")
	}
}

func TestCurrentSurface(t *testing.T) {
	orig := flagSurface
	defer func() { flagSurface = orig }()

	flagSurface = ""
	if got := currentSurface(); got != "cli" {
		t.Fatalf("currentSurface() = %q, want %q", got, "cli")
	}
	flagSurface = "miniapp"
	if got := currentSurface(); got != "miniapp" {
		t.Fatalf("currentSurface() = %q, want %q", got, "miniapp")
	}
}
