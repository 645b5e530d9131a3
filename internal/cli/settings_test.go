package cli

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ringapi/pkg/errors"
	"github.com/matzehuels/ringapi/pkg/ring"
)

func resolveSettings(t *testing.T, args ...string) (ring.Settings, error) {
	t.Helper()
	var sf settingsFlags
	cmd := &cobra.Command{Use: "test"}
	sf.register(cmd)
	if err := cmd.ParseFlags(args); err != nil {
		t.Fatalf("ParseFlags(%v): %v", args, err)
	}
	return sf.resolve(cmd)
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestResolveSettings_Defaults(t *testing.T) {
	got, err := resolveSettings(t)
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}
	if got != ring.DefaultSettings() {
		t.Errorf("resolve() = %+v, want defaults", got)
	}
}

func TestResolveSettings_Flags(t *testing.T) {
	got, err := resolveSettings(t,
		"--chain", "B", "--policy", "LOLLIPOP", "--interactions", "all",
		"--relaxed", "--seq-separation", "1", "--skip-hetero", "--keep-water", "--energy", "--msa")
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}

	want := ring.Settings{
		Chain:              ring.ChainID('B'),
		NetworkPolicy:      ring.PolicyLollipop,
		Interactions:       ring.InteractionsAll,
		Thresholds:         ring.RelaxedThresholds(),
		SequenceSeparation: 1,
		SkipHetero:         true,
		SkipWater:          false,
		SkipEnergy:         false,
		PerformMSA:         true,
	}
	if got != want {
		t.Errorf("resolve() = %+v\nwant %+v", got, want)
	}
}

func TestResolveSettings_FileThenFlags(t *testing.T) {
	path := writeSettings(t, `
chain = "A"
hbond = 4.1
seqSeparation = 5
skipWater = false
`)
	got, err := resolveSettings(t, "--settings", path, "--seq-separation", "2")
	if err != nil {
		t.Fatalf("resolve() error: %v", err)
	}

	if got.Chain != ring.ChainID('A') {
		t.Errorf("Chain = %v, want A", got.Chain)
	}
	if got.Thresholds.HBond != 4.1 {
		t.Errorf("HBond = %v, want 4.1", got.Thresholds.HBond)
	}
	if got.Thresholds.VdW != ring.StrictThresholds().VdW {
		t.Errorf("VdW = %v, want default", got.Thresholds.VdW)
	}
	if got.SequenceSeparation != 2 {
		t.Errorf("SequenceSeparation = %d, want flag value 2", got.SequenceSeparation)
	}
	if got.SkipWater {
		t.Error("SkipWater = true, want false from file")
	}
}

func TestResolveSettings_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		file      string
		wantField string
	}{
		{"bad chain", []string{"--chain", "AB"}, "", "chain"},
		{"bad policy", []string{"--policy", "nearest"}, "", "networkPolicy"},
		{"bad interactions", []string{"--interactions", "some"}, "", "interactions"},
		{"zero separation", []string{"--seq-separation", "0"}, "", "seqSeparation"},
		{"unknown file key", nil, "hbnd = 3.0\n", "settings"},
		{"negative threshold in file", nil, "ionic = -1.0\n", "ionic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if tt.file != "" {
				args = append(args, "--settings", writeSettings(t, tt.file))
			}
			_, err := resolveSettings(t, args...)
			if !errors.Is(err, errors.ErrCodeInvalidParameter) {
				t.Fatalf("resolve() error = %v, want INVALID_PARAMETER", err)
			}
			var ipe *errors.InvalidParameterError
			if !stderrors.As(err, &ipe) || ipe.Field != tt.wantField {
				t.Errorf("field = %v, want %q", ipe, tt.wantField)
			}
		})
	}
}

func TestResolveSettings_MissingFile(t *testing.T) {
	_, err := resolveSettings(t, "--settings", filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing settings file")
	}
}
