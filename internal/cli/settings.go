package cli

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ringapi/pkg/errors"
	"github.com/matzehuels/ringapi/pkg/ring"
)

// settingsFlags are the job parameter flags of submit and run.
type settingsFlags struct {
	file         string
	chain        string
	policy       string
	interactions string
	relaxed      bool
	seqSep       int
	skipHetero   bool
	keepWater    bool
	energy       bool
	msa          bool
}

func (f *settingsFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.file, "settings", "", "TOML file with job settings (wire keys, e.g. hbond = 3.5)")
	fs.StringVar(&f.chain, "chain", "", `chain to analyse: "all" or a chain id`)
	fs.StringVar(&f.policy, "policy", "", "network policy: closest, lollipop, ca, cb")
	fs.StringVar(&f.interactions, "interactions", "", "interactions per pair: all, multiple, most-energetic, no-specific")
	fs.BoolVar(&f.relaxed, "relaxed", false, "use relaxed distance thresholds")
	fs.IntVar(&f.seqSep, "seq-separation", 0, "minimum sequence separation between residues")
	fs.BoolVar(&f.skipHetero, "skip-hetero", false, "ignore hetero atoms")
	fs.BoolVar(&f.keepWater, "keep-water", false, "include water molecules")
	fs.BoolVar(&f.energy, "energy", false, "compute interaction energies")
	fs.BoolVar(&f.msa, "msa", false, "compute a multiple sequence alignment")
}

// resolve builds job settings: defaults, then the settings file, then flags.
func (f *settingsFlags) resolve(cmd *cobra.Command) (ring.Settings, error) {
	s := ring.DefaultSettings()
	if f.file != "" {
		if err := loadSettingsFile(f.file, &s); err != nil {
			return ring.Settings{}, err
		}
	}

	changed := cmd.Flags().Changed
	if f.relaxed {
		s.Thresholds = ring.RelaxedThresholds()
	}
	if changed("chain") {
		chain, err := ring.ParseChain(f.chain)
		if err != nil {
			return ring.Settings{}, err
		}
		s.Chain = chain
	}
	if changed("policy") {
		s.NetworkPolicy = ring.NetworkPolicy(strings.ToLower(f.policy))
	}
	if changed("interactions") {
		s.Interactions = ring.InteractionPolicy(strings.ToLower(f.interactions))
	}
	if changed("seq-separation") {
		s.SequenceSeparation = f.seqSep
	}
	if changed("skip-hetero") {
		s.SkipHetero = f.skipHetero
	}
	if changed("keep-water") {
		s.SkipWater = !f.keepWater
	}
	if changed("energy") {
		s.SkipEnergy = !f.energy
	}
	if changed("msa") {
		s.PerformMSA = f.msa
	}
	return s, s.Validate()
}

// settingsFile mirrors the flat wire keys; nil fields keep their value.
type settingsFile struct {
	Chain         *string  `toml:"chain"`
	NetworkPolicy *string  `toml:"networkPolicy"`
	Interactions  *string  `toml:"interactions"`
	HBond         *float64 `toml:"hbond"`
	VdW           *float64 `toml:"vdw"`
	Ionic         *float64 `toml:"ionic"`
	PiPi          *float64 `toml:"pipi"`
	PiCation      *float64 `toml:"pication"`
	Disulphide    *float64 `toml:"disulphide"`
	SeqSeparation *int     `toml:"seqSeparation"`
	SkipHetero    *bool    `toml:"skipHetero"`
	SkipWater     *bool    `toml:"skipWater"`
	SkipEnergy    *bool    `toml:"skipEnergy"`
	MSA           *bool    `toml:"msa"`
}

// loadSettingsFile overlays the keys present in a TOML file onto s.
// Unknown keys are rejected so that typos do not pass silently.
func loadSettingsFile(path string, s *ring.Settings) error {
	var f settingsFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return fmt.Errorf("read settings %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.InvalidParameter("settings", "unknown key %q in %s", undecoded[0].String(), path)
	}

	if f.Chain != nil {
		chain, err := ring.ParseChain(*f.Chain)
		if err != nil {
			return err
		}
		s.Chain = chain
	}
	setString(&s.NetworkPolicy, f.NetworkPolicy)
	setString(&s.Interactions, f.Interactions)
	set(&s.Thresholds.HBond, f.HBond)
	set(&s.Thresholds.VdW, f.VdW)
	set(&s.Thresholds.Ionic, f.Ionic)
	set(&s.Thresholds.PiPi, f.PiPi)
	set(&s.Thresholds.PiCation, f.PiCation)
	set(&s.Thresholds.Disulphide, f.Disulphide)
	set(&s.SequenceSeparation, f.SeqSeparation)
	set(&s.SkipHetero, f.SkipHetero)
	set(&s.SkipWater, f.SkipWater)
	set(&s.SkipEnergy, f.SkipEnergy)
	set(&s.PerformMSA, f.MSA)
	return nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setString[T ~string](dst *T, v *string) {
	if v != nil {
		*dst = T(*v)
	}
}
