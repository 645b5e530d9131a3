package ring

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/ringapi/pkg/errors"
)

// Chain selects the protein chain a job is computed on. The zero value
// selects all chains.
type Chain struct {
	id rune
}

// AllChains selects every chain in the structure.
func AllChains() Chain { return Chain{} }

// ChainID selects the single chain with the given identifier.
func ChainID(id rune) Chain { return Chain{id: id} }

// ParseChain parses the wire form of a chain selection: "all" (or empty)
// for every chain, otherwise a single identifier character.
func ParseChain(s string) (Chain, error) {
	if s == "" || strings.EqualFold(s, "all") {
		return AllChains(), nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return Chain{}, errors.InvalidParameter("chain", "%q is not a chain identifier (single letter or digit)", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if err := errors.ValidateChainID(r); err != nil {
		return Chain{}, err
	}
	return ChainID(r), nil
}

// All reports whether every chain is selected.
func (c Chain) All() bool { return c.id == 0 }

// ID returns the selected chain identifier, or 0 when all chains are selected.
func (c Chain) ID() rune { return c.id }

// String returns the wire form: "all" or the chain identifier.
func (c Chain) String() string {
	if c.All() {
		return "all"
	}
	return string(c.id)
}

// Validate checks that a single-chain selection uses a letter or digit.
func (c Chain) Validate() error {
	if c.All() {
		return nil
	}
	return errors.ValidateChainID(c.id)
}

// NetworkPolicy controls which atoms are used to measure residue distances.
type NetworkPolicy string

const (
	PolicyClosest  NetworkPolicy = "closest"  // closest atom pair
	PolicyLollipop NetworkPolicy = "lollipop" // side-chain centroid
	PolicyCA       NetworkPolicy = "ca"       // alpha carbons
	PolicyCB       NetworkPolicy = "cb"       // beta carbons
)

// Valid reports whether p is a policy the service understands.
func (p NetworkPolicy) Valid() bool {
	switch p {
	case PolicyClosest, PolicyLollipop, PolicyCA, PolicyCB:
		return true
	}
	return false
}

// InteractionPolicy controls how many interactions are reported per residue pair.
type InteractionPolicy string

const (
	InteractionsAll           InteractionPolicy = "all"
	InteractionsMultiple      InteractionPolicy = "multiple"
	InteractionsMostEnergetic InteractionPolicy = "most-energetic"
	InteractionsNoSpecific    InteractionPolicy = "no-specific"
)

// Valid reports whether p is a policy the service understands.
func (p InteractionPolicy) Valid() bool {
	switch p {
	case InteractionsAll, InteractionsMultiple, InteractionsMostEnergetic, InteractionsNoSpecific:
		return true
	}
	return false
}

// Thresholds are the distance cutoffs, in Ångström, for each interaction type.
type Thresholds struct {
	HBond      float64 // hydrogen bond
	VdW        float64 // van der Waals
	Ionic      float64 // salt bridge
	PiPi       float64 // π-π stacking
	PiCation   float64 // π-cation
	Disulphide float64 // disulphide bridge
}

// StrictThresholds returns the service's default cutoffs.
func StrictThresholds() Thresholds {
	return Thresholds{HBond: 3.5, VdW: 0.5, Ionic: 4.0, PiPi: 6.5, PiCation: 5.0, Disulphide: 2.5}
}

// RelaxedThresholds returns the service's permissive cutoffs.
func RelaxedThresholds() Thresholds {
	return Thresholds{HBond: 5.5, VdW: 0.8, Ionic: 5.0, PiPi: 7.0, PiCation: 7.0, Disulphide: 3.0}
}

// Validate rejects negative, NaN and infinite cutoffs.
func (t Thresholds) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"hbond", t.HBond},
		{"vdw", t.VdW},
		{"ionic", t.Ionic},
		{"pipi", t.PiPi},
		{"pication", t.PiCation},
		{"disulphide", t.Disulphide},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return errors.InvalidParameter(f.name, "threshold must be a finite number")
		}
		if f.v < 0 {
			return errors.InvalidParameter(f.name, "threshold must not be negative, got %g", f.v)
		}
	}
	return nil
}

// Settings are the job parameters accepted by the service.
//
// The zero value is not meaningful; start from [DefaultSettings].
type Settings struct {
	Chain              Chain             // Chain selection (default all)
	NetworkPolicy      NetworkPolicy     // Distance measure (default closest)
	Interactions       InteractionPolicy // Interactions per pair (default multiple)
	Thresholds         Thresholds        // Cutoffs (default strict)
	SequenceSeparation int               // Minimum sequence distance between residues (default 3)
	SkipHetero         bool              // Ignore hetero atoms (default false)
	SkipWater          bool              // Ignore water molecules (default true)
	SkipEnergy         bool              // Skip energy computation (default true)
	PerformMSA         bool              // Compute a multiple sequence alignment (default false)
}

// DefaultSettings returns the service defaults.
func DefaultSettings() Settings {
	return Settings{
		Chain:              AllChains(),
		NetworkPolicy:      PolicyClosest,
		Interactions:       InteractionsMultiple,
		Thresholds:         StrictThresholds(),
		SequenceSeparation: 3,
		SkipWater:          true,
		SkipEnergy:         true,
	}
}

// Validate checks every field and fails with an INVALID_PARAMETER error
// naming the first offending one.
func (s Settings) Validate() error {
	if err := s.Chain.Validate(); err != nil {
		return err
	}
	if !s.NetworkPolicy.Valid() {
		return errors.InvalidParameter("networkPolicy", "unknown network policy %q", s.NetworkPolicy)
	}
	if !s.Interactions.Valid() {
		return errors.InvalidParameter("interactions", "unknown interaction policy %q", s.Interactions)
	}
	if err := s.Thresholds.Validate(); err != nil {
		return err
	}
	if s.SequenceSeparation < 1 {
		return errors.InvalidParameter("seqSeparation", "must be at least 1, got %d", s.SequenceSeparation)
	}
	return nil
}

// Field is one key/value pair of the flat settings form.
type Field struct {
	Name  string
	Value string
}

// Fields returns the settings as flat wire key/value pairs sorted by key.
// This is the form used for multipart submissions.
func (s Settings) Fields() []Field {
	w := s.wire()
	fields := []Field{
		{"chain", w.Chain},
		{"networkPolicy", w.NetworkPolicy},
		{"interactions", w.Interactions},
		{"hbond", formatFloat(w.HBond)},
		{"vdw", formatFloat(w.VdW)},
		{"ionic", formatFloat(w.Ionic)},
		{"pipi", formatFloat(w.PiPi)},
		{"pication", formatFloat(w.PiCation)},
		{"disulphide", formatFloat(w.Disulphide)},
		{"seqSeparation", strconv.Itoa(w.SeqSeparation)},
		{"skipHetero", strconv.FormatBool(w.SkipHetero)},
		{"skipWater", strconv.FormatBool(w.SkipWater)},
		{"skipEnergy", strconv.FormatBool(w.SkipEnergy)},
		{"msa", strconv.FormatBool(w.MSA)},
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i].Name < fields[j].Name })
	return fields
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// settingsWire is the flat JSON form shared by submissions and echoed
// settings in status and result bodies.
type settingsWire struct {
	Chain         string  `json:"chain"`
	NetworkPolicy string  `json:"networkPolicy"`
	Interactions  string  `json:"interactions"`
	HBond         float64 `json:"hbond"`
	VdW           float64 `json:"vdw"`
	Ionic         float64 `json:"ionic"`
	PiPi          float64 `json:"pipi"`
	PiCation      float64 `json:"pication"`
	Disulphide    float64 `json:"disulphide"`
	SeqSeparation int     `json:"seqSeparation"`
	SkipHetero    bool    `json:"skipHetero"`
	SkipWater     bool    `json:"skipWater"`
	SkipEnergy    bool    `json:"skipEnergy"`
	MSA           bool    `json:"msa"`
}

func (s Settings) wire() settingsWire {
	return settingsWire{
		Chain:         s.Chain.String(),
		NetworkPolicy: string(s.NetworkPolicy),
		Interactions:  string(s.Interactions),
		HBond:         s.Thresholds.HBond,
		VdW:           s.Thresholds.VdW,
		Ionic:         s.Thresholds.Ionic,
		PiPi:          s.Thresholds.PiPi,
		PiCation:      s.Thresholds.PiCation,
		Disulphide:    s.Thresholds.Disulphide,
		SeqSeparation: s.SequenceSeparation,
		SkipHetero:    s.SkipHetero,
		SkipWater:     s.SkipWater,
		SkipEnergy:    s.SkipEnergy,
		MSA:           s.PerformMSA,
	}
}

func (w settingsWire) settings() (Settings, error) {
	chain, err := ParseChain(w.Chain)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Chain:         chain,
		NetworkPolicy: NetworkPolicy(w.NetworkPolicy),
		Interactions:  InteractionPolicy(w.Interactions),
		Thresholds: Thresholds{
			HBond:      w.HBond,
			VdW:        w.VdW,
			Ionic:      w.Ionic,
			PiPi:       w.PiPi,
			PiCation:   w.PiCation,
			Disulphide: w.Disulphide,
		},
		SequenceSeparation: w.SeqSeparation,
		SkipHetero:         w.SkipHetero,
		SkipWater:          w.SkipWater,
		SkipEnergy:         w.SkipEnergy,
		PerformMSA:         w.MSA,
	}, nil
}

// MarshalJSON encodes the settings as a flat object keyed by wire names.
func (s Settings) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.wire())
}

// UnmarshalJSON decodes a flat settings object. Missing keys keep their
// default values and unknown keys are ignored, so settings can be decoded
// from any body that embeds them.
func (s *Settings) UnmarshalJSON(data []byte) error {
	w := DefaultSettings().wire()
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	decoded, err := w.settings()
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
