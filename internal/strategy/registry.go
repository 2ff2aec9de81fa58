package strategy

import "sort"

// Registry holds equity strategies keyed by their factory type identifier
// for CLI lookup and enumeration.
type Registry struct {
	strategies map[string]EquityStrategy
}

// NewRegistry creates an empty strategy Registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]EquityStrategy),
	}
}

// Register adds a strategy under a type identifier, replacing any earlier
// registration with the same key.
func (r *Registry) Register(typ string, s EquityStrategy) {
	r.strategies[typ] = s
}

// Get retrieves a strategy by type identifier. The second return value
// indicates whether the strategy was found.
func (r *Registry) Get(typ string) (EquityStrategy, bool) {
	s, ok := r.strategies[typ]
	return s, ok
}

// List returns a sorted slice of all registered type identifiers.
func (r *Registry) List() []string {
	types := make([]string, 0, len(r.strategies))
	for typ := range r.strategies {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// EquityTypes returns the equity strategy type identifiers the factory
// accepts, sorted ASC.
func EquityTypes() []string {
	types := []string{
		TypeSMACross, TypeRSIReversal, TypeMACDCross, TypeBollingerRSI,
		TypeBreakout, TypeMomentum, TypeConfluence,
	}
	sort.Strings(types)
	return types
}

// OptionsTypes returns the options strategy type identifiers the factory
// accepts, sorted ASC.
func OptionsTypes() []string {
	types := []string{
		TypeCoveredCall, TypeProtectivePut, TypeIronCondor, TypeStraddle,
	}
	sort.Strings(types)
	return types
}

// DefaultRegistry builds a registry holding one of each equity strategy
// with default parameters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, typ := range EquityTypes() {
		s, err := EquityFromConfig(Config{Type: typ})
		if err != nil {
			// Defaults are valid by construction.
			panic(err)
		}
		r.Register(typ, s)
	}
	return r
}
