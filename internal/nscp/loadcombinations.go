package nscp

import (
	"fmt"
	"math"
)

// Load case tags accepted on individual loads
const (
	Dead       = "D"
	Live       = "L"
	Roof       = "Lr"
	Wind       = "W"
	Earthquake = "E"
	Rain       = "R"
)

// Cases lists the load case tags in reporting order
var Cases = []string{Dead, Live, Roof, Wind, Earthquake, Rain}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	// Load factors for each load type
	Dead       float64 // D - Dead load
	Live       float64 // L - Live load
	Roof       float64 // Lr - Roof live load
	Wind       float64 // W - Wind load
	Earthquake float64 // E - Earthquake load
	Rain       float64 // R - Rain load
}

// Service applies every load case unfactored
var Service = LoadCombination{
	ID:          "S",
	Description: "D + L + Lr + W + E + R (unfactored)",
	Dead:        1,
	Live:        1,
	Roof:        1,
	Wind:        1,
	Earthquake:  1,
	Rain:        1,
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.6,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "3",
		Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)",
		Dead:        1.2,
		Live:        1.0,
		Roof:        1.6,
		Rain:        1.6,
		Wind:        0.5,
	},
	{
		ID:          "4",
		Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)",
		Dead:        1.2,
		Live:        1.0,
		Wind:        1.0,
		Roof:        0.5,
		Rain:        0.5,
	},
	{
		ID:          "5",
		Description: "1.2D + 1.0E + 1.0L",
		Dead:        1.2,
		Live:        1.0,
		Earthquake:  1.0,
	},
	{
		ID:          "6",
		Description: "0.9D + 1.0W",
		Dead:        0.9,
		Wind:        1.0,
	},
	{
		ID:          "7",
		Description: "0.9D + 1.0E",
		Dead:        0.9,
		Earthquake:  1.0,
	},
}

// SimplifiedCombinations for common beam design scenarios
// These are the most frequently used combinations for gravity loads
var SimplifiedCombinations = []LoadCombination{
	{
		ID:          "1",
		Description: "1.4D",
		Dead:        1.4,
	},
	{
		ID:          "2",
		Description: "1.2D + 1.6L",
		Dead:        1.2,
		Live:        1.6,
	},
}

// Lookup finds a basic combination by ID; "S" or "" selects Service
func Lookup(id string) (LoadCombination, error) {
	if id == "" || id == Service.ID {
		return Service, nil
	}
	for _, c := range LoadCombinations {
		if c.ID == id {
			return c, nil
		}
	}
	return LoadCombination{}, fmt.Errorf("unknown load combination %q", id)
}

// Factor returns the factor the combination applies to a load case.
// Loads without a case tag are treated as dead load.
func (lc LoadCombination) Factor(tag string) (float64, error) {
	switch tag {
	case Dead, "":
		return lc.Dead, nil
	case Live:
		return lc.Live, nil
	case Roof:
		return lc.Roof, nil
	case Wind:
		return lc.Wind, nil
	case Earthquake:
		return lc.Earthquake, nil
	case Rain:
		return lc.Rain, nil
	default:
		return 0, fmt.Errorf("unknown load case %q", tag)
	}
}

// Governing evaluates every combination and returns the largest absolute
// result together with the combination that produced it.
func Governing(combinations []LoadCombination, eval func(LoadCombination) (float64, error)) (float64, LoadCombination, error) {
	var governing LoadCombination
	best := math.Inf(-1)

	for _, combo := range combinations {
		v, err := eval(combo)
		if err != nil {
			return 0, combo, fmt.Errorf("combination %s: %w", combo.ID, err)
		}
		if math.Abs(v) > best {
			best = math.Abs(v)
			governing = combo
		}
	}
	if math.IsInf(best, -1) {
		return 0, governing, fmt.Errorf("no load combinations given")
	}
	return best, governing, nil
}
