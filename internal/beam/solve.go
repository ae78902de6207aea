package beam

import (
	"errors"
	"sort"

	"github.com/alexiusacademia/gobeam/internal/singularity"
	"github.com/alexiusacademia/gobeam/internal/symbolic"
)

// SolveForReactions solves the given reaction unknowns from equilibrium at
// x = L and the boundary conditions. With no arguments every reaction
// introduced by ApplySupport is solved.
func (b *Beam) SolveForReactions(unknowns ...string) error {
	if len(unknowns) == 0 {
		unknowns = b.unknowns
	}
	if len(unknowns) == 0 {
		return configErrorf("no reaction unknowns to solve for")
	}
	b.solved, b.reactions, b.hinge = false, nil, nil

	var (
		sol map[string]symbolic.Poly
		err error
	)
	if b.joint == HingeJoin {
		sol, err = b.solveHinge(unknowns)
	} else {
		sol, err = b.solveContinuous(unknowns)
	}
	if err != nil {
		b.log.Debug("solve failed", "error", err)
		return err
	}
	b.reactions = make(map[string]symbolic.Poly, len(unknowns))
	for _, u := range unknowns {
		b.reactions[u] = sol[u]
	}
	b.solved = true
	b.log.Debug("reactions solved", "unknowns", len(unknowns))
	return nil
}

func (b *Beam) solveContinuous(unknowns []string) (map[string]symbolic.Poly, error) {
	load := b.OriginalLoad()
	shear := load.Integrate().Neg()
	moment := shear.Integrate()
	eqs := []symbolic.Poly{
		shear.Limit(b.length, singularity.Right),
		moment.Limit(b.length, singularity.Right),
	}
	c1, c2 := b.constant(1), b.constant(2)
	slope, defl, err := integrateElastic(moment, symbolic.Sym(c1), symbolic.Sym(c2), b.segments)
	if err != nil {
		return nil, err
	}
	eqs = append(eqs, b.conditionEquations(curvesAt(slope, defl))...)
	b.log.Debug("solving reactions", "equations", len(eqs), "unknowns", len(unknowns)+2)
	return solveFor(eqs, []string{c1, c2}, unknowns)
}

// solveFor solves eqs for the auxiliary symbols and the unknowns together and
// fails unless every unknown is determined.
func solveFor(eqs []symbolic.Poly, aux, unknowns []string) (map[string]symbolic.Poly, error) {
	all := append(append([]string(nil), aux...), unknowns...)
	sol, err := symbolic.SolveLinear(eqs, all)
	var se *symbolic.SolveError
	switch {
	case err == nil:
	case errors.As(err, &se) && len(se.Inconsistent) == 0:
	default:
		return nil, determinacy(err)
	}
	free := map[string]bool{}
	if se != nil {
		for _, u := range se.Unresolved {
			free[u] = true
		}
	}
	var unresolved []string
	for _, u := range unknowns {
		v, ok := sol[u]
		if !ok {
			unresolved = append(unresolved, u)
			continue
		}
		for _, s := range v.Symbols() {
			if free[s] {
				unresolved = append(unresolved, u)
				break
			}
		}
	}
	if len(unresolved) > 0 {
		sort.Strings(unresolved)
		return nil, &DeterminacyError{Unresolved: unresolved, Err: err}
	}
	return sol, nil
}

// Solved reports whether the reactions have been solved since the last change
func (b *Beam) Solved() bool { return b.solved }

// Reactions returns the solved reaction values
func (b *Beam) Reactions() map[string]symbolic.Poly {
	out := make(map[string]symbolic.Poly, len(b.reactions))
	for k, v := range b.reactions {
		out[k] = v
	}
	return out
}
