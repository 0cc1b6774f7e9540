//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package stm

import (
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"github.com/e-gun/HipparchiaTextLab/internal/vv"
	"math"
	"slices"
)

const (
	STAGE = "stm.Fit"
)

// Options - everything that determines a fit; the same Options on the same matrix give the same Result
type Options struct {
	K             int
	Seed          uint64
	Init          string // vv.INITSPECTRAL, vv.INITRANDOM, vv.INITLDA
	MaxIterations int
	Tolerance     float64 // relative change in the bound that counts as converged
	Alpha         float64
	Eta           float64
	Covariates    []string // docvar names for topic prevalence
	Workers       int
	EStepIter     int
	EStepTol      float64
	Ridge         float64
}

// DefaultOptions - the vv defaults
func DefaultOptions() Options {
	return Options{
		K:             vv.STMTOPICS,
		Seed:          vv.STMSEED,
		Init:          vv.STMINIT,
		MaxIterations: vv.STMMAXITER,
		Tolerance:     vv.STMTOLERANCE,
		Alpha:         vv.STMALPHA,
		Eta:           vv.STMETA,
		EStepIter:     vv.STMESTEPITER,
		EStepTol:      vv.STMESTEPTOL,
		Ridge:         vv.STMRIDGE,
	}
}

// Validate - reject impossible settings before any work is done
func (o Options) Validate() error {
	if o.K < vv.STMMINTOPICS || o.K > vv.STMMAXTOPICS {
		return errs.Config(STAGE, "K must lie between %d and %d; got %d", vv.STMMINTOPICS, vv.STMMAXTOPICS, o.K)
	}
	if !slices.Contains([]string{vv.INITSPECTRAL, vv.INITRANDOM, vv.INITLDA}, o.Init) {
		return errs.Config(STAGE, "unknown initialization strategy '%s'", o.Init)
	}
	if o.MaxIterations < 1 {
		return errs.Config(STAGE, "the iteration budget must be at least 1; got %d", o.MaxIterations)
	}
	if !(o.Tolerance > 0) || math.IsInf(o.Tolerance, 1) {
		return errs.Config(STAGE, "the tolerance must be a positive number; got %v", o.Tolerance)
	}
	if !(o.Alpha > 0) || !(o.Eta > 0) {
		return errs.Config(STAGE, "alpha and eta must be positive; got %v and %v", o.Alpha, o.Eta)
	}
	if o.EStepIter < 1 || !(o.EStepTol > 0) {
		return errs.Config(STAGE, "the per-document iteration settings are invalid: %d, %v", o.EStepIter, o.EStepTol)
	}
	if o.Ridge < 0 {
		return errs.Config(STAGE, "the ridge penalty cannot be negative; got %v", o.Ridge)
	}
	return nil
}

// NonConvergenceError - the bound was still moving when the iteration budget ran out
type NonConvergenceError struct {
	Iterations int
	Change     float64
	Tolerance  float64
}

func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("%s: %s: relative change %.3g after %d iterations exceeds tolerance %.3g",
		STAGE, errs.ErrNonConvergence.Error(), e.Change, e.Iterations, e.Tolerance)
}

func (e *NonConvergenceError) Unwrap() error {
	return errs.ErrNonConvergence
}
