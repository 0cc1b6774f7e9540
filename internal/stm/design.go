//    HipparchiaTextLab
//    Copyright: E Gunderson 2022-24
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package stm

import (
	"errors"
	"fmt"
	"github.com/e-gun/HipparchiaTextLab/internal/corp"
	"github.com/e-gun/HipparchiaTextLab/internal/errs"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"strconv"
	"strings"
)

// DesignMatrix - an intercept, standardised numeric covariates, and one-hot categorical covariates minus a reference level
func DesignMatrix(dv corp.Docvars, covariates []string) (*mat.Dense, []string, error) {
	const (
		WRN = "stm.DesignMatrix(): '%s' does not vary and adds nothing to the model"
	)

	n := dv.Len()
	names := []string{"(intercept)"}
	cols := [][]float64{ones(n)}

	for _, c := range covariates {
		if !dv.Has(c) {
			return nil, nil, errs.Config(STAGE, "no docvar named '%s' to use as a covariate", c)
		}
		raw := dv.Column(c)

		if nums, ok := numeric(raw); ok {
			mean, sd := stat.MeanStdDev(nums, nil)
			if !(sd > 0) {
				Msg.WARN(fmt.Sprintf(WRN, c))
				continue
			}
			for i := range nums {
				nums[i] = (nums[i] - mean) / sd
			}
			names = append(names, c)
			cols = append(cols, nums)
			continue
		}

		levels := dv.Levels(c)
		if len(levels) < 2 {
			Msg.WARN(fmt.Sprintf(WRN, c))
			continue
		}
		// levels[0] is the reference
		for _, l := range levels[1:] {
			col := make([]float64, n)
			for i := range raw {
				if raw[i] == l {
					col[i] = 1
				}
			}
			names = append(names, c+"="+l)
			cols = append(cols, col)
		}
	}

	x := mat.NewDense(n, len(cols), nil)
	for j := range cols {
		x.SetCol(j, cols[j])
	}
	return x, names, nil
}

func ones(n int) []float64 {
	o := make([]float64, n)
	for i := range o {
		o[i] = 1
	}
	return o
}

// numeric - every value parses as a number
func numeric(raw []string) ([]float64, bool) {
	out := make([]float64, len(raw))
	for i, s := range raw {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// ridge - Gamma = (X'X + lambda*D)^-1 X'Y where D leaves the intercept unpenalised
func ridge(x *mat.Dense, y *mat.Dense, lambda float64) (*mat.Dense, error) {
	_, p := x.Dims()
	var a mat.Dense
	a.Mul(x.T(), x)
	for j := 1; j < p; j++ {
		a.Set(j, j, a.At(j, j)+lambda)
	}
	var b mat.Dense
	b.Mul(x.T(), y)

	var g mat.Dense
	if err := g.Solve(&a, &b); err != nil {
		// an ill-conditioned system still yields a usable solution
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return nil, err
		}
	}
	return &g, nil
}
