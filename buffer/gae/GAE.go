// Package gae implements generalized advantage estimation, which
// computes the advantage and rewards-to-go fields of on-policy
// rollouts
package gae

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Compute computes forward view generalized advantage estimates -
// GAE(λ) - following https://arxiv.org/abs/1506.02438 for a single
// trajectory, along with the rewards-to-go of each state.
//
// The rews and vals arguments are the rewards and value estimates of
// each step of the trajectory. The lastVal argument should be 0 if the
// trajectory ended because the agent reached a terminal state, and
// otherwise it should be v(s), the value estimate of the state the
// trajectory was cut off at. This allows for bootstrapping the
// rewards-to-go calculation to account for timesteps beyond the
// arbitrary episode horizon.
func Compute(rews, vals []float64, lastVal, gamma,
	lambda float64) (adv, ret []float64, err error) {
	if len(rews) != len(vals) {
		return nil, nil, fmt.Errorf("compute: illegal number of values "+
			"\n\twant(%v)\n\thave(%v)", len(rews), len(vals))
	}
	if len(rews) == 0 {
		return []float64{}, []float64{}, nil
	}

	n := len(rews)
	allVals := append(append(make([]float64, 0, n+1), vals...), lastVal)
	allRews := append(append(make([]float64, 0, n+1), rews...), lastVal)

	// GAE-lambda advantage calculation
	stateVals := mat.NewVecDense(n, allVals[:n])
	nextStateVals := mat.NewVecDense(n, allVals[1:])
	rewards := mat.NewVecDense(n, allRews[:n])

	deltas := mat.NewVecDense(n, nil)
	deltas.AddScaledVec(rewards, gamma, nextStateVals)
	deltas.SubVec(deltas, stateVals)

	adv = discountCumSum(deltas, gamma*lambda)

	// Rewards-to-go
	rewsToGo := discountCumSum(mat.NewVecDense(n+1, allRews), gamma)
	ret = rewsToGo[:n]

	return adv, ret, nil
}

// Normalize standardizes advantages in place to mean 0 and standard
// deviation 1
func Normalize(adv []float64) {
	if len(adv) < 2 {
		return
	}

	mean := stat.Mean(adv, nil)
	std := stat.StdDev(adv, nil) + 1e-8

	floats.AddConst(-mean, adv)
	floats.Scale(1/std, adv)
}

// discountCumSum computes and returns the discounted cumulative sum
// of all elements of a vector. Given a vector v = [x0 x1 x2 ... xN]
// and discount ℽ, this function computes and returns:
//
// [
//	x0 + ℽ x1 + ℽ^2 x2 + ℽ^3 x3 + ... + ℽ^(N-1) x(N-1) + ℽ^N xN
//	x1 + ℽ^1 x2 + ℽ^2 x3 + ... + ℽ^(N-2) x(N-1) + ℽ^(N-1) xN
//	x2 + ℽ^1 x3 + ... + ℽ^(N-3) x(N-1) + ℽ^(N-2) xN
// ...
// xN
// ]
func discountCumSum(x *mat.VecDense, discount float64) []float64 {
	cumSums := make([]float64, x.Len())

	sum := 0.0
	for i := x.Len() - 1; i >= 0; i-- {
		sum = x.AtVec(i) + discount*sum
		cumSums[i] = sum
	}

	return cumSums
}
