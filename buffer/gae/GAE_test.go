package gae

import (
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func TestCompute(t *testing.T) {
	rews := []float64{-1, -1, -1}
	vals := []float64{-1, -1.5, -2}

	tests := []struct {
		name    string
		lambda  float64
		wantAdv []float64
	}{
		{"TD", 0, []float64{-1.485, -1.48, -1.97}},
		{"MonteCarlo", 1, []float64{-4.880997, -3.4303, -1.97}},
	}
	wantRet := []float64{-5.880997, -4.9303, -3.97}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			adv, ret, err := Compute(rews, vals, -3, 0.99, test.lambda)
			if err != nil {
				t.Fatal(err)
			}

			if !floats.EqualApprox(adv, test.wantAdv, 1e-9) {
				t.Errorf("advantages: \n\twant(%v) \n\thave(%v)",
					test.wantAdv, adv)
			}
			if !floats.EqualApprox(ret, wantRet, 1e-9) {
				t.Errorf("rewards-to-go: \n\twant(%v) \n\thave(%v)", wantRet,
					ret)
			}
		})
	}
}

func TestComputeErrors(t *testing.T) {
	if _, _, err := Compute([]float64{1, 2}, []float64{1}, 0, 0.99,
		0.95); err == nil {
		t.Error("mismatched rewards and values should be rejected")
	}

	adv, ret, err := Compute(nil, nil, 0, 0.99, 0.95)
	if err != nil || len(adv) != 0 || len(ret) != 0 {
		t.Errorf("empty trajectory: have (%v, %v, %v)", adv, ret, err)
	}
}

func TestNormalize(t *testing.T) {
	adv := []float64{1, 2, 3, 4, 10}
	Normalize(adv)

	if mean := stat.Mean(adv, nil); mean > 1e-12 || mean < -1e-12 {
		t.Errorf("mean: want(0) have(%v)", mean)
	}
	if std := stat.StdDev(adv, nil); std < 1-1e-6 || std > 1+1e-6 {
		t.Errorf("standard deviation: want(1) have(%v)", std)
	}

	single := []float64{5}
	Normalize(single)
	if single[0] != 5 {
		t.Errorf("single advantage should not be normalized, have %v",
			single[0])
	}
}
