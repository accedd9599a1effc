package stats

import (
	"math"
	"sort"
)

// MetricState is one sub-metric's current average raw value.
type MetricState struct {
	Metric string
	Value  float64
}

// Step is the allocation made to one sub-metric.
type Step struct {
	Metric          string
	CurrentValue    float64
	TargetValue     float64
	CurrentSubScore float64
	TargetSubScore  float64
	WeightedGain    float64
	GoodThreshold   float64
	MeetsGood       bool
}

// Plan is the result of SolveTarget.
type Plan struct {
	Current         float64
	Target          float64
	Gap             float64
	AlreadyAchieved bool
	Feasible        bool
	MaxAchievable   float64
	Steps           []Step
}

// SolveTarget allocates the points needed to move from current to target
// across sub-metrics in two passes. The first closes each metric's gap to
// its good threshold, largest weight*headroom first. The second spends what
// is still missing up to perfect sub-scores, largest remaining headroom
// first. The plan is infeasible when every metric at a perfect sub-score
// still falls short.
func SolveTarget(current, target float64, metrics []MetricState) Plan {
	plan := Plan{Current: current, Target: target, Gap: target - current}
	if target <= current {
		plan.Gap = 0
		plan.AlreadyAchieved = true
		plan.Feasible = true
		plan.MaxAchievable = current
		return plan
	}

	type candidate struct {
		state   MetricState
		curve   Curve
		weight  float64
		sub     float64
		goodSub float64
		maxGain float64
		alloc   float64
	}

	var cands []*candidate
	var total float64
	for _, m := range metrics {
		c, ok := Curves[m.Metric]
		if !ok {
			continue
		}
		w := Weights[m.Metric]
		if w == 0 {
			continue
		}
		sub := c.Score(m.Value) * 100
		gain := PotentialGain(sub, w)
		total += gain
		cands = append(cands, &candidate{
			state:   m,
			curve:   c,
			weight:  w,
			sub:     sub,
			goodSub: c.Score(GoodThresholds[m.Metric]) * 100,
			maxGain: gain,
		})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].maxGain != cands[j].maxGain {
			return cands[i].maxGain > cands[j].maxGain
		}
		return cands[i].weight > cands[j].weight
	})

	plan.MaxAchievable = math.Min(100, current+total)
	plan.Feasible = total >= plan.Gap

	remaining := plan.Gap
	var order []*candidate
	spend := func(c *candidate, room float64) {
		take := math.Min(room, remaining)
		if take <= 0 {
			return
		}
		if c.alloc == 0 {
			order = append(order, c)
		}
		c.alloc += take
		remaining -= take
	}

	// Pass 1: up to the good threshold.
	for _, c := range cands {
		if remaining <= 0 {
			break
		}
		spend(c, math.Max(0, c.goodSub-c.sub)*c.weight)
	}

	// Pass 2: up to a perfect sub-score.
	if remaining > 0 {
		rest := append([]*candidate(nil), cands...)
		sort.SliceStable(rest, func(i, j int) bool {
			return rest[i].maxGain-rest[i].alloc > rest[j].maxGain-rest[j].alloc
		})
		for _, c := range rest {
			if remaining <= 0 {
				break
			}
			spend(c, c.maxGain-c.alloc)
		}
	}

	for _, c := range order {
		targetSub := math.Min(100, c.sub+c.alloc/c.weight)
		plan.Steps = append(plan.Steps, Step{
			Metric:          c.state.Metric,
			CurrentValue:    c.state.Value,
			TargetValue:     c.curve.Inverse(targetSub / 100),
			CurrentSubScore: c.sub,
			TargetSubScore:  targetSub,
			WeightedGain:    c.alloc,
			GoodThreshold:   GoodThresholds[c.state.Metric],
			MeetsGood:       targetSub >= c.goodSub-1e-9,
		})
	}

	return plan
}
