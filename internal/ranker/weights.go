// README: Adaptive weight table for the Ranker (§4.9). Kept as data next
// to the scoring control flow in ranker.go, mirroring normalizer's
// tables.go split.
package ranker

import "ark/internal/searchintent"

// Weights holds the eight adaptive factor weights, expected to sum to 1
// after renormalize.
type Weights struct {
	Proximity    float64
	Rating       float64
	Popularity   float64
	Novelty      float64
	Temporal     float64
	IntentMatch  float64
	Vibrancy     float64
	Independence float64
}

// baseWeights is the §4.9 starting point before deltas are applied.
var baseWeights = Weights{
	Proximity:    0.30,
	Rating:       0.15,
	Popularity:   0.10,
	Novelty:      0.05,
	Temporal:     0.15,
	IntentMatch:  0.20,
	Vibrancy:     0.03,
	Independence: 0.02,
}

// AdaptiveWeights returns baseWeights adjusted by intent/urgency/mood/
// budget deltas and renormalized to sum to 1.
func AdaptiveWeights(intent searchintent.SearchIntent) Weights {
	w := baseWeights

	if intent.Kind == searchintent.KindEvent {
		w.Temporal += 0.12
		w.Proximity -= 0.08
	}
	if intent.Sub.Urgency == searchintent.UrgencyImmediate {
		w.Temporal += 0.10
		w.Rating -= 0.05
	}
	if intent.Sub.Mood == "romantic" {
		w.Rating += 0.08
		w.Popularity -= 0.05
	}
	if intent.Sub.Mood == "adventurous" {
		w.Novelty += 0.12
		w.Popularity -= 0.07
		w.Independence += 0.03
	}
	if intent.Sub.Budget == searchintent.BudgetUpscale {
		w.Rating += 0.08
	}

	return renormalize(w)
}

func renormalize(w Weights) Weights {
	sum := w.Proximity + w.Rating + w.Popularity + w.Novelty + w.Temporal + w.IntentMatch + w.Vibrancy + w.Independence
	if sum <= 0 {
		return baseWeights
	}
	return Weights{
		Proximity:    w.Proximity / sum,
		Rating:       w.Rating / sum,
		Popularity:   w.Popularity / sum,
		Novelty:      w.Novelty / sum,
		Temporal:     w.Temporal / sum,
		IntentMatch:  w.IntentMatch / sum,
		Vibrancy:     w.Vibrancy / sum,
		Independence: w.Independence / sum,
	}
}
