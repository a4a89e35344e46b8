package engine

// Evaluation bundles every derived classification for one snapshot.
type Evaluation struct {
	HealthScore  int
	Segment      Segment
	Risk         Risk
	Stage        Stage
	Tone         Tone
	Hint         string
	Action       Action
	CoarseAction CoarseAction
}

// Evaluate runs the full classifier chain in dependency order. It is pure:
// evaluating the same snapshot twice yields identical results.
func Evaluate(s Snapshot) Evaluation {
	score := HealthScore(s)
	segment := SegmentFor(s, score)
	risk := RiskFor(score, s.HasActiveGrant, s.DaysToExpiry)
	stage := StageFor(s, score, segment, risk)
	tone := ToneFor(s, score, segment, stage)
	action := Decide(DecisionContextFrom(s))

	return Evaluation{
		HealthScore:  score,
		Segment:      segment,
		Risk:         risk,
		Stage:        stage,
		Tone:         tone,
		Hint:         HintFor(stage, tone, s.Recent30dSpend > 0),
		Action:       action,
		CoarseAction: CoarseActionFor(action),
	}
}
