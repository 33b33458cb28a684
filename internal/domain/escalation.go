package domain

// EscalationState is the tri-state risk classification of an account.
type EscalationState string

const (
	EscalationNone     EscalationState = "none"
	EscalationWatch    EscalationState = "watch"
	EscalationEscalate EscalationState = "escalate"
)

// EscalationInput is the set of account health signals the score is
// derived from.
type EscalationInput struct {
	Phase        Phase
	Sentiment    string
	DSLTDays     int
	BlockersOpen int
	QCPct7d      float64
	Automation7d float64
}

// CalculateEscalationScore computes the composite risk score and its
// classification. Contributions are additive and independent; weights and
// thresholds are fixed business constants.
func CalculateEscalationScore(in EscalationInput) (int, EscalationState) {
	score := 0

	if in.Phase == PhasePilot {
		score += 30
	}
	if in.Sentiment == SentimentRed {
		score += 25
	}
	if in.DSLTDays > 2 {
		score += 15
	}
	if in.BlockersOpen > 0 {
		score += 10
	}
	if in.QCPct7d < 0.99 {
		score += 10
	}
	if in.Automation7d < 0.30 {
		score += 10
	}

	state := EscalationNone
	if score >= 60 {
		state = EscalationEscalate
	} else if score >= 35 {
		state = EscalationWatch
	}

	return score, state
}
