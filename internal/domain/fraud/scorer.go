package fraud

// Chart labels, in the fixed order the result page expects.
var chartLabels = []string{"SVM", "Random Forest", "High Amount", "Odd Hour"}

// Reason sentences, appended in signal order when the corresponding signal fired.
const (
	ReasonSVM             = "SVM model flagged the transaction."
	ReasonRandomForest    = "Random Forest model flagged the transaction."
	ReasonHighAmount      = "Transaction amount is suspiciously high."
	ReasonOddHour         = "Transaction occurred during odd hours."
	ReasonFlaggedReceiver = "Receiver already flagged from earlier transaction."
)

// Scoring weights. Both model predictions carry four times the weight of a
// heuristic flag.
const (
	modelWeight     = 40
	heuristicWeight = 10

	// flaggedReceiverScore is the fixed score for the known-receiver fast path.
	flaggedReceiverScore = 90

	// highAmountRatio is the fraction of the old balance at or above which a
	// transaction amount counts as suspiciously high.
	highAmountRatio = 0.95
)

// DefaultOddHours are the steps treated as anomalous hours.
var DefaultOddHours = []int{1, 2, 3, 4, 5}

// Scorer combines two model predictions and two heuristic flags into a risk
// score and verdict. It is pure: no I/O, no state beyond the odd-hour set.
type Scorer struct {
	oddHours map[int]struct{}
}

// NewScorer creates a scorer with the given odd-hour steps. An empty slice
// falls back to DefaultOddHours.
func NewScorer(oddHours []int) *Scorer {
	if len(oddHours) == 0 {
		oddHours = DefaultOddHours
	}
	set := make(map[int]struct{}, len(oddHours))
	for _, h := range oddHours {
		set[h] = struct{}{}
	}
	return &Scorer{oddHours: set}
}

// HighAmount reports whether amount is suspiciously high relative to the old
// balance. A zero or negative old balance never triggers the flag.
func (s *Scorer) HighAmount(amount, oldBalance float64) bool {
	if oldBalance <= 0 {
		return false
	}
	return amount >= highAmountRatio*oldBalance
}

// IsOddHour reports whether step falls in the configured odd-hour set.
func (s *Scorer) IsOddHour(step int) bool {
	_, ok := s.oddHours[step]
	return ok
}

// Score applies the combination rule. Either model alone is enough for a Fraud
// verdict; the two heuristics only produce Fraud when both fire together, even
// though each contributes to the risk score on its own. That asymmetry is
// deliberate and relied upon by callers.
func (s *Scorer) Score(sig Signals) ScoreResult {
	high := btoi(sig.HighAmount)
	odd := btoi(sig.OddHour)

	score := modelWeight*sig.SVM + modelWeight*sig.RandomForest +
		heuristicWeight*high + heuristicWeight*odd

	verdict := VerdictNotFraud
	if sig.SVM == 1 || sig.RandomForest == 1 || (sig.HighAmount && sig.OddHour) {
		verdict = VerdictFraud
	}

	var reasons []string
	if sig.SVM == 1 {
		reasons = append(reasons, ReasonSVM)
	}
	if sig.RandomForest == 1 {
		reasons = append(reasons, ReasonRandomForest)
	}
	if sig.HighAmount {
		reasons = append(reasons, ReasonHighAmount)
	}
	if sig.OddHour {
		reasons = append(reasons, ReasonOddHour)
	}

	return ScoreResult{
		Verdict:   verdict,
		RiskScore: score,
		Reasons:   reasons,
		Chart: Chart{
			Labels: chartLabels,
			Values: []int{sig.SVM, sig.RandomForest, high, odd},
		},
	}
}

// FlaggedReceiverResult is the fixed fast-path outcome for a receiver with
// prior fraud history: verdict Fraud at score 90, bypassing the models.
func FlaggedReceiverResult() ScoreResult {
	return ScoreResult{
		Verdict:   VerdictFraud,
		RiskScore: flaggedReceiverScore,
		Reasons:   []string{ReasonFlaggedReceiver},
		Chart: Chart{
			Labels: chartLabels,
			Values: []int{1, 0, 0, 0},
		},
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}
