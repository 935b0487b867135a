package fraud

import "time"

// Verdict is the binary fraud decision rendered to the caller.
type Verdict string

const (
	VerdictFraud    Verdict = "Fraud"
	VerdictNotFraud Verdict = "Not Fraud"
)

// TransactionInput carries the fields submitted for a single inspection.
// The four float fields form the classifier feature vector; sender, receiver
// and step only feed the heuristics and the flagged-receiver lookup.
type TransactionInput struct {
	TransactionID string
	Type          float64
	Amount        float64
	OldBalance    float64
	NewBalance    float64
	SenderID      string
	ReceiverID    string
	Step          int
}

// Features returns the 4-tuple consumed by the classifiers.
func (in TransactionInput) Features() [4]float64 {
	return [4]float64{in.Type, in.Amount, in.OldBalance, in.NewBalance}
}

// Signals holds the four binary inputs to the scoring rule.
type Signals struct {
	SVM          int
	RandomForest int
	HighAmount   bool
	OddHour      bool
}

// Chart is the indicator breakdown rendered as a bar chart on the result page.
type Chart struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// ScoreResult is the outcome of scoring one transaction.
type ScoreResult struct {
	Verdict   Verdict  `json:"verdict"`
	RiskScore int      `json:"riskScore"`
	Reasons   []string `json:"reasons"`
	Chart     Chart    `json:"chart"`
}

// FlaggedTransaction is the persisted record of a fraud verdict.
// Rows are write-once: never updated or deleted by this service.
type FlaggedTransaction struct {
	TransactionID   string    `json:"transactionId"`
	ReceiverID      string    `json:"receiverId"`
	Amount          *float64  `json:"amount,omitempty"`
	TransactionDate *string   `json:"transactionDate,omitempty"`
	FlaggedAt       time.Time `json:"flaggedAt"`
}

// InsertFlaggedParams are the caller-supplied fields for a new flagged
// transaction. FlaggedAt is set by the database at insert time.
type InsertFlaggedParams struct {
	TransactionID   string
	ReceiverID      string
	Amount          *float64
	TransactionDate *string
}
