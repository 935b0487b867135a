package fraud

import "context"

// Classifier is a pre-trained binary classifier evaluated over the feature
// vector (type, amount, oldbalance, newbalance). Implementations are opaque:
// the service only sees the 0/1 prediction.
type Classifier interface {
	Predict(ctx context.Context, features [4]float64) (int, error)
}
