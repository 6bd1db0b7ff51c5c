package domain

// Market represents a single prediction market as returned by the
// backend. It is an immutable snapshot; the client never mutates it.
type Market struct {
	ID             string  `json:"marketId"`
	Title          string  `json:"title"`
	Category       string  `json:"category,omitempty"`
	Sentiment      string  `json:"sentiment,omitempty"`
	YesProbability float64 `json:"yesProbability"`
	NoProbability  float64 `json:"noProbability"`
	Liquidity      float64 `json:"liquidity"`
	Volume24h      float64 `json:"volume24h"`
	Expiry         string  `json:"expiry,omitempty"`
}

// Outcome is the model's YES/NO call for a market.
type Outcome string

const (
	OutcomeYes Outcome = "YES"
	OutcomeNo  Outcome = "NO"
)

// PredictionResult is the computed forecast for one market. A fresh one
// is fetched per selection and never cached across selections.
//
// The probabilities come from the model, not the market snapshot, and
// are not guaranteed to sum to 100.
type PredictionResult struct {
	MarketID       string  `json:"marketId"`
	Prediction     Outcome `json:"prediction"`
	Confidence     int     `json:"confidence"`
	YesProbability float64 `json:"yes_probability"`
	NoProbability  float64 `json:"no_probability"`
	Reason         string  `json:"reason,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// SubscriptionPreferences are the two alert channels a subscriber can
// pick. They are independent; both may be set at once.
type SubscriptionPreferences struct {
	Immediate   bool `json:"immediate"`
	DailyDigest bool `json:"daily_digest"`
}
