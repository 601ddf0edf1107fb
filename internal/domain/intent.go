package domain

// Well-known intent tags the dialog reacts to specially.
// Any other tag is answered with a canned response from the catalog.
const (
	IntentBalanceInquiry = "balance_inquiry"
	IntentCardBlock      = "card_block"
	IntentExchangeRate   = "exchange_rate"
	IntentUnknown        = "unknown"
)

// Intent is one record of the static catalog loaded at startup
type Intent struct {
	Tag       string   `json:"tag"`
	Patterns  []string `json:"patterns"`
	Responses []string `json:"responses"`
}

// Prediction is the classifier's verdict for one utterance
type Prediction struct {
	Tag        string
	Confidence float64
}
