package metadomain

type Action struct {
	ActionType string `json:"action_type"`
	Value      string `json:"value"`
}

// Insight é uma linha de /{ad_id}/insights. Valores numéricos chegam como string.
type Insight struct {
	AdID         string   `json:"ad_id"`
	DateStart    string   `json:"date_start"`
	DateStop     string   `json:"date_stop"`
	Spend        string   `json:"spend"`
	Impressions  string   `json:"impressions"`
	Clicks       string   `json:"clicks"`
	Reach        string   `json:"reach"`
	Frequency    string   `json:"frequency"`
	Actions      []Action `json:"actions"`
	ActionValues []Action `json:"action_values"`
}
