package domain

import "time"

// Metric é único por (AdID, Date)
type Metric struct {
	ID            string    `json:"id"`
	AdID          string    `json:"ad_id"`
	Date          time.Time `json:"date"`
	Spend         float64   `json:"spend"`
	Impressions   int64     `json:"impressions"`
	Clicks        int64     `json:"clicks"`
	Reach         int64     `json:"reach"`
	Conversions   int64     `json:"conversions"`
	AddToCart     int64     `json:"add_to_cart"`
	Purchases     int64     `json:"purchases"`
	PurchaseValue float64   `json:"purchase_value"`
	Frequency     float64   `json:"frequency"`
	ROAS          float64   `json:"roas"`
	CTR           float64   `json:"ctr"`
	CPC           float64   `json:"cpc"`
	CPM           float64   `json:"cpm"`
	CPA           float64   `json:"cpa"`
}
