package domain

import (
	"fmt"
	"time"
)

type NodeLevel string

const (
	NodeLevelAccount  NodeLevel = "account"
	NodeLevelCampaign NodeLevel = "campaign"
	NodeLevelAdSet    NodeLevel = "ad_set"
	NodeLevelAd       NodeLevel = "ad"
	NodeLevelMetric   NodeLevel = "metric"
)

// NodeError registra a falha de um único nó da hierarquia sem interromper os irmãos
type NodeError struct {
	Level     NodeLevel `json:"level"`
	RemoteID  string    `json:"remote_id"`
	AccountID string    `json:"account_id"`
	Message   string    `json:"message"`
}

func (e NodeError) String() string {
	return fmt.Sprintf("%s %s: %s", e.Level, e.RemoteID, e.Message)
}

type RunState string

const (
	RunStateInitialized         RunState = "initialized"
	RunStateFetchingAccounts    RunState = "fetching_accounts"
	RunStateReconcilingAccount  RunState = "reconciling_account"
	RunStateAggregating         RunState = "aggregating"
	RunStateCompleted           RunState = "completed"
	RunStateCompletedWithErrors RunState = "completed_with_errors"
)

type RunResult struct {
	RunID              string      `json:"run_id"`
	DateRange          DateRange   `json:"date_range"`
	Status             RunState    `json:"status"`
	States             []RunState  `json:"states,omitempty"`
	AccountsProcessed  int         `json:"accounts_processed"`
	AccountsSkipped    int         `json:"accounts_skipped"`
	CampaignsProcessed int         `json:"campaigns_processed"`
	AdSetsProcessed    int         `json:"ad_sets_processed"`
	AdsProcessed       int         `json:"ads_processed"`
	MetricsStored      int         `json:"metrics_stored"`
	NeedsReconnection  []string    `json:"needs_reconnection,omitempty"`
	Errors             []NodeError `json:"errors"`
	StartedAt          time.Time   `json:"started_at"`
	FinishedAt         time.Time   `json:"finished_at"`
}

// Failed indica sincronização parcial: parte dos dados pode ter sido gravada
func (r *RunResult) Failed() bool {
	return len(r.Errors) > 0
}

func (r *RunResult) AddError(level NodeLevel, accountID, remoteID string, err error) {
	r.Errors = append(r.Errors, NodeError{
		Level:     level,
		RemoteID:  remoteID,
		AccountID: accountID,
		Message:   err.Error(),
	})
}

// Merge soma os contadores e concatena os erros de outro resultado
func (r *RunResult) Merge(other *RunResult) {
	if other == nil {
		return
	}

	r.AccountsProcessed += other.AccountsProcessed
	r.AccountsSkipped += other.AccountsSkipped
	r.CampaignsProcessed += other.CampaignsProcessed
	r.AdSetsProcessed += other.AdSetsProcessed
	r.AdsProcessed += other.AdsProcessed
	r.MetricsStored += other.MetricsStored
	r.NeedsReconnection = append(r.NeedsReconnection, other.NeedsReconnection...)
	r.Errors = append(r.Errors, other.Errors...)
}
