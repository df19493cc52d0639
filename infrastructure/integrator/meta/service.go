package meta

import (
	"context"

	metadomain "github.com/vfg2006/ads-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-engine/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/internal/usecases/syncing"
	"github.com/vfg2006/ads-sync-engine/pkg/secret"
	"github.com/vfg2006/ads-sync-engine/pkg/utils"
)

// MetaIntegrator adapta o cliente da Graph API para os tipos do domínio
type MetaIntegrator struct {
	Client metaclient.Client
}

func New(client metaclient.Client) *MetaIntegrator {
	return &MetaIntegrator{
		Client: client,
	}
}

// ForAccount retorna uma sessão presa ao token da conta. O token só vive enquanto a sessão existir.
func (s *MetaIntegrator) ForAccount(account domain.SyncAccount) syncing.AdsAPI {
	return &accountSession{
		client: s.Client,
		token:  account.Token,
	}
}

type accountSession struct {
	client metaclient.Client
	token  secret.Token
}

func (a *accountSession) ListCampaigns(ctx context.Context, accountID string) ([]domain.RemoteCampaign, error) {
	campaigns, err := a.client.ListCampaigns(ctx, a.token, accountID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RemoteCampaign, 0, len(campaigns))
	for _, c := range campaigns {
		status := c.EffectiveStatus
		if status == "" {
			status = c.Status
		}

		result = append(result, domain.RemoteCampaign{
			RemoteID: c.ID,
			Name:     c.Name,
			Status:   domain.NormalizeStatus(status),
		})
	}

	return result, nil
}

func (a *accountSession) ListAdSets(ctx context.Context, campaignID string) ([]domain.RemoteAdSet, error) {
	adSets, err := a.client.ListAdSets(ctx, a.token, campaignID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RemoteAdSet, 0, len(adSets))
	for _, as := range adSets {
		result = append(result, domain.RemoteAdSet{
			RemoteID:    as.ID,
			Name:        as.Name,
			DailyBudget: parseBudget(as.DailyBudget),
			Status:      domain.NormalizeStatus(as.Status),
		})
	}

	return result, nil
}

func (a *accountSession) ListAds(ctx context.Context, adSetID string) ([]domain.RemoteAd, error) {
	ads, err := a.client.ListAds(ctx, a.token, adSetID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RemoteAd, 0, len(ads))
	for _, ad := range ads {
		result = append(result, domain.RemoteAd{
			RemoteID:    ad.ID,
			Name:        ad.Name,
			CreativeURL: creativeURL(ad.Creative),
			Status:      domain.NormalizeStatus(ad.Status),
		})
	}

	return result, nil
}

func (a *accountSession) GetInsights(ctx context.Context, adID string, dateRange domain.DateRange) (*domain.RawInsight, error) {
	insight, err := a.client.GetInsights(ctx, a.token, adID, dateRange)
	if err != nil || insight == nil {
		return nil, err
	}

	raw := FactoryRawInsight(insight, adID)
	return &raw, nil
}

func (a *accountSession) GetDailyInsights(ctx context.Context, adID string, dateRange domain.DateRange) ([]domain.RawInsight, error) {
	rows, err := a.client.GetDailyInsights(ctx, a.token, adID, dateRange)
	if err != nil {
		return nil, err
	}

	result := make([]domain.RawInsight, 0, len(rows))
	for i := range rows {
		result = append(result, FactoryRawInsight(&rows[i], adID))
	}

	return result, nil
}

// FactoryRawInsight converte a linha da Graph API para o formato usado no cálculo de métricas
func FactoryRawInsight(insight *metadomain.Insight, adID string) domain.RawInsight {
	if insight.AdID != "" {
		adID = insight.AdID
	}

	return domain.RawInsight{
		AdRemoteID:   adID,
		DateStart:    insight.DateStart,
		DateStop:     insight.DateStop,
		Spend:        insight.Spend,
		Impressions:  insight.Impressions,
		Clicks:       insight.Clicks,
		Reach:        insight.Reach,
		Frequency:    insight.Frequency,
		Actions:      toActionRecords(insight.Actions),
		ActionValues: toActionRecords(insight.ActionValues),
	}
}

func toActionRecords(actions []metadomain.Action) []domain.ActionRecord {
	records := make([]domain.ActionRecord, 0, len(actions))
	for _, action := range actions {
		records = append(records, domain.ActionRecord{
			Type:  domain.ActionType(action.ActionType),
			Value: action.Value,
		})
	}
	return records
}

// parseBudget converte o orçamento em centavos. Vazio significa orçamento no nível da campanha.
func parseBudget(minorUnits string) *float64 {
	if minorUnits == "" {
		return nil
	}

	cents := utils.ParseFloatOrZero(minorUnits)
	if cents <= 0 {
		return nil
	}

	budget := utils.RoundWithTwoDecimalPlace(cents / 100)
	return &budget
}

func creativeURL(creative *metadomain.Creative) *string {
	if creative == nil {
		return nil
	}

	if creative.ImageURL != "" {
		return &creative.ImageURL
	}

	if creative.ThumbnailURL != "" {
		return &creative.ThumbnailURL
	}

	return nil
}
