package metaclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	metadomain "github.com/vfg2006/ads-sync-engine/infrastructure/integrator/meta/domain"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/pkg/secret"
)

const insightFields = "ad_id,date_start,date_stop,spend,impressions,clicks,reach,frequency,actions,action_values"

// GetInsights retorna o insight agregado do anúncio no período, ou nil quando não há linha
func (c *MetaClient) GetInsights(ctx context.Context, token secret.Token, adID string, dateRange domain.DateRange) (*metadomain.Insight, error) {
	rows, err := list[metadomain.Insight](ctx, c, token, "get_insights", c.insightsURL(adID, dateRange, false))
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &rows[0], nil
}

// GetDailyInsights retorna uma linha por dia com entrega no período
func (c *MetaClient) GetDailyInsights(ctx context.Context, token secret.Token, adID string, dateRange domain.DateRange) ([]metadomain.Insight, error) {
	return list[metadomain.Insight](ctx, c, token, "get_daily_insights", c.insightsURL(adID, dateRange, true))
}

func (c *MetaClient) insightsURL(adID string, dateRange domain.DateRange, daily bool) string {
	timeRange := fmt.Sprintf("{\"since\":\"%s\",\"until\":\"%s\"}", dateRange.SinceString(), dateRange.UntilString())

	params := url.Values{}
	params.Add("level", "ad")
	params.Add("fields", insightFields)
	params.Add("time_range", timeRange)
	params.Add("limit", strconv.Itoa(c.pageLimit))
	if daily {
		params.Add("time_increment", "1")
	}

	return c.edgeURL(adID, "insights", params)
}
