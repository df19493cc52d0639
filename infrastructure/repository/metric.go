package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/ads-sync-engine/infrastructure/database/postgres"
	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/pkg/utils"
)

const metricsTable = "ad_metrics"

type MetricRepository interface {
	Upsert(ctx context.Context, metric *domain.Metric) error
}

type metricRepository struct {
	conn *postgres.Connection
}

func NewMetricRepository(conn *postgres.Connection) MetricRepository {
	return &metricRepository{
		conn: conn,
	}
}

// Upsert grava a métrica do dia substituindo a linha existente de (ad_id, date)
func (r *metricRepository) Upsert(ctx context.Context, metric *domain.Metric) error {
	if metric.ID == "" {
		id, err := utils.GenerateID()
		if err != nil {
			return fmt.Errorf("erro ao gerar id da métrica: %w", err)
		}
		metric.ID = id
	}

	query, args, err := buildMetricUpsert(metric)
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if err := r.conn.QueryRowContext(ctx, query, args...).Scan(&metric.ID); err != nil {
		return postgres.WrapError(err)
	}

	return nil
}

func buildMetricUpsert(metric *domain.Metric) (string, []any, error) {
	return squirrel.StatementBuilder.
		Insert(metricsTable).
		Columns(
			"id", "ad_id", "date", "spend", "impressions", "clicks", "reach",
			"conversions", "add_to_cart", "purchases", "purchase_value",
			"frequency", "roas", "ctr", "cpc", "cpm", "cpa", "created_at", "updated_at",
		).
		Values(
			metric.ID,
			metric.AdID,
			metric.Date.Format(time.DateOnly),
			metric.Spend,
			metric.Impressions,
			metric.Clicks,
			metric.Reach,
			metric.Conversions,
			metric.AddToCart,
			metric.Purchases,
			metric.PurchaseValue,
			metric.Frequency,
			metric.ROAS,
			metric.CTR,
			metric.CPC,
			metric.CPM,
			metric.CPA,
			squirrel.Expr("NOW()"),
			squirrel.Expr("NOW()"),
		).
		Suffix(`ON CONFLICT (ad_id, date) DO UPDATE SET
			spend = EXCLUDED.spend,
			impressions = EXCLUDED.impressions,
			clicks = EXCLUDED.clicks,
			reach = EXCLUDED.reach,
			conversions = EXCLUDED.conversions,
			add_to_cart = EXCLUDED.add_to_cart,
			purchases = EXCLUDED.purchases,
			purchase_value = EXCLUDED.purchase_value,
			frequency = EXCLUDED.frequency,
			roas = EXCLUDED.roas,
			ctr = EXCLUDED.ctr,
			cpc = EXCLUDED.cpc,
			cpm = EXCLUDED.cpm,
			cpa = EXCLUDED.cpa,
			updated_at = NOW()
			RETURNING id`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}
