package metrics

import (
	"math"
	"time"

	"github.com/vfg2006/ads-sync-engine/internal/domain"
	"github.com/vfg2006/ads-sync-engine/pkg/utils"
)

// Calculate converte um insight bruto na métrica normalizada, com as razões derivadas.
// Campos ausentes ou inválidos valem 0 e nenhuma razão divide por zero.
func Calculate(insight domain.RawInsight) domain.Metric {
	spend := utils.ParseFloatOrZero(insight.Spend)
	impressions := utils.ParseIntOrZero(insight.Impressions)
	clicks := utils.ParseIntOrZero(insight.Clicks)
	reach := utils.ParseIntOrZero(insight.Reach)

	purchases := countActions(insight.Actions, domain.ActionKindPurchase)
	addToCart := countActions(insight.Actions, domain.ActionKindAddToCart)
	leads := countActions(insight.Actions, domain.ActionKindLead)
	conversions := purchases + leads

	purchaseValue := sumActions(insight.ActionValues, domain.ActionKindPurchase)

	frequency := utils.ParseFloatOrZero(insight.Frequency)
	if frequency == 0 {
		frequency = utils.SafeDivide(float64(impressions), float64(reach))
	}

	metric := domain.Metric{
		Spend:         utils.RoundWithTwoDecimalPlace(spend),
		Impressions:   impressions,
		Clicks:        clicks,
		Reach:         reach,
		Conversions:   conversions,
		AddToCart:     addToCart,
		Purchases:     purchases,
		PurchaseValue: utils.RoundWithTwoDecimalPlace(purchaseValue),
		Frequency:     utils.RoundWithTwoDecimalPlace(frequency),
		CTR:           utils.RoundWithTwoDecimalPlace(utils.SafeDivide(float64(clicks), float64(impressions)) * 100),
		CPC:           utils.RoundWithTwoDecimalPlace(utils.SafeDivide(spend, float64(clicks))),
		CPM:           utils.RoundWithTwoDecimalPlace(utils.SafeDivide(spend, float64(impressions)) * 1000),
		CPA:           utils.RoundWithTwoDecimalPlace(utils.SafeDivide(spend, float64(conversions))),
		ROAS:          utils.RoundWithTwoDecimalPlace(utils.SafeDivide(purchaseValue, spend)),
	}

	if date, err := time.Parse(time.DateOnly, insight.DateStart); err == nil {
		metric.Date = date
	}

	return metric
}

func countActions(records []domain.ActionRecord, kind domain.ActionKind) int64 {
	return int64(math.Round(sumActions(records, kind)))
}

// sumActions usa o valor da tag de maior prioridade do tipo, já que a plataforma
// reporta o mesmo evento sob vários aliases. Tags desconhecidas são ignoradas.
func sumActions(records []domain.ActionRecord, kind domain.ActionKind) float64 {
	byTag := make(map[domain.ActionType]float64)
	for _, record := range records {
		if domain.ClassifyAction(record.Type) != kind {
			continue
		}
		byTag[record.Type] += utils.ParseFloatOrZero(record.Value)
	}

	for _, tag := range domain.ActionTags(kind) {
		if value, ok := byTag[tag]; ok {
			return value
		}
	}

	return 0
}
