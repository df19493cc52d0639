package domain

// ActionType é a tag de ação reportada pela plataforma (ex: "offsite_conversion.fb_pixel_purchase")
type ActionType string

type ActionKind int

const (
	ActionKindUnknown ActionKind = iota
	ActionKindPurchase
	ActionKindAddToCart
	ActionKindLead
)

// Tags conhecidas por tipo, em ordem de prioridade. A plataforma repete o mesmo evento
// sob vários aliases, então apenas a primeira tag presente é considerada.
var actionTagsByKind = map[ActionKind][]ActionType{
	ActionKindPurchase: {
		"omni_purchase",
		"purchase",
		"offsite_conversion.fb_pixel_purchase",
		"onsite_web_purchase",
	},
	ActionKindAddToCart: {
		"omni_add_to_cart",
		"add_to_cart",
		"offsite_conversion.fb_pixel_add_to_cart",
	},
	ActionKindLead: {
		"lead",
		"offsite_conversion.fb_pixel_lead",
		"onsite_conversion.lead_grouped",
	},
}

var actionKindByTag = func() map[ActionType]ActionKind {
	m := make(map[ActionType]ActionKind)
	for kind, tags := range actionTagsByKind {
		for _, tag := range tags {
			m[tag] = kind
		}
	}
	return m
}()

// ClassifyAction retorna ActionKindUnknown para tags não mapeadas, que devem ser ignoradas
func ClassifyAction(tag ActionType) ActionKind {
	return actionKindByTag[tag]
}

// ActionTags retorna as tags de um tipo em ordem de prioridade
func ActionTags(kind ActionKind) []ActionType {
	return actionTagsByKind[kind]
}

type ActionRecord struct {
	Type  ActionType
	Value string
}

// RawInsight é a linha de insight de um anúncio como recebida da plataforma
type RawInsight struct {
	AdRemoteID   string
	DateStart    string
	DateStop     string
	Spend        string
	Impressions  string
	Clicks       string
	Reach        string
	Frequency    string
	Actions      []ActionRecord
	ActionValues []ActionRecord
}
