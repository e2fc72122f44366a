package analysis

import "strings"

// SignalSet holds the keyword-signal tables driving the intent and funnel
// classifiers plus the content and paid finders. The tables are plain
// configuration so a deployment can swap in locale-specific terms; nil is
// accepted everywhere a *SignalSet is expected and means DefaultSignals.
type SignalSet struct {
	HighIntent   []string
	MediumIntent []string
	LowIntent    []string

	Bofu []string
	Mofu []string
	Tofu []string

	StopWords         map[string]struct{}
	QuestionPrefixes  []string
	ComparisonSignals []string
	CompetitorSignals []string
}

var englishSignals = &SignalSet{
	HighIntent: []string{
		"buy", "purchase", "order", "pricing", "cost", "quote",
		"demo", "trial", "free trial", "near me", "same day",
		"plans", "subscribe",
	},
	MediumIntent: []string{
		"best", "vs", "versus", "alternative", "compared",
		"pros and cons", "benefits", "features", "review", "reviews",
	},
	LowIntent: []string{
		"what is", "how to", "guide", "tutorial", "learn",
		"examples", "templates", "definition",
	},
	Bofu: []string{
		"pricing", "free trial", "demo", "buy", "purchase", "order",
		"login", "signup", "sign up", "subscribe", "plans",
	},
	Mofu: []string{
		"best", "vs", "versus", "comparison", "alternative", "review",
		"pros and cons", "benefits", "features", "compared",
	},
	Tofu: []string{
		"what is", "how to", "guide", "tutorial", "learn",
		"examples", "definition", "101", "template",
	},
	StopWords: stopWordSet(
		"the", "and", "for", "with", "how", "what", "why", "when", "where",
		"which", "that", "this", "from", "are", "was", "were", "been", "being",
		"have", "has", "had", "does", "did", "will", "would", "could", "should",
		"may", "can", "login", "free", "best", "top", "new", "use", "get",
	),
	QuestionPrefixes: []string{
		"how", "what", "why", "when", "where", "which", "can", "does", "is",
	},
	ComparisonSignals: []string{
		"vs", "versus", "alternative", "compared to", "best", "top", "review",
	},
	CompetitorSignals: []string{
		"alternative", "vs", "versus", "compared", "competitor",
		"switch from", "migrate from",
	},
}

// polishSignals extends the English tables with Polish GSC vocabulary, as
// Polish exports mix both languages in practice.
var polishSignals = func() *SignalSet {
	s := *englishSignals
	s.Bofu = append(append([]string{}, englishSignals.Bofu...),
		"kup", "kupić", "zamów", "zamówienie", "cennik", "cena",
		"logowanie", "rejestracja", "sklep", "oferta", "dostawa",
	)
	s.Mofu = append(append([]string{}, englishSignals.Mofu...),
		"najlepszy", "najlepsza", "najlepsze", "porównanie", "alternatywa",
		"opinia", "opinie", "recenzja", "ranking", "wady i zalety",
	)
	s.Tofu = append(append([]string{}, englishSignals.Tofu...),
		"co to", "jak", "poradnik", "instrukcja", "przykłady",
		"definicja", "szablony", "co oznacza",
	)
	return &s
}()

func stopWordSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

// DefaultSignals returns the default (English) signal tables.
func DefaultSignals() *SignalSet { return englishSignals }

// SignalsForLocale returns the signal tables for a locale tag. Unknown
// locales fall back to the default English set.
func SignalsForLocale(locale string) *SignalSet {
	if strings.EqualFold(locale, "pl") {
		return polishSignals
	}
	return englishSignals
}

func orDefault(s *SignalSet) *SignalSet {
	if s == nil {
		return englishSignals
	}
	return s
}

func containsAny(lower string, signals []string) bool {
	for _, sig := range signals {
		if strings.Contains(lower, sig) {
			return true
		}
	}
	return false
}

// ClassifyIntent tags a query with its commercial intent. Tiers are
// checked in strict priority order; no match means low.
func (s *SignalSet) ClassifyIntent(query string) IntentLevel {
	lower := strings.ToLower(query)
	if containsAny(lower, s.HighIntent) {
		return IntentHigh
	}
	if containsAny(lower, s.MediumIntent) {
		return IntentMedium
	}
	return IntentLow
}

// ClassifyFunnelStage tags a query with its funnel stage. A confirmed
// brand query is always bofu regardless of signals; no match means tofu,
// never an unclassified state.
func (s *SignalSet) ClassifyFunnelStage(query string, isBrand *bool) FunnelStage {
	if isBrand != nil && *isBrand {
		return StageBofu
	}
	lower := strings.ToLower(query)
	if containsAny(lower, s.Bofu) {
		return StageBofu
	}
	if containsAny(lower, s.Mofu) {
		return StageMofu
	}
	if containsAny(lower, s.Tofu) {
		return StageTofu
	}
	return StageTofu
}

// ClassifyIntent classifies with the default signal tables.
func ClassifyIntent(query string) IntentLevel {
	return englishSignals.ClassifyIntent(query)
}

// ClassifyFunnelStage classifies with the default signal tables.
func ClassifyFunnelStage(query string, isBrand *bool) FunnelStage {
	return englishSignals.ClassifyFunnelStage(query, isBrand)
}
