package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		query string
		want  IntentLevel
	}{
		{"buy crm software", IntentHigh},
		{"crm pricing", IntentHigh},
		{"free trial project tool", IntentHigh},
		{"best crm software", IntentMedium},
		{"asana vs trello", IntentMedium},
		{"crm reviews", IntentMedium},
		{"what is a crm", IntentLow},
		{"how to manage projects", IntentLow},
		{"random words here", IntentLow},
		{"", IntentLow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyIntent(tt.query), "query %q", tt.query)
	}
}

func TestClassifyIntentHighBeatsMedium(t *testing.T) {
	// "best" is a medium signal and "pricing" a high one; high wins.
	assert.Equal(t, IntentHigh, ClassifyIntent("best crm pricing"))
}

func TestClassifyFunnelStage(t *testing.T) {
	tests := []struct {
		query   string
		isBrand *bool
		want    FunnelStage
	}{
		{"crm pricing", nil, StageBofu},
		{"sign up for newsletter", nil, StageBofu},
		{"best crm software", nil, StageMofu},
		{"asana vs trello", nil, StageMofu},
		{"what is a crm", nil, StageTofu},
		{"how to manage projects", nil, StageTofu},
		{"completely unrelated", nil, StageTofu},
		{"what is a crm", boolPtr(true), StageBofu},
		{"what is a crm", boolPtr(false), StageTofu},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyFunnelStage(tt.query, tt.isBrand), "query %q", tt.query)
	}
}

func TestSignalsForLocale(t *testing.T) {
	assert.Same(t, DefaultSignals(), SignalsForLocale("en"))
	assert.Same(t, DefaultSignals(), SignalsForLocale("de"))
	assert.Same(t, DefaultSignals(), SignalsForLocale(""))

	pl := SignalsForLocale("pl")
	assert.NotSame(t, DefaultSignals(), pl)
	assert.Equal(t, pl, SignalsForLocale("PL"))

	// Polish tables still carry the English signals.
	assert.Equal(t, StageBofu, pl.ClassifyFunnelStage("crm pricing", nil))
	// And recognize the Polish vocabulary the default set does not.
	assert.Equal(t, StageBofu, pl.ClassifyFunnelStage("crm cennik", nil))
	assert.Equal(t, StageTofu, DefaultSignals().ClassifyFunnelStage("crm cennik", nil))
	assert.Equal(t, StageMofu, pl.ClassifyFunnelStage("najlepszy crm", nil))
}

func TestCustomSignalSet(t *testing.T) {
	custom := &SignalSet{
		HighIntent: []string{"acheter"},
		Bofu:       []string{"acheter"},
	}
	assert.Equal(t, IntentHigh, custom.ClassifyIntent("acheter un logiciel"))
	assert.Equal(t, StageBofu, custom.ClassifyFunnelStage("acheter un logiciel", nil))
	assert.Equal(t, IntentLow, custom.ClassifyIntent("buy software"))
}
