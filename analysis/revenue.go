package analysis

import "math"

// BusinessContext carries the conversion economics an analysis run uses
// to turn traffic gains into money. Immutable per call.
type BusinessContext struct {
	ConversionRate  float64  `json:"conversionRate"`
	TrialToPaidRate float64  `json:"trialToPaidRate"`
	ACV             float64  `json:"acv"`
	PrimaryGoal     []string `json:"primaryGoal,omitempty"`
	CompanyName     string   `json:"companyName,omitempty"`
}

// DefaultBusinessContext returns the default conversion assumptions for a
// SaaS funnel.
func DefaultBusinessContext() BusinessContext {
	return BusinessContext{
		ConversionRate:  0.025,
		TrialToPaidRate: 0.12,
		ACV:             300,
		PrimaryGoal:     []string{"growth"},
	}
}

// RevenueEstimate is the monetary projection for a traffic gain.
type RevenueEstimate struct {
	TrafficGain    float64 `json:"trafficGain"`
	NewTrials      int     `json:"newTrials"`
	NewCustomers   float64 `json:"newCustomers"`
	MonthlyRevenue float64 `json:"monthlyRevenue"`
	AnnualRevenue  float64 `json:"annualRevenue"`
}

// EstimateRevenue converts a traffic gain into a revenue projection:
// visits to trials to paying customers to annual contract value. Any
// finite input is accepted; zero or negative gain simply yields zero or
// negative output. Trials round to whole numbers, customers to one
// decimal, revenue to whole currency units.
func EstimateRevenue(trafficGain float64, ctx BusinessContext) RevenueEstimate {
	newTrials := trafficGain * ctx.ConversionRate
	newCustomers := newTrials * ctx.TrialToPaidRate
	annualRevenue := newCustomers * ctx.ACV
	monthlyRevenue := annualRevenue / 12

	return RevenueEstimate{
		TrafficGain:    trafficGain,
		NewTrials:      int(math.Round(newTrials)),
		NewCustomers:   math.Round(newCustomers*10) / 10,
		MonthlyRevenue: math.Round(monthlyRevenue),
		AnnualRevenue:  math.Round(annualRevenue),
	}
}
