// Package model contains domain models passed between layers.
package model

import (
	"encoding/json"
	"math"
)

// Score bounds shared by every score-bearing field.
const (
	MinScore = 0.0
	MaxScore = 10.0
)

// ScoredEntity is one analyzed subject as delivered by the score API.
// Fields mirror the upstream JSON keys; nil means the value is absent.
type ScoredEntity struct {
	ScreenName *string    `json:"user_screen_name,omitempty"`
	TweetID    FlexString `json:"tweet_id,omitempty"`
	QueryTerm  *string    `json:"query_term,omitempty"`

	OverallScore    *float64 `json:"overall_potential_score_0_10,omitempty"`
	SentimentScore  *float64 `json:"calculated_sentiment_score_0_10,omitempty"`
	EngagementScore *float64 `json:"calculated_engagement_score_0_10,omitempty"`
	StabilityScore  *float64 `json:"context_financial_stability_score_0_10,omitempty"`

	FinancialContext
	SocialInputs

	RawText *string `json:"full_text,omitempty"`
}

// FinancialContext holds the market features captured at tweet time.
type FinancialContext struct {
	Price                *float64 `json:"price_at_tweet_time,omitempty"`
	Volume               *float64 `json:"volume_at_tweet_time,omitempty"`
	MarketCap            *float64 `json:"market_cap_at_tweet_time,omitempty"`
	SMA20                *float64 `json:"sma_20_day_feature,omitempty"`
	SMA50                *float64 `json:"sma_50_day_feature,omitempty"`
	PriceAnomaliesCount  *float64 `json:"price_anomalies_count_feature,omitempty"`
	VolumeAnomaliesCount *float64 `json:"volume_anomalies_count_feature,omitempty"`
}

// SocialInputs holds the raw social signals the sub-scores were derived from.
type SocialInputs struct {
	SentimentCompound *float64 `json:"sentiment_compound_input,omitempty"`
	EngagementSum     *float64 `json:"engagement_metrics_sum_feature,omitempty"`
}

// UnmarshalJSON decodes the upstream record. Numeric fields holding
// something other than a number or numeric string become absent, and scores
// outside [0,10] are dropped.
func (e *ScoredEntity) UnmarshalJSON(data []byte) error {
	type plain ScoredEntity
	// Shallower fields shadow the embedded ones with the same key.
	var aux struct {
		plain
		OverallScore         FlexFloat `json:"overall_potential_score_0_10"`
		SentimentScore       FlexFloat `json:"calculated_sentiment_score_0_10"`
		EngagementScore      FlexFloat `json:"calculated_engagement_score_0_10"`
		StabilityScore       FlexFloat `json:"context_financial_stability_score_0_10"`
		Price                FlexFloat `json:"price_at_tweet_time"`
		Volume               FlexFloat `json:"volume_at_tweet_time"`
		MarketCap            FlexFloat `json:"market_cap_at_tweet_time"`
		SMA20                FlexFloat `json:"sma_20_day_feature"`
		SMA50                FlexFloat `json:"sma_50_day_feature"`
		PriceAnomaliesCount  FlexFloat `json:"price_anomalies_count_feature"`
		VolumeAnomaliesCount FlexFloat `json:"volume_anomalies_count_feature"`
		SentimentCompound    FlexFloat `json:"sentiment_compound_input"`
		EngagementSum        FlexFloat `json:"engagement_metrics_sum_feature"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*e = ScoredEntity(aux.plain)
	e.OverallScore = aux.OverallScore.Value
	e.SentimentScore = aux.SentimentScore.Value
	e.EngagementScore = aux.EngagementScore.Value
	e.StabilityScore = aux.StabilityScore.Value
	e.Price = aux.Price.Value
	e.Volume = aux.Volume.Value
	e.MarketCap = aux.MarketCap.Value
	e.SMA20 = aux.SMA20.Value
	e.SMA50 = aux.SMA50.Value
	e.PriceAnomaliesCount = aux.PriceAnomaliesCount.Value
	e.VolumeAnomaliesCount = aux.VolumeAnomaliesCount.Value
	e.SentimentCompound = aux.SentimentCompound.Value
	e.EngagementSum = aux.EngagementSum.Value
	e.Normalize()
	return nil
}

// Normalize marks invalid scores as absent.
func (e *ScoredEntity) Normalize() {
	e.OverallScore = validScore(e.OverallScore)
	e.SentimentScore = validScore(e.SentimentScore)
	e.EngagementScore = validScore(e.EngagementScore)
	e.StabilityScore = validScore(e.StabilityScore)
}

// Identifier returns the screen name, falling back to the tweet id.
func (e ScoredEntity) Identifier() string {
	if e.ScreenName != nil && *e.ScreenName != "" {
		return *e.ScreenName
	}
	return string(e.TweetID)
}

// HasScreenName reports whether a non-empty screen name is present.
func (e ScoredEntity) HasScreenName() bool {
	return e.ScreenName != nil && *e.ScreenName != ""
}

// Overall returns the overall score and whether it is present.
func (e ScoredEntity) Overall() (float64, bool) {
	if e.OverallScore == nil {
		return 0, false
	}
	return *e.OverallScore, true
}

func validScore(v *float64) *float64 {
	if v == nil || math.IsNaN(*v) || *v < MinScore || *v > MaxScore {
		return nil
	}
	return v
}

// Float returns a pointer to v, handy for building entities in code.
func Float(v float64) *float64 { return &v }

// Str returns a pointer to s.
func Str(s string) *string { return &s }
