package present

import (
	"strconv"

	"github.com/okian/memedash/internal/domain/model"
	"github.com/okian/memedash/internal/domain/types"
)

// Risk labels derived from the overall score.
const (
	RiskLow     = "Low"
	RiskMedium  = "Medium"
	RiskHigh    = "High"
	RiskUnknown = "Unknown"
)

// RiskLabel bands the overall score: >= 7 Low, >= 4 Medium, otherwise High.
func RiskLabel(overall *float64) string {
	switch {
	case overall == nil:
		return RiskUnknown
	case *overall >= 7:
		return RiskLow
	case *overall >= 4:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Field is one labeled value of a detail section.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Section groups detail fields under a heading.
type Section struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// DetailView is the rendered detail page of one entity.
type DetailView struct {
	Title    string    `json:"title"`
	Risk     string    `json:"risk"`
	Found    bool      `json:"found"`
	Sections []Section `json:"sections"`
}

// Detail renders e with "N/A" for every absent field. A nil entity yields the
// placeholder view used when the lookup found nothing.
func Detail(e *model.ScoredEntity) DetailView {
	if e == nil {
		e = &model.ScoredEntity{}
	}
	found := e.Identifier() != "" || e.OverallScore != nil
	risk := RiskLabel(e.OverallScore)

	overall := types.NotAvailable
	if e.OverallScore != nil {
		overall = number(e.OverallScore) + " / 10"
	}

	return DetailView{
		Title: text(e.ScreenName) + " - Details",
		Risk:  risk,
		Found: found,
		Sections: []Section{
			{
				Title: "Overview",
				Fields: []Field{
					{"Overall Potential Score", overall},
					{"Calculated Risk Level", risk},
					{"Query Term", text(e.QueryTerm)},
					{"Tweet ID", orNA(string(e.TweetID))},
					{"Full Text", text(e.RawText)},
				},
			},
			{
				Title: "Financial Context",
				Fields: []Field{
					{"Price at Tweet Time", number(e.Price)},
					{"Volume at Tweet Time", number(e.Volume)},
					{"Market Cap at Tweet Time", number(e.MarketCap)},
					{"SMA 20 Day Feature", number(e.SMA20)},
					{"SMA 50 Day Feature", number(e.SMA50)},
					{"Price Anomalies Count", number(e.PriceAnomaliesCount)},
					{"Volume Anomalies Count", number(e.VolumeAnomaliesCount)},
				},
			},
			{
				Title: "Sentiment & Social Scores",
				Fields: []Field{
					{"Calculated Sentiment Score (0-10)", number(e.SentimentScore)},
					{"Raw Sentiment Compound Input", number(e.SentimentCompound)},
					{"Calculated Engagement Score (0-10)", number(e.EngagementScore)},
					{"Engagement Metrics Sum", number(e.EngagementSum)},
				},
			},
			{
				Title: "Scoring Breakdown",
				Fields: []Field{
					{"Overall Potential Score", number(e.OverallScore)},
					{"Sentiment Score", number(e.SentimentScore)},
					{"Engagement Score", number(e.EngagementScore)},
					{"Financial Stability Score", number(e.StabilityScore)},
				},
			},
		},
	}
}

// Rows renders the coin table; scores use two decimals.
func Rows(entities []model.ScoredEntity) []types.Row {
	rows := make([]types.Row, 0, len(entities))
	for _, e := range entities {
		rows = append(rows, types.Row{
			Identifier: orNA(e.Identifier()),
			QueryTerm:  text(e.QueryTerm),
			Overall:    score(e.OverallScore),
			Sentiment:  score(e.SentimentScore),
			Engagement: score(e.EngagementScore),
			Stability:  score(e.StabilityScore),
			Risk:       RiskLabel(e.OverallScore),
		})
	}
	return rows
}

func number(v *float64) string {
	if v == nil {
		return types.NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func score(v *float64) string {
	if v == nil {
		return types.NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

func text(s *string) string {
	if s == nil {
		return types.NotAvailable
	}
	return orNA(*s)
}

func orNA(s string) string {
	if s == "" {
		return types.NotAvailable
	}
	return s
}
