package analysis

import (
	"fmt"
	"math"

	"github.com/pable/csinsights/internal/model"
)

// Insight thresholds.
const (
	IneffectivePctWarn    = 30   // percent of throws
	TeamFlashWarnMs       = 500  // a single flash blinding teammates longer than this
	ShortSmokeMs          = 1200 // smokes blocking LOS for less than this
	ShortSmokeCountNotice = 2
)

// Insight messages.
const (
	MsgTeamFlash  = "High team-flash incidents"
	MsgShortSmoke = "Some smokes with short LOS block"
)

// DeriveInsights inspects the throw log and returns the triggered insights
// in a fixed order: general, flash, smoke. The result is never nil.
func DeriveInsights(throws []model.ThrowEvent) []model.Insight {
	insights := []model.Insight{}

	if len(throws) > 0 {
		if pct := IneffectivePercent(throws); pct >= IneffectivePctWarn {
			insights = append(insights, model.Insight{
				Type:     model.InsightGeneral,
				Severity: model.SeverityWarn,
				Message:  fmt.Sprintf("Ineffective utility ~%d%%", pct),
			})
		}
	}

	for _, e := range throws {
		if e.Type == model.ThrowFlash && e.TeamBlindMs > TeamFlashWarnMs {
			insights = append(insights, model.Insight{
				Type:     model.InsightFlash,
				Severity: model.SeverityWarn,
				Message:  MsgTeamFlash,
			})
			break
		}
	}

	shortSmokes := 0
	for _, e := range throws {
		if e.Type == model.ThrowSmoke && e.LOSBlockMs < ShortSmokeMs {
			shortSmokes++
		}
	}
	if shortSmokes >= ShortSmokeCountNotice {
		insights = append(insights, model.Insight{
			Type:     model.InsightSmoke,
			Severity: model.SeverityInfo,
			Message:  MsgShortSmoke,
		})
	}

	return insights
}

// IneffectivePercent returns the share of ineffective throws as a whole
// percentage, rounded half-up. An empty log is 0%.
func IneffectivePercent(throws []model.ThrowEvent) int {
	if len(throws) == 0 {
		return 0
	}
	n := 0
	for _, e := range throws {
		if e.Ineffective {
			n++
		}
	}
	return int(math.Round(float64(n*100) / float64(len(throws))))
}
