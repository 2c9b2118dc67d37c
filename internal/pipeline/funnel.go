package pipeline

import (
	"fmt"

	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/internal/shared"
)

// CheckoutLabel marks a converted session.
const CheckoutLabel = "checkout-button"

const notAvailable = "N/A"

func Converted(s entity.DecodedSession) bool {
	for _, in := range s.Interactions {
		if in.Label == CheckoutLabel {
			return true
		}
	}
	return false
}

// Funnel partitions sessions by conversion and compares their mean click counts.
func Funnel(ds entity.DecodedDataset) entity.FunnelMetric {
	var split entity.CheckoutSplit
	var convertedClicks, otherClicks int

	for _, s := range ds.Sessions {
		if Converted(s) {
			split.Converted++
			convertedClicks += len(s.Interactions)
		} else {
			split.NotConverted++
			otherClicks += len(s.Interactions)
		}
	}

	ratio := ClickToCheckoutRatio(convertedClicks, split.Converted, otherClicks, split.NotConverted)
	return entity.FunnelMetric{
		CheckoutSplit:        split,
		ClickToCheckoutRatio: ratio,
		RatioDisplay:         FormatRatio(ratio),
	}
}

// ClickToCheckoutRatio is mean(converted clicks) / mean(other clicks). An
// empty group or a zero denominator gives an undefined ratio.
func ClickToCheckoutRatio(convertedClicks, convertedSessions, otherClicks, otherSessions int) entity.Ratio {
	if convertedSessions == 0 || otherSessions == 0 {
		return entity.UndefinedRatio()
	}
	convertedMean := float64(convertedClicks) / float64(convertedSessions)
	otherMean := float64(otherClicks) / float64(otherSessions)
	if otherMean == 0 {
		return entity.UndefinedRatio()
	}
	return entity.Ratio(convertedMean / otherMean)
}

// RatioValue returns the numeric ratio or ErrUndefinedRatio.
func RatioValue(r entity.Ratio) (float64, error) {
	if !r.Defined() {
		return 0, shared.ErrUndefinedRatio
	}
	return float64(r), nil
}

// FormatRatio renders a ratio as a percentage with two decimals. Undefined
// and zero ratios render as "N/A".
func FormatRatio(r entity.Ratio) string {
	v, err := RatioValue(r)
	if err != nil || v == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%.2f%%", v*100)
}
