// entity/interaction.go
package entity

import (
	"encoding/json"
	"math"
)

// InteractionRecord is one logged click as stored on the ledger.
type InteractionRecord struct {
	ObfuscatedLabel []byte `json:"obfuscatedLabel"`
	SessionKey      string `json:"sessionKey"`
}

type Session struct {
	Key     string              `json:"key"`
	Records []InteractionRecord `json:"records"`
}

// WebsiteDataset holds every recorded session of one registered website, in
// the order the ledger returned them.
type WebsiteDataset struct {
	WebsiteID string    `json:"websiteId"`
	Sessions  []Session `json:"sessions"`
}

func (d WebsiteDataset) RecordCount() int {
	n := 0
	for _, s := range d.Sessions {
		n += len(s.Records)
	}
	return n
}

// DecodedInteraction is an InteractionRecord after decryption. Err is set when
// the label could not be decoded; Label then holds the placeholder.
type DecodedInteraction struct {
	SessionKey string `json:"sessionKey"`
	Label      string `json:"label"`
	Err        error  `json:"-"`
}

func (d DecodedInteraction) Failed() bool {
	return d.Err != nil
}

type DecodedSession struct {
	Key          string               `json:"key"`
	Interactions []DecodedInteraction `json:"interactions"`
}

type DecodedDataset struct {
	WebsiteID string           `json:"websiteId"`
	Sessions  []DecodedSession `json:"sessions"`
}

func (d DecodedDataset) InteractionCount() int {
	n := 0
	for _, s := range d.Sessions {
		n += len(s.Interactions)
	}
	return n
}

func (d DecodedDataset) FailureCount() int {
	n := 0
	for _, s := range d.Sessions {
		for _, i := range s.Interactions {
			if i.Failed() {
				n++
			}
		}
	}
	return n
}

// SeriesEntry is one chart slice. Key is the decoded label, Label the display text.
type SeriesEntry struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type AggregatedSeries []SeriesEntry

func (s AggregatedSeries) Total() int {
	n := 0
	for _, e := range s {
		n += e.Count
	}
	return n
}

type CheckoutSplit struct {
	Converted    int `json:"converted"`
	NotConverted int `json:"notConverted"`
}

// Ratio is NaN when undefined and marshals to null in that case.
type Ratio float64

func UndefinedRatio() Ratio {
	return Ratio(math.NaN())
}

func (r Ratio) Defined() bool {
	f := float64(r)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(r))
}

type FunnelMetric struct {
	CheckoutSplit        CheckoutSplit `json:"checkoutSplit"`
	ClickToCheckoutRatio Ratio         `json:"clickToCheckoutRatio"`
	RatioDisplay         string        `json:"ratioDisplay"`
}
