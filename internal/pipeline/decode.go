// Package pipeline turns raw ledger click records into chart-ready series and
// funnel metrics. Every stage is a pure function of its input.
package pipeline

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/internal/shared"
	"github.com/dinerozz/datahive-backend/pkg/obfuscate"
)

// UnknownLabel replaces labels that failed to decode or resolve.
const UnknownLabel = "Unknown"

var (
	errInvalidUTF8 = errors.New("decrypted label is not valid UTF-8")
	errEmptyLabel  = errors.New("decrypted label is empty")
)

type Decoder struct {
	passphrase string
}

// NewDecoder returns a decoder bound to the passphrase shared with the
// tracking script. See package obfuscate for why this is not a secret.
func NewDecoder() *Decoder {
	return &Decoder{passphrase: obfuscate.Passphrase}
}

// DecodeLabel decrypts one obfuscated label and returns the printable,
// trimmed plain label.
func (d *Decoder) DecodeLabel(raw []byte) (string, error) {
	plain, err := obfuscate.Decrypt(raw, d.passphrase)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(plain) {
		return "", errInvalidUTF8
	}

	label := strings.TrimSpace(stripControl(string(plain)))
	if label == "" {
		return "", errEmptyLabel
	}
	return label, nil
}

// Decode never fails: a record that cannot be decoded comes back tagged with
// its DecodeError and the UnknownLabel placeholder.
func (d *Decoder) Decode(rec entity.InteractionRecord, index int) entity.DecodedInteraction {
	label, err := d.DecodeLabel(rec.ObfuscatedLabel)
	if err != nil {
		return entity.DecodedInteraction{
			SessionKey: rec.SessionKey,
			Label:      UnknownLabel,
			Err:        &shared.DecodeError{SessionKey: rec.SessionKey, Index: index, Err: err},
		}
	}
	return entity.DecodedInteraction{SessionKey: rec.SessionKey, Label: label}
}

func (d *Decoder) DecodeDataset(ds entity.WebsiteDataset) entity.DecodedDataset {
	out := entity.DecodedDataset{
		WebsiteID: ds.WebsiteID,
		Sessions:  make([]entity.DecodedSession, 0, len(ds.Sessions)),
	}

	for _, s := range ds.Sessions {
		decoded := entity.DecodedSession{
			Key:          s.Key,
			Interactions: make([]entity.DecodedInteraction, 0, len(s.Records)),
		}
		for i, rec := range s.Records {
			if rec.SessionKey == "" {
				rec.SessionKey = s.Key
			}
			decoded.Interactions = append(decoded.Interactions, d.Decode(rec, i))
		}
		out.Sessions = append(out.Sessions, decoded)
	}

	return out
}

// stripControl drops C0, DEL and C1 control characters.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}
