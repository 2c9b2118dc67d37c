package ledger

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dinerozz/datahive-backend/internal/entity"
)

var ErrMalformedPayload = errors.New("malformed ledger payload")

type sessionPayload struct {
	Clicks []clickPayload `json:"clicks"`
}

type clickPayload struct {
	DomID json.RawMessage `json:"domId"`
}

// decodeLabelBytes accepts the encodings node RPCs use for Vec<u8>: a number
// array, a 0x-prefixed hex string or a base64 string.
func decodeLabelBytes(data json.RawMessage) ([]byte, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	if data[0] == '[' {
		var nums []int
		if err := json.Unmarshal(data, &nums); err != nil {
			return nil, fmt.Errorf("domId array: %w", err)
		}
		out := make([]byte, len(nums))
		for i, n := range nums {
			if n < 0 || n > 255 {
				return nil, fmt.Errorf("domId byte %d out of range: %d", i, n)
			}
			out[i] = byte(n)
		}
		return out, nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("domId: %w", err)
	}
	if strings.HasPrefix(s, "0x") {
		out, err := hex.DecodeString(s[2:])
		if err != nil {
			return nil, fmt.Errorf("domId hex: %w", err)
		}
		return out, nil
	}
	out, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("domId base64: %w", err)
	}
	return out, nil
}

// ParseWebsiteDataset decodes a {sessionKey: {"clicks": [...]}} object,
// keeping the session order of the payload. A domId that cannot be read is
// kept as a record without a label, so it fails on its own at decryption.
func ParseWebsiteDataset(websiteID string, raw json.RawMessage) (entity.WebsiteDataset, error) {
	ds := entity.WebsiteDataset{WebsiteID: websiteID, Sessions: []entity.Session{}}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return ds, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return ds, fmt.Errorf("%w: expected object, got %v", ErrMalformedPayload, tok)
	}

	seen := make(map[string]bool)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return ds, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		key, ok := tok.(string)
		if !ok {
			return ds, fmt.Errorf("%w: expected session key, got %v", ErrMalformedPayload, tok)
		}
		if seen[key] {
			return ds, fmt.Errorf("%w: duplicate session key %q", ErrMalformedPayload, key)
		}
		seen[key] = true

		var payload sessionPayload
		if err := dec.Decode(&payload); err != nil {
			return ds, fmt.Errorf("%w: session %q: %v", ErrMalformedPayload, key, err)
		}

		session := entity.Session{Key: key, Records: make([]entity.InteractionRecord, 0, len(payload.Clicks))}
		for _, c := range payload.Clicks {
			label, _ := decodeLabelBytes(c.DomID)
			session.Records = append(session.Records, entity.InteractionRecord{
				ObfuscatedLabel: label,
				SessionKey:      key,
			})
		}
		ds.Sessions = append(ds.Sessions, session)
	}

	if _, err := dec.Token(); err != nil {
		return ds, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return ds, nil
}

// parseWebsiteIDs normalizes website ids given as numbers or strings.
func parseWebsiteIDs(raw json.RawMessage) ([]string, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			ids = append(ids, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(item, &n); err != nil {
			return nil, fmt.Errorf("%w: website id %s", ErrMalformedPayload, item)
		}
		ids = append(ids, n.String())
	}
	return ids, nil
}
