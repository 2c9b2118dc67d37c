package pipeline

import (
	"testing"

	"github.com/dinerozz/datahive-backend/internal/entity"
	"github.com/dinerozz/datahive-backend/pkg/obfuscate"
)

type testSession struct {
	key    string
	labels []string
}

func encryptLabel(t testing.TB, label string) []byte {
	t.Helper()
	blob, err := obfuscate.Encrypt([]byte(label), obfuscate.Passphrase)
	if err != nil {
		t.Fatalf("encrypt %q: %v", label, err)
	}
	return blob
}

func rawDataset(t testing.TB, websiteID string, sessions ...testSession) entity.WebsiteDataset {
	t.Helper()
	ds := entity.WebsiteDataset{WebsiteID: websiteID}
	for _, s := range sessions {
		sess := entity.Session{Key: s.key}
		for _, l := range s.labels {
			sess.Records = append(sess.Records, entity.InteractionRecord{
				ObfuscatedLabel: encryptLabel(t, l),
				SessionKey:      s.key,
			})
		}
		ds.Sessions = append(ds.Sessions, sess)
	}
	return ds
}

func decodedDataset(sessions ...testSession) entity.DecodedDataset {
	ds := entity.DecodedDataset{WebsiteID: "1"}
	for _, s := range sessions {
		sess := entity.DecodedSession{Key: s.key}
		for _, l := range s.labels {
			sess.Interactions = append(sess.Interactions, entity.DecodedInteraction{SessionKey: s.key, Label: l})
		}
		ds.Sessions = append(ds.Sessions, sess)
	}
	return ds
}

func scenarioCatalog() Catalog {
	return Catalog{
		"p1": {ID: "p1", Name: "Shoes", Category: "Clothing"},
		"p2": {ID: "p2", Name: "Headphones", Category: "Electronics"},
	}
}
