// Package evidence serves the read-only enforcement ledger.
package evidence

import (
	"github.com/xkilldash9x/prahari/api/schemas"
)

// All matches every value of a filter dimension. An empty value does too.
const All = "All"

// Criteria narrows the ledger by platform, status and agency.
type Criteria struct {
	Platform string
	Status   string
	Agency   string
}

func (c Criteria) matches(r schemas.EvidenceRecord) bool {
	return matchField(c.Platform, string(r.Platform)) &&
		matchField(c.Status, string(r.Status)) &&
		matchField(c.Agency, string(r.Agency))
}

func matchField(want, got string) bool {
	return want == "" || want == All || want == got
}

// Ledger is an immutable list of evidence records.
type Ledger struct {
	records []schemas.EvidenceRecord
}

// NewLedger copies records into a new ledger.
func NewLedger(records []schemas.EvidenceRecord) *Ledger {
	return &Ledger{records: append([]schemas.EvidenceRecord(nil), records...)}
}

// NewMockLedger returns the ledger seeded with the demo records.
func NewMockLedger() *Ledger {
	return NewLedger(MockRecords())
}

// Records returns a copy of every record in ledger order.
func (l *Ledger) Records() []schemas.EvidenceRecord {
	return append([]schemas.EvidenceRecord{}, l.records...)
}

// Filter returns the records matching c, in ledger order. The result is never nil.
func (l *Ledger) Filter(c Criteria) []schemas.EvidenceRecord {
	out := []schemas.EvidenceRecord{}
	for _, r := range l.records {
		if c.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Get returns the record with the given ID.
func (l *Ledger) Get(id string) (schemas.EvidenceRecord, bool) {
	for _, r := range l.records {
		if r.ID == id {
			return r, true
		}
	}
	return schemas.EvidenceRecord{}, false
}

// MockRecords are the demo enforcement actions.
func MockRecords() []schemas.EvidenceRecord {
	return []schemas.EvidenceRecord{
		{
			ID:          "EV-2024-001",
			Timestamp:   "2024-05-15 14:23:12",
			TargetUser:  "@fake_news_bot_99",
			Platform:    schemas.PlatformTwitter,
			ActionTaken: "Takedown Request Sent",
			Hash:        "0x7f83b1657ff1fc53b92dc18148a1d65dfc2d4b1fa3d677284addd200126d9069",
			Agency:      schemas.AgencyTrustSafety,
			Status:      schemas.StatusVerified,
		},
		{
			ID:          "EV-2024-002",
			Timestamp:   "2024-05-15 10:10:45",
			TargetUser:  "instagram.com/impersonator_official",
			Platform:    schemas.PlatformInstagram,
			ActionTaken: "Profile Flagged",
			Hash:        "0x3a1b2c3d4e5f6g7h8i9j0k1l2m3n4o5p6q7r8s9t0u1v2w3x4y5z",
			Agency:      schemas.AgencyAutoMod,
			Status:      schemas.StatusPending,
		},
		{
			ID:          "EV-2024-003",
			Timestamp:   "2024-05-14 22:05:01",
			TargetUser:  "@scam_alert_support",
			Platform:    schemas.PlatformTelegram,
			ActionTaken: "Channel Reported",
			Hash:        "0x1a2b3c4d5e6f7g8h9i0j1k2l3m4n5o6p7q8r9s0t1u2v3w4x5y6z",
			Agency:      schemas.AgencyCyberCell,
			Status:      schemas.StatusEscalated,
		},
	}
}
