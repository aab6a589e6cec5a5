package run

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"

	"tabscope/domain/core"
	"tabscope/domain/profile"
	"tabscope/domain/table"
)

// ProfileRun is one profiling pass over an uploaded or queried table, as
// handed to the rendering shell.
type ProfileRun struct {
	ID          core.RunID     `json:"run_id"`
	Source      string         `json:"source"`
	Fingerprint string         `json:"fingerprint"`
	GeneratedAt core.Timestamp `json:"generated_at"`
	DurationMs  int64          `json:"duration_ms"`
	Report      profile.Report `json:"report"`
}

// NewProfileRun wraps a report with run metadata
func NewProfileRun(source string, t *table.Table, report profile.Report, durationMs int64) *ProfileRun {
	return &ProfileRun{
		ID:          core.NewRunID(),
		Source:      source,
		Fingerprint: Fingerprint(t),
		GeneratedAt: core.Now(),
		DurationMs:  durationMs,
		Report:      report,
	}
}

// Fingerprint hashes column names and cells so identical uploads can be
// recognized across runs. Each field is length-prefixed and tagged with its
// value type, so "1" and 1 hash differently.
func Fingerprint(t *table.Table) string {
	h := sha256.New()
	for _, col := range t.Columns() {
		writeField(h, "c", col.Name)
		for _, v := range col.Values {
			if v.IsMissing() {
				writeField(h, "m", "")
				continue
			}
			writeField(h, string(v.Type), v.String())
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writeField(h hash.Hash, tag, s string) {
	fmt.Fprintf(h, "%s%d:%s", tag, len(s), s)
}
