package editor

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"github.com/iw2rmb/mention/annotation"
)

// Zone markers are resolved by zone.Scan, which the host calls once on its
// full frame. Without a global manager the editor renders unmarked output and
// mouse hits fall back to layout geometry.

func (m *Model) deleteZoneID(id annotation.ID) string {
	return fmt.Sprintf("%s-del-%s", m.cfg.ZonePrefix, id)
}

func (m *Model) candidateZoneID(index int) string {
	return fmt.Sprintf("%s-cand-%d", m.cfg.ZonePrefix, index)
}

func markZone(id, s string) string {
	if zone.DefaultManager == nil {
		return s
	}
	return zone.Mark(id, s)
}

func inZone(id string, msg tea.MouseMsg) bool {
	if zone.DefaultManager == nil {
		return false
	}
	z := zone.Get(id)
	return z != nil && z.InBounds(msg)
}
