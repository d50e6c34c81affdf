package ui

import (
	"fmt"

	"github.com/Makepad-fr/mediavote/internal/model"
)

// RenderStats renders the two vote counters. It renders nothing when the
// stats region is disabled or no stats have been loaded yet.
func RenderStats(stats *model.Stats, enabled bool) string {
	if !enabled || stats == nil {
		return ""
	}
	return fmt.Sprintf("%s  %s",
		PositiveStyle.Render(fmt.Sprintf("👍 %d", stats.TotalGostei)),
		NegativeStyle.Render(fmt.Sprintf("👎 %d", stats.TotalNaoGostei)),
	)
}
