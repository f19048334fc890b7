package overlay

import (
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/lixenwraith/alert-fx/render"
	"github.com/lixenwraith/alert-fx/status"
)

// hudLine formats the metric snapshot as one status row
func hudLine(s status.Snapshot, muted bool) string {
	var b strings.Builder
	b.WriteString("fx ")
	b.WriteString(humanize.Comma(s.Ints[status.EngineLive]))
	b.WriteString(" live · ")
	b.WriteString(humanize.Comma(s.Ints[status.EngineFrames]))
	b.WriteString(" frames · ")
	b.WriteString(humanize.Comma(s.Ints[status.EngineEvicted]))
	b.WriteString(" evicted │ ")

	b.WriteString(s.Strings[status.SchedulerState])
	b.WriteString(" · queue ")
	b.WriteString(humanize.Comma(s.Ints[status.SchedulerQueue]))
	b.WriteString(" · shown ")
	b.WriteString(humanize.Comma(s.Ints[status.SchedulerShown]))

	if state, ok := s.Strings[status.FeedState]; ok {
		b.WriteString(" │ feed ")
		b.WriteString(state)
		b.WriteString(" · ")
		b.WriteString(humanize.Comma(s.Ints[status.FeedEvents]))
		b.WriteString(" events")
	}
	if muted {
		b.WriteString(" │ muted")
	}
	return b.String()
}

func drawHUD(buf *render.Buffer, line string) {
	_, h := buf.Size()
	if h < 2 {
		return
	}
	buf.DrawText(1, h-1, line, render.RgbCardDim)
}
