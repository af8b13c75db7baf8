package ports

import (
	"gowoe/domain/woe"
)

// ReportSinkPort renders WOE tables and IV summaries for human
// consumption. Rendering is presentation-only; sinks never feed back
// into the statistics.
type ReportSinkPort interface {
	RenderSummary(rows []woe.SummaryRow) ([]byte, error)
	RenderTable(t *woe.Table) ([]byte, error)
}
