package view

import "github.com/matst80/slask-dashboard/pkg/client"

// KPIDisplay shows the two summary figures.
type KPIDisplay interface {
	ShowKPI(kpi client.KPI)
}

// NewKPIAdapter keeps the KPI summary in sync. Zero figures are shown as they
// are; there is no no-data state for KPIs.
func NewKPIAdapter(src DataSource, display KPIDisplay, opts ...Option) Adapter {
	return &cycle[*client.KPI]{
		config: newConfig(opts),
		name:   "kpi",
		fetch:  src.KPI,
		show: func(kpi *client.KPI) (Outcome, error) {
			if kpi == nil {
				return OutcomeNoData, nil
			}
			display.ShowKPI(*kpi)
			return OutcomeRendered, nil
		},
	}
}
