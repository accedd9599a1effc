package service

import (
	"github.com/penamorrosmaaaa/dashtva-sub001/internal/schema"
)

// Sheet sources.
const (
	SourceMain     = "main"
	SourceVertical = "vertical"
)

// Dashboard names.
const (
	DashboardGeneral  = "general"
	DashboardLocal    = "local"
	DashboardImage    = "image"
	DashboardVertical = "vertical"
	DashboardMap      = "map"
	DashboardTrend    = "trend"
)

// AllCombined aggregates every outlet of a dashboard with equal weight.
const AllCombined = "AllCombined"

// Dashboard configures the engine: which sheet, which outlets, and how their
// columns are addressed. StatsStrategy, when set, addresses the per-row
// samples used for correlation.
type Dashboard struct {
	Name          string
	Source        string
	Outlets       []schema.Outlet
	Strategy      schema.Strategy
	StatsStrategy schema.Strategy
}

func (d Dashboard) statsStrategy() schema.Strategy {
	if d.StatsStrategy != nil {
		return d.StatsStrategy
	}
	return d.Strategy
}

func mainOutlets() []schema.Outlet {
	return append(schema.Group(schema.GroupCompetition), schema.Group(schema.GroupAzteca)...)
}

// Dashboards returns every configured dashboard by name.
func Dashboards() map[string]Dashboard {
	main := mainOutlets()
	return map[string]Dashboard{
		DashboardGeneral: {
			Name:     DashboardGeneral,
			Source:   SourceMain,
			Outlets:  main,
			Strategy: schema.SuffixStrategy{},
		},
		DashboardTrend: {
			Name:     DashboardTrend,
			Source:   SourceMain,
			Outlets:  main,
			Strategy: schema.NewBlockStrategy(main, schema.AnchorStart),
		},
		DashboardLocal: {
			Name:     DashboardLocal,
			Source:   SourceMain,
			Outlets:  schema.Group(schema.GroupLocal),
			Strategy: schema.LocalKeyTable(),
		},
		DashboardImage: {
			Name:     DashboardImage,
			Source:   SourceMain,
			Outlets:  schema.Group(schema.GroupImage),
			Strategy: schema.ImageKeyTable(),
		},
		DashboardVertical: {
			Name:          DashboardVertical,
			Source:        SourceVertical,
			Outlets:       schema.Vertical,
			Strategy:      schema.NewBlockStrategy(main, schema.AnchorStart),
			StatsStrategy: schema.VerticalKeyTable(),
		},
		DashboardMap: {
			Name:     DashboardMap,
			Source:   SourceMain,
			Outlets:  schema.Group(schema.GroupAzteca),
			Strategy: schema.NewBlockStrategy(schema.Group(schema.GroupAzteca), schema.AnchorEnd),
		},
	}
}
