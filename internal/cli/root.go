package cli

import (
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands,
// plus the configured defaults commands fall back to.
type App struct {
	Tasks    service.TaskService
	Sessions service.SessionService
	Import   service.ImportService
	Gaps     service.GapService
	Costs    service.CostService
	Trend    service.TrendService

	Schedule      domain.WorkSchedule
	MinGapMinutes int
	// Location is used to interpret dates and zone-less timestamps on the
	// command line. Nil means time.Local.
	Location *time.Location
	// Now overrides the clock for relative output; nil means time.Now.
	Now func() time.Time
}

func (a *App) loc() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// NewRootCmd creates the top-level "prodtime" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "prodtime",
		Short:         "Production time accounting: gaps, unit costs and weekly trends",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newTaskCmd(app),
		newSessionCmd(app),
		newImportCmd(app),
		newGapsCmd(app),
		newCostCmd(app),
		newTrendCmd(app),
	)

	return root
}
