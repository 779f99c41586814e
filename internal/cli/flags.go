package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/prodtime/internal/domain"
	"github.com/alexanderramin/prodtime/internal/importer"
	"github.com/spf13/pflag"
)

// rangeFlags holds the --from/--to pair shared by reporting commands.
type rangeFlags struct {
	from string
	to   string
}

func (r *rangeFlags) register(fs *pflag.FlagSet, what string) {
	fs.StringVar(&r.from, "from", "", "Start of the "+what+" (YYYY-MM-DD)")
	fs.StringVar(&r.to, "to", "", "End of the "+what+", inclusive (YYYY-MM-DD)")
}

// dates parses both bounds as calendar dates. Missing bounds default to the
// last seven days ending today.
func (r *rangeFlags) dates(app *App) (time.Time, time.Time, error) {
	today := domain.StartOfDay(app.now().In(app.loc()))
	from, to := today.AddDate(0, 0, -6), today
	var err error
	if r.from != "" {
		if from, err = parseDateFlag("from", r.from, app.loc()); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if r.to != "" {
		if to, err = parseDateFlag("to", r.to, app.loc()); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	return from, to, nil
}

// optional parses each bound present; absent bounds stay nil.
func (r *rangeFlags) optional(app *App) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if r.from != "" {
		t, err := parseDateFlag("from", r.from, app.loc())
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if r.to != "" {
		t, err := parseDateFlag("to", r.to, app.loc())
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}

func parseDateFlag(name, value string, loc *time.Location) (time.Time, error) {
	t, err := importer.ParseDate(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return t, nil
}

func parseInstantFlag(name, value string, loc *time.Location) (time.Time, error) {
	t, err := importer.ParseInstant(value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	return t, nil
}

// resolveTaskIDs maps task IDs or codes to task IDs.
func resolveTaskIDs(ctx context.Context, app *App, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		t, err := app.Tasks.Resolve(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", ref, err)
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}
