package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nerrad567/homesim/internal/component"
	"github.com/nerrad567/homesim/internal/eventlog"
	"github.com/nerrad567/homesim/migrations"
)

// errUsage marks argument errors.
var errUsage = errors.New("usage")

// command is one CLI verb.
type command struct {
	name    string
	args    string
	summary string
	minArgs int
	maxArgs int // -1 for unbounded
	run     func(ctx context.Context, a *app, args []string, w io.Writer) error
}

func (c command) checkArgs(args []string) error {
	if len(args) < c.minArgs || (c.maxArgs >= 0 && len(args) > c.maxArgs) {
		return fmt.Errorf("%w: homesim %s %s", errUsage, c.name, c.args)
	}
	return nil
}

var commands = []command{
	{"create", "<name> [type] [room]", "create a component (type defaults to generic)", 1, 3, runCreate},
	{"remove", "<id>", "remove a component", 1, 1, runRemove},
	{"get", "<id>", "show one component", 1, 1, runGet},
	{"exec", "<id> <action> [key=value ...]", "execute an action on a component", 2, -1, runExec},
	{"list", "[room | --type <type>]", "list components, optionally by room or type", 0, 2, runList},
	{"rooms", "", "list rooms in use", 0, 0, runRooms},
	{"actions", "", "list every action key", 0, 0, runActions},
	{"stats", "", "show registry statistics", 0, 0, runStats},
	{"log", "[limit]", "show recent events, newest first", 0, 1, runLog},
	{"reset", "event-log|factory", "clear the event log or all data", 1, 1, runReset},
	{"metrics", "", "print metrics in Prometheus text format", 0, 0, runMetrics},
	{"health", "", "check storage and telemetry connections", 0, 0, runHealth},
	{"migrations", "", "show applied and pending schema migrations", 0, 0, runMigrations},
	{"migrate-down", "", "roll back the latest schema migration", 0, 0, runMigrateDown},
	{"repair", "", "rewrite stored records from the loaded home", 0, 0, runRepair},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func writeUsage(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Usage: homesim <command> [arguments]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "  %-10s %-32s %s\n", c.name, c.args, c.summary)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeResult prints res and turns a failed result into an error so the
// process exits non-zero.
func writeResult(w io.Writer, res component.Result) error {
	if err := writeJSON(w, res); err != nil {
		return err
	}
	if !res.Success {
		return res.Err
	}
	return nil
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid component id %q", s)
	}
	return id, nil
}

// parseParams turns key=value pairs into action parameters. Values stay
// strings; numeric parsing happens in the component.
func parseParams(pairs []string) (component.Params, error) {
	params := make(component.Params, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", pair)
		}
		params[key] = value
	}
	return params, nil
}

func argOr(args []string, i int, fallback string) string {
	if i < len(args) {
		return args[i]
	}
	return fallback
}

func runCreate(ctx context.Context, a *app, args []string, w io.Writer) error {
	info, err := a.svc.CreateComponent(ctx, args[0], argOr(args, 1, ""), argOr(args, 2, ""))
	if err != nil {
		return err
	}
	return writeJSON(w, info)
}

func runRemove(ctx context.Context, a *app, args []string, w io.Writer) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return writeResult(w, a.svc.RemoveComponent(ctx, id))
}

func runGet(_ context.Context, a *app, args []string, w io.Writer) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	c, ok := a.svc.GetComponent(id)
	if !ok {
		return writeResult(w, component.Failed(component.NotFoundError()))
	}
	return writeJSON(w, c.Info())
}

func runExec(ctx context.Context, a *app, args []string, w io.Writer) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	params, err := parseParams(args[2:])
	if err != nil {
		return err
	}
	return writeResult(w, a.svc.ExecuteAction(ctx, id, args[1], params))
}

func runList(_ context.Context, a *app, args []string, w io.Writer) error {
	switch {
	case len(args) == 2 && args[0] == "--type":
		return writeJSON(w, a.svc.ListByType(args[1]))
	case len(args) == 1 && !strings.HasPrefix(args[0], "-"):
		return writeJSON(w, a.svc.ListByRoom(args[0]))
	case len(args) == 0:
		return writeJSON(w, a.svc.ListComponents())
	}
	return fmt.Errorf("%w: homesim list [room | --type <type>]", errUsage)
}

func runRooms(_ context.Context, a *app, _ []string, w io.Writer) error {
	return writeJSON(w, a.svc.Rooms())
}

func runActions(_ context.Context, _ *app, _ []string, w io.Writer) error {
	return writeJSON(w, component.ActionKeys())
}

func runStats(_ context.Context, a *app, _ []string, w io.Writer) error {
	return writeJSON(w, a.svc.Stats())
}

func runLog(_ context.Context, a *app, args []string, w io.Writer) error {
	limit := eventlog.DefaultLimit
	if len(args) == 1 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid limit %q", args[0])
		}
		limit = n
	}
	return writeJSON(w, a.svc.EventLog(limit))
}

func runReset(ctx context.Context, a *app, args []string, w io.Writer) error {
	return writeResult(w, a.svc.Reset(ctx, args[0]))
}

func runMetrics(_ context.Context, a *app, _ []string, w io.Writer) error {
	if a.metrics == nil {
		return errors.New("metrics are disabled")
	}
	return a.metrics.WriteText(w)
}

func runHealth(ctx context.Context, a *app, _ []string, w io.Writer) error {
	return writeJSON(w, a.healthCheck(ctx))
}

// migrationStatus is the JSON shape of the migrations command.
type migrationStatus struct {
	Applied []string `json:"applied"`
	Pending []string `json:"pending"`
}

func runMigrations(ctx context.Context, a *app, _ []string, w io.Writer) error {
	if a.db == nil {
		return errors.New("migrations apply to the sqlite backend only")
	}
	applied, pending, err := a.db.MigrationStatus(ctx, migrations.FS, migrations.Dir)
	if err != nil {
		return err
	}

	out := migrationStatus{Applied: []string{}, Pending: []string{}}
	for _, r := range applied {
		out.Applied = append(out.Applied, r.Version)
	}
	for _, m := range pending {
		out.Pending = append(out.Pending, m.Version+"_"+m.Name)
	}
	return writeJSON(w, out)
}

func runMigrateDown(ctx context.Context, a *app, _ []string, w io.Writer) error {
	if a.db == nil {
		return errors.New("migrations apply to the sqlite backend only")
	}
	if err := a.db.MigrateDown(ctx, migrations.FS, migrations.Dir); err != nil {
		return err
	}
	return runMigrations(ctx, a, nil, w)
}

// runRepair writes the loaded home back to the store. Records that were
// skipped or normalised on load are replaced by their cleaned form.
func runRepair(ctx context.Context, a *app, _ []string, w io.Writer) error {
	if err := a.svc.Save(ctx); err != nil {
		return fmt.Errorf("saving home: %w", err)
	}
	return writeJSON(w, a.svc.Stats())
}
