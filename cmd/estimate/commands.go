package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/pflag"

	"github.com/heartmarshall/hvac-estimate/internal/client"
	"github.com/heartmarshall/hvac-estimate/internal/docformat"
	"github.com/heartmarshall/hvac-estimate/internal/form"
)

// formFlags binds the editable form fields to command-line flags.
type formFlags struct {
	values map[form.Field]*string
}

var formFlagNames = map[form.Field]struct{ name, usage string }{
	form.FieldUnitNumber:  {"unit", "unit number"},
	form.FieldModelNumber: {"model", "model number"},
	form.FieldLocation:    {"location", "unit location"},
	form.FieldIssue:       {"issue", "issue description"},
	form.FieldLaborCost:   {"labor", "labor cost"},
	form.FieldPartsCost:   {"parts", "parts cost"},
	form.FieldServiceFee:  {"fee", "service fee"},
}

func addFormFlags(fs *pflag.FlagSet) *formFlags {
	ff := &formFlags{values: make(map[form.Field]*string, len(form.Fields))}
	for _, f := range form.Fields {
		fl := formFlagNames[f]
		ff.values[f] = fs.String(fl.name, "", fl.usage)
	}
	return ff
}

// draft runs every value through a form controller the way an editor would,
// blurring each field in order, then validates the whole form. Field errors
// are written to w.
func (ff *formFlags) draft(w io.Writer) (form.Draft, error) {
	c := form.NewController()
	for _, f := range form.Fields {
		if err := c.OnBlur(f, *ff.values[f]); err != nil {
			return form.Draft{}, err
		}
	}
	if c.ValidateAll() {
		return c.Draft(), nil
	}

	errs := c.Errors()
	fmt.Fprintln(w, "The form has errors:")
	for _, f := range form.Fields {
		if msg, ok := errs[f]; ok {
			fmt.Fprintf(w, "  --%s: %s\n", formFlagNames[f].name, msg)
		}
	}
	return form.Draft{}, usagef("form has %d invalid field(s)", len(errs))
}

func newFlagSet(name string, e *env) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func parseFlags(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return err
		}
		return usageError{msg: err.Error()}
	}
	return nil
}

func runDownload(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("download", e)
	ff := addFormFlags(fs)
	format := fs.StringP("format", "f", string(docformat.PDF), "document format: pdf or excel")
	out := fs.StringP("out", "o", ".", "directory to write the file into")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	f, err := docformat.Parse(*format)
	if err != nil {
		return usagef("invalid --format %q: use pdf or excel", *format)
	}

	d, err := ff.draft(e.stderr)
	if err != nil {
		return err
	}

	doc, err := e.api.DownloadEstimate(ctx, f, d)
	if err != nil {
		return err
	}
	path, err := doc.SaveTo(*out)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "%s estimate saved to %s (total %s)\n", f.Label(), path, docformat.Currency(d.TotalCost))
	return nil
}

func runSave(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("save", e)
	ff := addFormFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	d, err := ff.draft(e.stderr)
	if err != nil {
		return err
	}

	id, err := e.api.SaveEstimate(ctx, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "Estimate %d saved (total %s)\n", id, docformat.Currency(d.TotalCost))
	return nil
}

func runList(ctx context.Context, e *env, args []string) error {
	fs := newFlagSet("list", e)
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 0, "page size (server default when 0)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	p, err := e.api.ListEstimates(ctx, *page, *limit)
	if err != nil {
		return err
	}

	printEstimates(e.stdout, p.Data)
	fmt.Fprintf(e.stdout, "\npage %d of %d (%d total)\n", p.Page, p.TotalPages, p.Total)
	return nil
}

func runGet(ctx context.Context, e *env, args []string) error {
	id, err := idArg("get", args)
	if err != nil {
		return err
	}

	est, err := e.api.GetEstimate(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("estimate %d not found", id)
		}
		return err
	}
	return printJSON(e.stdout, est)
}

func runSearch(ctx context.Context, e *env, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return usagef("search: query is required")
	}

	found, err := e.api.SearchEstimates(ctx, query)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		fmt.Fprintf(e.stdout, "no estimates match %q\n", query)
		return nil
	}
	printEstimates(e.stdout, found)
	return nil
}

func runDelete(ctx context.Context, e *env, args []string) error {
	id, err := idArg("delete", args)
	if err != nil {
		return err
	}

	if err := e.api.DeleteEstimate(ctx, id); err != nil {
		if client.IsNotFound(err) {
			return fmt.Errorf("estimate %d not found", id)
		}
		return err
	}
	fmt.Fprintf(e.stdout, "Estimate %d deleted\n", id)
	return nil
}

func runStats(ctx context.Context, e *env, _ []string) error {
	s, err := e.api.Stats(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Total estimates:\t%d\n", s.TotalEstimates)
	fmt.Fprintf(tw, "Total revenue:\t%s\n", docformat.Currency(s.TotalRevenue))
	fmt.Fprintf(tw, "Average estimate:\t%s\n", docformat.Currency(s.AvgEstimate))
	fmt.Fprintf(tw, "Recent estimates:\t%d\n", s.RecentEstimates)
	return tw.Flush()
}

func runHealth(ctx context.Context, e *env, _ []string) error {
	h, err := e.api.Health(ctx)
	if err != nil {
		return err
	}
	return printJSON(e.stdout, h)
}

func idArg(cmd string, args []string) (int64, error) {
	if len(args) != 1 {
		return 0, usagef("%s: expected exactly one estimate id", cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id < 1 {
		return 0, usagef("%s: invalid estimate id %q", cmd, args[0])
	}
	return id, nil
}

func printEstimates(w io.Writer, list []client.Estimate) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUNIT\tMODEL\tLOCATION\tTOTAL\tCREATED")
	for _, est := range list {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			est.ID, est.UnitNumber, est.ModelNumber, est.Location,
			docformat.Currency(est.TotalCost), est.CreatedAt.Local().Format(time.DateTime))
	}
	_ = tw.Flush()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
