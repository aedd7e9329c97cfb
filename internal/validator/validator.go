package validator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"schema-validator/internal/diff"
	"schema-validator/internal/schema"
)

// Catalog is one side of the comparison. *schema.Extractor implements it.
type Catalog interface {
	Label() string
	Schema() string
	ListObjects(ctx context.Context, kind schema.Kind) ([]string, error)
	Extract(ctx context.Context, kind schema.Kind, name string) (schema.RawObject, error)
}

// ArtifactWriter persists per-category results. *report.RunDir implements it.
type ArtifactWriter interface {
	WriteSchemaSet(kind schema.Kind, side schema.Side, set *schema.SchemaSet) (string, error)
	WriteDifferences(kind schema.Kind, res *diff.Result) (string, error)
}

// ProgressFunc is called before a side of a category is extracted and returns
// a func that is called once per processed object.
type ProgressFunc func(kind schema.Kind, side schema.Side, label string, total int) func()

// Summary counts one category.
type Summary struct {
	Kind            schema.Kind
	SourceProcessed int // names enumerated and attempted
	TargetProcessed int
	SourceObjects   int // records kept after dropping empty and failed ones
	TargetObjects   int
	Differences     int
}

type Outcome struct {
	Differences *diff.Result // cumulative across categories
	Errors      *schema.ErrorLog
	Summaries   []Summary
}

// Runner compares categories one at a time, source before target.
type Runner struct {
	Source     Catalog
	Target     Catalog
	Categories []schema.Kind
	Lookup     Lookup
	Artifacts  ArtifactWriter // optional
	Progress   ProgressFunc   // optional
	Logger     *zap.SugaredLogger
}

// Run returns an error only for enumeration, artifact or cancellation failures.
// Per-object failures end up in Outcome.Errors. The partial outcome is returned
// alongside any error.
func (r *Runner) Run(ctx context.Context) (*Outcome, error) {
	log := r.Logger
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	out := &Outcome{Differences: diff.NewResult(), Errors: schema.NewErrorLog()}

	for _, kind := range r.Categories {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		log.Infof("Starting comparison for %s...", kind.Category())

		srcNames, tgtNames, err := r.objectNames(ctx, log, kind)
		if err != nil {
			return out, err
		}

		src, err := r.collect(ctx, log, r.Source, schema.Source, kind, srcNames, out.Errors)
		if err != nil {
			return out, err
		}
		tgt, err := r.collect(ctx, log, r.Target, schema.Target, kind, tgtNames, out.Errors)
		if err != nil {
			return out, err
		}

		// failed objects are reported in the error log only
		res := diff.Compare(src.set, tgt.set)
		for name := range src.failed {
			res.Delete(name)
		}
		for name := range tgt.failed {
			res.Delete(name)
		}
		if err := r.persist(kind, src.dump, tgt.dump, res); err != nil {
			return out, err
		}
		out.Differences.Merge(res)

		sum := Summary{
			Kind:            kind,
			SourceProcessed: len(srcNames),
			TargetProcessed: len(tgtNames),
			SourceObjects:   src.set.Len(),
			TargetObjects:   tgt.set.Len(),
			Differences:     res.Len(),
		}
		out.Summaries = append(out.Summaries, sum)
		log.Infof("Completed comparison for %s. Total processed: %d %s (Source), %d %s (Target), %d with differences",
			kind.Category(), sum.SourceProcessed, r.Source.Label(), sum.TargetProcessed, r.Target.Label(), sum.Differences)
	}
	return out, nil
}

// objectNames enumerates both sides, or reads the lookup file when one is
// enabled and exists. A missing lookup file falls back to live enumeration.
func (r *Runner) objectNames(ctx context.Context, log *zap.SugaredLogger, kind schema.Kind) ([]string, []string, error) {
	if path := r.Lookup.Path(kind); path != "" {
		names, err := ReadLookupFile(path)
		switch {
		case err == nil:
			log.Infof("Using lookup file %s (%d %s)", path, len(names), kind.Category())
			return names, names, nil
		case errors.Is(err, fs.ErrNotExist):
			log.Warnf("Lookup file %s not found, enumerating %s from the databases", path, kind.Category())
		default:
			return nil, nil, err
		}
	}

	src, err := r.Source.ListObjects(ctx, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", schema.Source, err)
	}
	tgt, err := r.Target.ListObjects(ctx, kind)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", schema.Target, err)
	}
	return src, tgt, nil
}

// collected is one side of one category.
type collected struct {
	set    *schema.SchemaSet // compared records
	dump   *schema.SchemaSet // persisted records, failed objects as empty ones
	failed map[string]bool
}

func (r *Runner) collect(ctx context.Context, log *zap.SugaredLogger, cat Catalog, side schema.Side, kind schema.Kind, names []string, errs *schema.ErrorLog) (*collected, error) {
	c := &collected{set: schema.NewSchemaSet(), dump: schema.NewSchemaSet(), failed: make(map[string]bool)}
	tick := func() {}
	if r.Progress != nil {
		tick = r.Progress(kind, side, cat.Label(), len(names))
	}

	sideName := strings.ToLower(side.String())
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return c, err
		}
		log.Infof("\tProcessing %s (%s) %s: %s", cat.Label(), sideName, kind.Singular(), name)

		raw, err := cat.Extract(ctx, kind, name)
		tick()
		if err != nil {
			obj := schema.ObjectDescriptor{Kind: kind, Schema: cat.Schema(), Name: name}
			errs.Record(side, obj, err)
			log.Debugf("failed to extract %s from %s: %v", obj, cat.Label(), err)
			c.failed[name] = true
			c.dump.Add(name, schema.SchemaRecord{})
			continue
		}
		if rec := schema.Normalize(raw); !rec.IsEmpty() {
			c.set.Add(name, rec)
			c.dump.Add(name, rec)
		}
	}
	return c, nil
}

func (r *Runner) persist(kind schema.Kind, src, tgt *schema.SchemaSet, res *diff.Result) error {
	if r.Artifacts == nil {
		return nil
	}
	if _, err := r.Artifacts.WriteSchemaSet(kind, schema.Source, src); err != nil {
		return err
	}
	if _, err := r.Artifacts.WriteSchemaSet(kind, schema.Target, tgt); err != nil {
		return err
	}
	_, err := r.Artifacts.WriteDifferences(kind, res)
	return err
}

// WriteErrors writes failures grouped by side, one object per line.
func WriteErrors(log *zap.SugaredLogger, errs *schema.ErrorLog, labels map[schema.Side]string) {
	for _, side := range []schema.Side{schema.Source, schema.Target} {
		failures := errs.BySide(side)
		if len(failures) == 0 {
			continue
		}
		header := side.String()
		if l := labels[side]; l != "" {
			header = fmt.Sprintf("%s (%s)", header, l)
		}
		log.Infof("Error retrieving %s objects:", header)
		for _, f := range failures {
			log.Info(f.String())
		}
	}
}
