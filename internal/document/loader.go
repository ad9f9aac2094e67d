package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/nyantoasty/stitchgrid/internal/calc"
	"github.com/nyantoasty/stitchgrid/internal/config"
	"github.com/nyantoasty/stitchgrid/internal/ctxlog"
	"github.com/nyantoasty/stitchgrid/internal/fsutil"
	"github.com/nyantoasty/stitchgrid/internal/model"
	"gopkg.in/yaml.v3"
)

var _ config.Loader = (*Loader)(nil)

// ErrInvalidDocument wraps every schema problem found in a document.
var ErrInvalidDocument = errors.New("document: invalid pattern document")

// Loader reads JSON and YAML pattern documents. One document holds one
// pattern, so exactly one file must be found under the given paths.
type Loader struct {
	format config.Format
}

// NewLoader creates a loader for format, which must be FormatJSON or FormatYAML.
func NewLoader(format config.Format) *Loader {
	if format != config.FormatJSON && format != config.FormatYAML {
		panic(fmt.Sprintf("document: unsupported format %q", format))
	}
	return &Loader{format: format}
}

// Load reads the single document under paths.
func (l *Loader) Load(ctx context.Context, paths ...string) (*model.Pattern, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Document loader started.", "format", l.format, "path_count", len(paths))

	files, err := fsutil.FindAll(paths, l.format.Extensions()...)
	if err != nil {
		return nil, err
	}
	if len(files) > 1 {
		return nil, fmt.Errorf("%w: found %d %s documents, a pattern is one document", ErrInvalidDocument, len(files), l.format)
	}

	f, err := os.Open(files[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := Decode(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", files[0], err)
	}
	p.Source = model.NewFSInfo(string(l.format), files[0])
	return p, nil
}

// Decode reads one document from r.
func Decode(ctx context.Context, r io.Reader) (*model.Pattern, error) {
	logger := ctxlog.FromContext(ctx)

	var doc file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(false)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	p := model.NewPattern(doc.Metadata.ID)
	if p.ID == "" {
		p.ID = uuid.NewString()
		logger.Debug("Document has no id, generated one.", "pattern_id", p.ID)
	}
	translateMetadata(p, doc.Metadata)

	for code, g := range doc.Glossary {
		if g.StitchesUsed < 0 || g.StitchesCreated < 0 {
			return nil, fmt.Errorf("%w: glossary code %q has a negative stitch cost", ErrInvalidDocument, code)
		}
		p.Glossary[code] = model.GlossaryEntry{
			Name:        g.Name,
			Description: g.Description,
			Consumed:    g.StitchesUsed,
			Produced:    g.StitchesCreated,
			Category:    g.Category,
			Symbol:      g.Symbol,
		}
	}

	defs, err := translateCalculations(doc.Calculations)
	if err != nil {
		return nil, err
	}
	p.Calculations = defs

	for i := range doc.Steps {
		s := &doc.Steps[i]
		if isCastOnStep(s) {
			applyCastOnStep(p, s)
			continue
		}
		tpl, err := translateStep(s)
		if err != nil {
			return nil, fmt.Errorf("%w: step at line %d: %v", ErrInvalidDocument, s.line, err)
		}
		p.Templates = append(p.Templates, tpl)
	}

	logger.Debug("Document decoded.",
		"pattern_id", p.ID,
		"templates", len(p.Templates),
		"glossary", len(p.Glossary),
		"calculations", len(p.Calculations),
	)
	return p, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(ctx context.Context, b []byte) (*model.Pattern, error) {
	return Decode(ctx, bytes.NewReader(b))
}

func translateMetadata(p *model.Pattern, m metadata) {
	p.Metadata.Name = m.Name
	p.Metadata.Author = m.Author
	p.Metadata.Craft = m.Craft
	p.Metadata.MaxRows = m.MaxSteps
	p.Metadata.CastOn = m.CastOn
	for k, v := range m.Extra {
		p.Metadata.Extra[k] = fmt.Sprint(v)
	}
}

func translateCalculations(calcs map[string]calculation) ([]*model.CalculationDef, error) {
	names := make([]string, 0, len(calcs))
	for name := range calcs {
		names = append(names, name)
	}
	sort.Strings(names)

	defs := make([]*model.CalculationDef, 0, len(names))
	for _, name := range names {
		c := calcs[name]
		expr, err := calc.ParseExpression(c.Value, "calculations."+name)
		if err != nil {
			return nil, fmt.Errorf("%w: calculation %q: %v", ErrInvalidDocument, name, err)
		}
		defs = append(defs, &model.CalculationDef{
			Name:        name,
			Description: c.Description,
			Expression:  expr,
			DefRange:    expr.Range(),
		})
	}
	return defs, nil
}

func isCastOnStep(s *step) bool {
	return s.Step != nil && *s.Step == 0 && s.Type == "specialInstruction"
}

// applyCastOnStep keeps the instruction text and takes its count as the
// cast-on unless the metadata already gives one.
func applyCastOnStep(p *model.Pattern, s *step) {
	if s.Description != "" {
		p.Metadata.Extra["castOnInstruction"] = s.Description
	}
	if p.Metadata.CastOn != nil {
		return
	}
	if s.EndingStitchCount != nil {
		p.Metadata.CastOn = model.IntPtr(*s.EndingStitchCount)
	} else if s.StartingStitchCount != nil {
		p.Metadata.CastOn = model.IntPtr(*s.StartingStitchCount)
	}
}

func translateStep(s *step) (model.StepTemplate, error) {
	kind, err := model.ParseTemplateKind(s.Type)
	if err != nil {
		return nil, err
	}
	meta := model.TemplateMeta{
		Side:        s.Side,
		Section:     s.Section,
		Description: s.Description,
		Kind:        kind,
	}
	if meta.Description == "" {
		meta.Description = s.Instruction
	}

	fragments, err := translateChunks(s.Chunks)
	if err != nil {
		return nil, err
	}

	var tpl model.StepTemplate
	switch {
	case s.Step != nil && s.Range != nil:
		return nil, fmt.Errorf("give either step or range, not both")
	case s.Step != nil:
		if s.NetChange != nil {
			return nil, fmt.Errorf("netChange only applies to ranges; use endingStitchCount")
		}
		if s.Instructions != nil && len(s.Chunks) > 0 {
			return nil, fmt.Errorf("give either instructions or chunks, not both")
		}
		tpl = &model.ExactTemplate{
			TemplateMeta:  meta,
			Row:           *s.Step,
			StartingCount: s.StartingStitchCount,
			EndingCount:   s.EndingStitchCount,
			Fragments:     fragments,
			Expanded:      s.Instructions,
		}
	case s.Range != nil:
		if len(s.Range) != 2 {
			return nil, fmt.Errorf("range must be [from, to], got %d values", len(s.Range))
		}
		if s.StartingStitchCount != nil || s.EndingStitchCount != nil || s.Instructions != nil {
			return nil, fmt.Errorf("ranges take netChange instead of stitch counts or instructions")
		}
		r := &model.RangedTemplate{
			TemplateMeta: meta,
			From:         s.Range[0],
			To:           s.Range[1],
			Fragments:    fragments,
		}
		if s.NetChange != nil {
			r.NetChange = model.IntPtr(int(*s.NetChange))
		}
		tpl = r
	default:
		return nil, fmt.Errorf("missing step or range")
	}

	if err := model.ValidateTemplate(tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func translateChunks(chunks []chunk) ([]model.Fragment, error) {
	fragments := make([]model.Fragment, 0, len(chunks))
	for i, c := range chunks {
		typ, err := model.ParseFragmentType(c.Type)
		if err != nil {
			return nil, err
		}
		id := c.ID
		if id == "" {
			id = model.DefaultFragmentID(i)
		}
		times := 0
		if typ == model.FragmentRepeat {
			if c.Times == nil {
				return nil, fmt.Errorf("repeat chunk %q needs times", id)
			}
			times = *c.Times
		}

		stitches := make([]model.DynamicStitch, 0, len(c.Stitches))
		for _, s := range c.Stitches {
			stitches = append(stitches, model.DynamicStitch{Token: s.Code, Count: s.Count.N, Calculation: s.Count.Calculation})
		}
		f, err := model.BuildFragment(typ, id, times, stitches)
		if err != nil {
			return nil, err
		}
		fragments = append(fragments, f)
	}
	return fragments, nil
}
