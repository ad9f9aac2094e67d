package hcl

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/nyantoasty/stitchgrid/internal/config"
	"github.com/nyantoasty/stitchgrid/internal/ctxlog"
	"github.com/nyantoasty/stitchgrid/internal/fsutil"
	"github.com/nyantoasty/stitchgrid/internal/model"
)

var _ config.Loader = (*Loader)(nil)

// Loader is the HCL-specific implementation of the config.Loader interface.
// It keeps its parser so callers can render diagnostics against the source.
type Loader struct {
	parser *hclparse.Parser
}

// NewLoader creates a new HCL pattern loader.
func NewLoader() *Loader {
	return &Loader{parser: hclparse.NewParser()}
}

// Files returns every file the loader has parsed, keyed by path.
func (l *Loader) Files() map[string]*hcl.File {
	return l.parser.Files()
}

// loadState accumulates one pattern across files.
type loadState struct {
	pattern  *model.Pattern
	header   *hcl.Block
	glossary map[string]hcl.Range
}

// Load parses every .hcl file under paths and merges them into one pattern.
func (l *Loader) Load(ctx context.Context, paths ...string) (*model.Pattern, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindAll(paths, config.FormatHCL.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	st := &loadState{
		pattern:  model.NewPattern(""),
		glossary: make(map[string]hcl.Range),
	}
	var diags hcl.Diagnostics
	for _, file := range files {
		hclFile, parseDiags := l.parser.ParseHCLFile(file)
		diags = append(diags, parseDiags...)
		if parseDiags.HasErrors() {
			continue
		}
		content, contentDiags := hclFile.Body.Content(rootSchema)
		diags = append(diags, contentDiags...)
		if contentDiags.HasErrors() {
			continue
		}
		diags = append(diags, l.decodeBlocks(ctx, st, content.Blocks)...)
	}

	for _, d := range diags {
		if d.Severity == hcl.DiagWarning {
			logger.Warn("HCL warning.", "summary", d.Summary, "detail", d.Detail)
		}
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to load pattern from %s: %w", strings.Join(paths, ", "), diags)
	}

	p := st.pattern
	if p.ID == "" {
		p.ID = uuid.NewString()
		logger.Debug("Pattern has no id, generated one.", "pattern_id", p.ID)
	}
	p.Source = model.NewFSInfo(string(config.FormatHCL), files...)

	logger.Debug("HCL loading complete.",
		"pattern_id", p.ID,
		"templates", len(p.Templates),
		"glossary", len(p.Glossary),
		"calculations", len(p.Calculations),
	)
	return p, nil
}

// decodeBlocks translates the blocks of one file into the pattern, keeping
// document order for templates.
func (l *Loader) decodeBlocks(ctx context.Context, st *loadState, blocks hcl.Blocks) hcl.Diagnostics {
	header, diags := findUniqueBlock(blocks, "pattern")
	if header != nil {
		if st.header != nil {
			diags = append(diags, errorDiag("Duplicate \"pattern\" block",
				"Only one \"pattern\" block is allowed, the first one is at "+st.header.DefRange.String()+".", header.DefRange))
		} else {
			st.header = header
			diags = append(diags, l.decodeHeader(st.pattern, header)...)
		}
	}

	for _, block := range blocks {
		switch block.Type {
		case "pattern":
			// handled above
		case "glossary":
			diags = append(diags, l.decodeGlossary(st, block)...)
		case "calculation":
			var cb calculationBlock
			blockDiags := gohcl.DecodeBody(block.Body, nil, &cb)
			diags = append(diags, blockDiags...)
			if blockDiags.HasErrors() {
				continue
			}
			st.pattern.Calculations = append(st.pattern.Calculations, &model.CalculationDef{
				Name:        block.Labels[0],
				Description: cb.Description,
				Expression:  cb.Value,
				DefRange:    block.DefRange,
			})
		case "row":
			tpl, blockDiags := l.decodeRow(block)
			diags = append(diags, blockDiags...)
			if tpl != nil {
				st.pattern.Templates = append(st.pattern.Templates, tpl)
			}
		case "rows":
			tpl, blockDiags := l.decodeRows(ctx, block)
			diags = append(diags, blockDiags...)
			if tpl != nil {
				st.pattern.Templates = append(st.pattern.Templates, tpl)
			}
		default:
			panic(fmt.Sprintf("hcl: block type %q is in the schema but not decoded", block.Type))
		}
	}
	return diags
}

func (l *Loader) decodeHeader(p *model.Pattern, block *hcl.Block) hcl.Diagnostics {
	var pb patternBlock
	diags := gohcl.DecodeBody(block.Body, nil, &pb)
	if diags.HasErrors() {
		return diags
	}
	if pb.CastOn != nil && *pb.CastOn < 0 {
		diags = append(diags, errorDiag("Invalid cast_on", fmt.Sprintf("The cast-on count must not be negative, got %d.", *pb.CastOn), block.DefRange))
	}
	if pb.Rows < 0 {
		diags = append(diags, errorDiag("Invalid rows", fmt.Sprintf("The row total must not be negative, got %d.", pb.Rows), block.DefRange))
	}

	p.ID = block.Labels[0]
	p.Metadata.Name = pb.Name
	p.Metadata.Author = pb.Author
	p.Metadata.Craft = pb.Craft
	p.Metadata.CastOn = pb.CastOn
	p.Metadata.MaxRows = pb.Rows
	for k, v := range pb.Extra {
		p.Metadata.Extra[k] = v
	}
	return diags
}

func (l *Loader) decodeGlossary(st *loadState, block *hcl.Block) hcl.Diagnostics {
	code := block.Labels[0]
	if first, dup := st.glossary[code]; dup {
		return hcl.Diagnostics{errorDiag("Duplicate glossary code",
			fmt.Sprintf("Stitch code %q is already defined at %s.", code, first.String()), block.DefRange)}
	}

	var gb glossaryBlock
	diags := gohcl.DecodeBody(block.Body, nil, &gb)
	if diags.HasErrors() {
		return diags
	}
	if gb.Consumed < 0 || gb.Produced < 0 {
		return append(diags, errorDiag("Invalid stitch cost",
			fmt.Sprintf("Stitch code %q must not consume or produce a negative number of stitches.", code), block.DefRange))
	}

	st.glossary[code] = block.DefRange
	st.pattern.Glossary[code] = model.GlossaryEntry{
		Name:        gb.Name,
		Description: gb.Description,
		Consumed:    gb.Consumed,
		Produced:    gb.Produced,
		Category:    gb.Category,
		Symbol:      gb.Symbol,
	}
	return diags
}

func (l *Loader) decodeRow(block *hcl.Block) (model.StepTemplate, hcl.Diagnostics) {
	var rb rowBlock
	diags := gohcl.DecodeBody(block.Body, nil, &rb)
	if diags.HasErrors() {
		return nil, diags
	}
	kind, err := model.ParseTemplateKind(rb.Kind)
	if err != nil {
		return nil, append(diags, errorDiag("Invalid row kind", err.Error(), block.DefRange))
	}
	fragments, chunkDiags := decodeChunks(rb.Chunks)
	diags = append(diags, chunkDiags...)
	if chunkDiags.HasErrors() {
		return nil, diags
	}

	tpl := &model.ExactTemplate{
		TemplateMeta: model.TemplateMeta{
			Side:        rb.Side,
			Section:     rb.Section,
			Description: rb.Description,
			Kind:        kind,
		},
		Row:           rb.Number,
		StartingCount: rb.StartingCount,
		EndingCount:   rb.EndingCount,
		Fragments:     fragments,
		DefRange:      block.DefRange,
	}
	if err := model.ValidateTemplate(tpl); err != nil {
		return nil, append(diags, errorDiag("Invalid row", err.Error(), block.DefRange))
	}
	return tpl, diags
}

func (l *Loader) decodeRows(ctx context.Context, block *hcl.Block) (model.StepTemplate, hcl.Diagnostics) {
	var rb rowsBlock
	diags := gohcl.DecodeBody(block.Body, nil, &rb)
	if diags.HasErrors() {
		return nil, diags
	}
	kind, err := model.ParseTemplateKind(rb.Kind)
	if err != nil {
		return nil, append(diags, errorDiag("Invalid row kind", err.Error(), block.DefRange))
	}

	var netChange *int
	if isExprDefined(ctx, rb.NetChange, "net_change") {
		var ncDiags hcl.Diagnostics
		netChange, ncDiags = decodeNetChange(rb.NetChange)
		diags = append(diags, ncDiags...)
	}
	fragments, chunkDiags := decodeChunks(rb.Chunks)
	diags = append(diags, chunkDiags...)
	if diags.HasErrors() {
		return nil, diags
	}

	tpl := &model.RangedTemplate{
		TemplateMeta: model.TemplateMeta{
			Side:        rb.Side,
			Section:     rb.Section,
			Description: rb.Description,
			Kind:        kind,
		},
		From:      rb.From,
		To:        rb.To,
		NetChange: netChange,
		Fragments: fragments,
		DefRange:  block.DefRange,
	}
	if err := model.ValidateTemplate(tpl); err != nil {
		return nil, append(diags, errorDiag("Invalid rows", err.Error(), block.DefRange))
	}
	return tpl, diags
}

func decodeChunks(chunks []*chunkBlock) ([]model.Fragment, hcl.Diagnostics) {
	var fragments []model.Fragment
	var diags hcl.Diagnostics
	for i, cb := range chunks {
		subject := cb.Stitches.Range()
		typ, err := model.ParseFragmentType(cb.Type)
		if err != nil {
			diags = append(diags, errorDiag("Invalid chunk type", err.Error(), subject))
			continue
		}

		id := cb.ID
		if id == "" {
			id = model.DefaultFragmentID(i)
		}
		times := 0
		if typ == model.FragmentRepeat {
			if cb.Times == nil {
				diags = append(diags, errorDiag("Missing repeat count", fmt.Sprintf("Repeat chunk %q needs a 'times' attribute.", id), subject))
				continue
			}
			times = *cb.Times
		}

		stitches, stitchDiags := decodeStitches(cb.Stitches)
		diags = append(diags, stitchDiags...)
		if stitchDiags.HasErrors() {
			continue
		}
		f, err := model.BuildFragment(typ, id, times, stitches)
		if err != nil {
			diags = append(diags, errorDiag("Invalid chunk", err.Error(), subject))
			continue
		}
		fragments = append(fragments, f)
	}
	return fragments, diags
}
