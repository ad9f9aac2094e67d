package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// rootSchema lists the top-level blocks of a pattern file.
var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "pattern", LabelNames: []string{"id"}},
		{Type: "glossary", LabelNames: []string{"code"}},
		{Type: "calculation", LabelNames: []string{"name"}},
		{Type: "row"},
		{Type: "rows"},
	},
}

// patternBlock is the header of a pattern document.
type patternBlock struct {
	Name   string            `hcl:"name,optional"`
	Author string            `hcl:"author,optional"`
	Craft  string            `hcl:"craft,optional"`
	CastOn *int              `hcl:"cast_on,optional"`
	Rows   int               `hcl:"rows,optional"`
	Extra  map[string]string `hcl:"extra,optional"`
}

// glossaryBlock defines one stitch code.
type glossaryBlock struct {
	Name        string `hcl:"name,optional"`
	Description string `hcl:"description,optional"`
	Consumed    int    `hcl:"consumed"`
	Produced    int    `hcl:"produced"`
	Category    string `hcl:"category,optional"`
	Symbol      string `hcl:"symbol,optional"`
}

// calculationBlock defines a named count expression.
type calculationBlock struct {
	Description string         `hcl:"description,optional"`
	Value       hcl.Expression `hcl:"value"`
}

// rowBlock is an exact template.
type rowBlock struct {
	Number        int           `hcl:"number"`
	Side          string        `hcl:"side,optional"`
	Section       string        `hcl:"section,optional"`
	Kind          string        `hcl:"kind,optional"`
	Description   string        `hcl:"description,optional"`
	StartingCount *int          `hcl:"starting_count,optional"`
	EndingCount   *int          `hcl:"ending_count,optional"`
	Chunks        []*chunkBlock `hcl:"chunk,block"`
}

// rowsBlock is a ranged template.
type rowsBlock struct {
	From        int            `hcl:"from"`
	To          int            `hcl:"to"`
	NetChange   hcl.Expression `hcl:"net_change,optional"`
	Side        string         `hcl:"side,optional"`
	Section     string         `hcl:"section,optional"`
	Kind        string         `hcl:"kind,optional"`
	Description string         `hcl:"description,optional"`
	Chunks      []*chunkBlock  `hcl:"chunk,block"`
}

// chunkBlock is one fragment; its label is the fragment type.
type chunkBlock struct {
	Type     string         `hcl:"type,label"`
	ID       string         `hcl:"id,optional"`
	Times    *int           `hcl:"times,optional"`
	Stitches hcl.Expression `hcl:"stitches"`
}
