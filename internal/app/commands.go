package app

import (
	"context"
	"fmt"

	"github.com/nyantoasty/stitchgrid/internal/countstore"
	"github.com/nyantoasty/stitchgrid/internal/locate"
	"github.com/nyantoasty/stitchgrid/internal/model"
)

// RowCounts is one line of the counts listing.
type RowCounts struct {
	Row      int    `json:"row" yaml:"row"`
	Label    string `json:"template" yaml:"template"`
	Starting int    `json:"startingCount" yaml:"startingCount"`
	Ending   int    `json:"endingCount" yaml:"endingCount"`
	Net      string `json:"netChange" yaml:"netChange"`
}

// RowLocation is a located stitch together with its row.
type RowLocation struct {
	Row int `json:"row" yaml:"row"`
	locate.Location `yaml:",inline"`
}

// Resolve prints rows from..to of the pattern at paths. A zero to means
// just from.
func (a *App) Resolve(ctx context.Context, paths []string, from, to int) error {
	doc, err := a.open(ctx, paths)
	if err != nil {
		return err
	}
	if to == 0 {
		to = from
	}
	rows, err := doc.Engine.ResolveRange(from, to)
	if err != nil {
		return err
	}
	a.logger.Debug("Rows resolved.", "from", from, "to", to)
	return a.render(rows, func() error { return writeRows(a.outW, rows) })
}

// Counts prints the running counts of every row.
func (a *App) Counts(ctx context.Context, paths []string) error {
	doc, err := a.open(ctx, paths)
	if err != nil {
		return err
	}

	var rows []RowCounts
	for row := 1; row <= doc.Engine.Rows(); row++ {
		c, err := doc.Engine.Counts(row)
		if err != nil {
			return err
		}
		tpl, err := doc.Engine.Index().Lookup(row)
		if err != nil {
			return err
		}
		rows = append(rows, rowCounts(row, tpl, c))
	}
	return a.render(rows, func() error { return writeCounts(a.outW, rows) })
}

func rowCounts(row int, tpl model.StepTemplate, c countstore.Counts) RowCounts {
	return RowCounts{
		Row:      row,
		Label:    tpl.Label(),
		Starting: c.Starting,
		Ending:   c.Ending,
		Net:      model.FormatNetChange(c.Net()),
	}
}

// Locate prints which instruction made the stitch at position of row.
func (a *App) Locate(ctx context.Context, paths []string, row, position int) error {
	doc, err := a.open(ctx, paths)
	if err != nil {
		return err
	}
	loc, err := doc.Engine.Locate(row, position)
	if err != nil {
		return err
	}
	out := RowLocation{Row: row, Location: loc}
	return a.render(out, func() error {
		_, err := fmt.Fprintln(a.outW, describeLocation(out))
		return err
	})
}
