package engine

import (
	"github.com/nyantoasty/stitchgrid/internal/calc"
	"github.com/nyantoasty/stitchgrid/internal/model"
)

func knitGlossary() map[string]model.GlossaryEntry {
	return map[string]model.GlossaryEntry{
		"k":         {Name: "Knit", Consumed: 1, Produced: 1},
		"p":         {Name: "Purl", Consumed: 1, Produced: 1},
		"kfb":       {Name: "Knit front and back", Consumed: 1, Produced: 2},
		"k2tog":     {Name: "Knit 2 together", Consumed: 2, Produced: 1},
		"k2tog tbl": {Name: "Knit 2 together through back loop", Consumed: 2, Produced: 1},
		"yo":        {Name: "Yarn over", Consumed: 0, Produced: 1},
		"wyif":      {Name: "With yarn in front", Consumed: 0, Produced: 0},
	}
}

func static(id string, pairs ...any) *model.StaticFragment {
	f := &model.StaticFragment{ID: id}
	for i := 0; i < len(pairs); i += 2 {
		f.Stitches = append(f.Stitches, model.Stitch{Token: pairs[i].(string), Count: pairs[i+1].(int)})
	}
	return f
}

func repeat(id string, times int, pairs ...any) *model.RepeatFragment {
	return &model.RepeatFragment{ID: id, Times: times, Stitches: static(id, pairs...).Stitches}
}

// dynamic takes (token, count-or-calculation) pairs.
func dynamic(id string, pairs ...any) *model.DynamicFragment {
	f := &model.DynamicFragment{ID: id}
	for i := 0; i < len(pairs); i += 2 {
		s := model.DynamicStitch{Token: pairs[i].(string)}
		switch v := pairs[i+1].(type) {
		case int:
			s.Count = v
		case string:
			s.Calculation = v
		}
		f.Stitches = append(f.Stitches, s)
	}
	return f
}

// chainPattern is the three-row increase sampler: 9 -> 11 -> 11 -> 13.
func chainPattern() *model.Pattern {
	p := model.NewPattern("chain")
	p.Metadata.CastOn = model.IntPtr(9)
	p.Glossary = knitGlossary()
	p.Templates = []model.StepTemplate{
		&model.ExactTemplate{
			Row: 1, StartingCount: model.IntPtr(9), EndingCount: model.IntPtr(11),
			TemplateMeta: model.TemplateMeta{Side: "RS"},
			Fragments:    []model.Fragment{static("c0", "k", 1, "kfb", 1, "k", 5, "kfb", 1, "k", 1)},
		},
		&model.ExactTemplate{
			Row: 2, StartingCount: model.IntPtr(11), EndingCount: model.IntPtr(11),
			TemplateMeta: model.TemplateMeta{Side: "WS"},
			Fragments:    []model.Fragment{static("c0", "p", 11)},
		},
		&model.ExactTemplate{
			Row: 3, StartingCount: model.IntPtr(11), EndingCount: model.IntPtr(13),
			TemplateMeta: model.TemplateMeta{Side: "RS"},
			Fragments:    []model.Fragment{static("c0", "k", 1, "kfb", 1, "k", 7, "kfb", 1, "k", 1)},
		},
	}
	return p
}

// shawlPattern mixes every template and fragment variant over 8 rows.
func shawlPattern() *model.Pattern {
	p := model.NewPattern("shawl")
	p.Metadata.Name = "Shawl"
	p.Metadata.CastOn = model.IntPtr(20)
	p.Glossary = knitGlossary()
	p.Templates = []model.StepTemplate{
		&model.ExactTemplate{
			Row:          1,
			TemplateMeta: model.TemplateMeta{Side: "RS", Section: "Setup"},
			Fragments: []model.Fragment{
				static("c0", "k2tog tbl", 1),
				dynamic("c1", "k", calc.ToLast3, "kfb", 1, "k", 2),
			},
		},
		&model.RangedTemplate{
			From: 2, To: 5,
			TemplateMeta: model.TemplateMeta{Section: "Body"},
			Fragments: []model.Fragment{
				static("c0", "k", 1),
				repeat("c1", 3, "yo", 1, "k2tog", 1),
				dynamic("c2", "k", calc.ToEnd),
			},
		},
		&model.RangedTemplate{
			From: 6, To: 7, NetChange: model.IntPtr(2),
			TemplateMeta: model.TemplateMeta{Section: "Increase"},
			Fragments: []model.Fragment{
				static("c0", "k", 1, "kfb", 1),
				dynamic("c1", "k", calc.ToLast3, "kfb", 1, "k", calc.ToEnd),
			},
		},
		&model.ExactTemplate{
			Row:          8,
			TemplateMeta: model.TemplateMeta{Section: "Finishing", Kind: model.KindSpecial, Description: "Bind off loosely."},
		},
	}
	return p
}
