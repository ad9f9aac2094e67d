package document

import (
	"fmt"
	"strconv"

	"github.com/nyantoasty/stitchgrid/internal/model"
	"gopkg.in/yaml.v3"
)

// file is the top level of a pattern document.
type file struct {
	Metadata     metadata                 `yaml:"metadata"`
	Glossary     map[string]glossaryEntry `yaml:"glossary"`
	Calculations map[string]calculation   `yaml:"calculations"`
	Steps        []step                   `yaml:"steps"`
}

type metadata struct {
	ID       string         `yaml:"id"`
	Name     string         `yaml:"name"`
	Author   string         `yaml:"author"`
	Craft    string         `yaml:"craft"`
	MaxSteps int            `yaml:"maxSteps"`
	CastOn   *int           `yaml:"castOn"`
	Extra    map[string]any `yaml:",inline"`
}

type glossaryEntry struct {
	Name            string `yaml:"name"`
	Description     string `yaml:"description"`
	StitchesUsed    int    `yaml:"stitchesUsed"`
	StitchesCreated int    `yaml:"stitchesCreated"`
	Category        string `yaml:"category"`
	Symbol          string `yaml:"symbol"`
}

// calculation is either a bare expression string or {value, description}.
type calculation struct {
	Value       string `yaml:"value"`
	Description string `yaml:"description"`
}

func (c *calculation) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		c.Value = node.Value
		return nil
	}
	type plain calculation
	return node.Decode((*plain)(c))
}

type step struct {
	Step                *int                      `yaml:"step"`
	Range               []int                     `yaml:"range"`
	StartingStitchCount *int                      `yaml:"startingStitchCount"`
	EndingStitchCount   *int                      `yaml:"endingStitchCount"`
	NetChange           *netChange                `yaml:"netChange"`
	Side                string                    `yaml:"side"`
	Section             string                    `yaml:"section"`
	Type                string                    `yaml:"type"`
	Description         string                    `yaml:"description"`
	Instruction         string                    `yaml:"instruction"`
	Chunks              []chunk                   `yaml:"chunks"`
	Instructions        []model.AtomicInstruction `yaml:"instructions"`

	line int
}

func (s *step) UnmarshalYAML(node *yaml.Node) error {
	type plain step
	if err := node.Decode((*plain)(s)); err != nil {
		return err
	}
	s.line = node.Line
	return nil
}

type chunk struct {
	Type     string   `yaml:"type"`
	ID       string   `yaml:"id"`
	Times    *int     `yaml:"times"`
	Stitches []stitch `yaml:"stitches"`
}

// stitch is {code, count} or the short [code, count] form. A count that is
// not an integer names a calculation.
type stitch struct {
	Code  string
	Count count
}

func (s *stitch) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: want [code, count], got %d elements", node.Line, len(node.Content))
		}
		if err := node.Content[0].Decode(&s.Code); err != nil {
			return err
		}
		return node.Content[1].Decode(&s.Count)
	case yaml.MappingNode:
		var m struct {
			Code  string `yaml:"code"`
			Count count  `yaml:"count"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		s.Code, s.Count = m.Code, m.Count
		return nil
	default:
		return fmt.Errorf("line %d: want a stitch object or [code, count]", node.Line)
	}
}

// count is a literal count or a calculation name.
type count struct {
	N           int
	Calculation string
}

func (c *count) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: count must be a number or a calculation name", node.Line)
	}
	if node.Tag == "!!int" {
		return node.Decode(&c.N)
	}
	if n, err := strconv.Atoi(node.Value); err == nil {
		c.N = n
		return nil
	}
	if node.Tag == "!!float" {
		return fmt.Errorf("line %d: count %s is not a whole number", node.Line, node.Value)
	}
	c.Calculation = node.Value
	return nil
}

// netChange accepts a number or the "+2" shorthand.
type netChange int

func (n *netChange) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: netChange must be a number or a string like \"+2\"", node.Line)
	}
	v, err := model.ParseNetChange(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*n = netChange(v)
	return nil
}
