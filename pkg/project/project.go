package project

import (
	"fmt"
	"io"
	"os"

	"github.com/hansbonini/dialoguetools/pkg/common"
	"gopkg.in/yaml.v3"
)

// Project is the whole authored project. Slices keep authoring order so
// conversion output is deterministic; Reindex builds the id lookups.
type Project struct {
	Attributes        Attributes          `yaml:"project"`
	Assets            []*Asset            `yaml:"assets,omitempty"`
	Entities          []*Entity           `yaml:"entities,omitempty"`
	Locations         []*Location         `yaml:"locations,omitempty"`
	FlowFragments     []*FlowFragment     `yaml:"flow_fragments,omitempty"`
	Dialogues         []*Dialogue         `yaml:"dialogues,omitempty"`
	DialogueFragments []*DialogueFragment `yaml:"dialogue_fragments,omitempty"`
	Hubs              []*Hub              `yaml:"hubs,omitempty"`
	Jumps             []*Jump             `yaml:"jumps,omitempty"`
	Connections       []*Connection       `yaml:"connections,omitempty"`
	Conditions        []*Condition        `yaml:"conditions,omitempty"`
	Instructions      []*Instruction      `yaml:"instructions,omitempty"`
	VariableSets      []*VariableSet      `yaml:"variable_sets,omitempty"`
	Hierarchy         *Node               `yaml:"hierarchy,omitempty"`

	assets            map[string]*Asset
	flowFragments     map[string]*FlowFragment
	dialogues         map[string]*Dialogue
	dialogueFragments map[string]*DialogueFragment
	hubs              map[string]*Hub
	jumps             map[string]*Jump
	conditions        map[string]*Condition
	instructions      map[string]*Instruction
}

// Reindex rebuilds the id lookups. Call it after mutating the slices. When
// two elements share an id the first one wins.
func (p *Project) Reindex() {
	p.assets = make(map[string]*Asset, len(p.Assets))
	for _, a := range p.Assets {
		if a != nil {
			addOnce(p.assets, a.ID, a)
		}
	}
	p.flowFragments = make(map[string]*FlowFragment, len(p.FlowFragments))
	for _, f := range p.FlowFragments {
		if f != nil {
			addOnce(p.flowFragments, f.ID, f)
		}
	}
	p.dialogues = make(map[string]*Dialogue, len(p.Dialogues))
	for _, d := range p.Dialogues {
		if d != nil {
			addOnce(p.dialogues, d.ID, d)
		}
	}
	p.dialogueFragments = make(map[string]*DialogueFragment, len(p.DialogueFragments))
	for _, f := range p.DialogueFragments {
		if f != nil {
			addOnce(p.dialogueFragments, f.ID, f)
		}
	}
	p.hubs = make(map[string]*Hub, len(p.Hubs))
	for _, h := range p.Hubs {
		if h != nil {
			addOnce(p.hubs, h.ID, h)
		}
	}
	p.jumps = make(map[string]*Jump, len(p.Jumps))
	for _, j := range p.Jumps {
		if j != nil {
			addOnce(p.jumps, j.ID, j)
		}
	}
	p.conditions = make(map[string]*Condition, len(p.Conditions))
	for _, c := range p.Conditions {
		if c != nil {
			addOnce(p.conditions, c.ID, c)
		}
	}
	p.instructions = make(map[string]*Instruction, len(p.Instructions))
	for _, i := range p.Instructions {
		if i != nil {
			addOnce(p.instructions, i.ID, i)
		}
	}
}

func addOnce[T any](m map[string]T, id string, v T) {
	if _, exists := m[id]; !exists {
		m[id] = v
	}
}

func (p *Project) ensureIndex() {
	if p.dialogues == nil {
		p.Reindex()
	}
}

// Asset returns the asset with id, or nil.
func (p *Project) Asset(id string) *Asset {
	p.ensureIndex()
	return p.assets[id]
}

// FlowFragment returns the flow fragment with id, or nil.
func (p *Project) FlowFragment(id string) *FlowFragment {
	p.ensureIndex()
	return p.flowFragments[id]
}

// Dialogue returns the dialogue with id, or nil.
func (p *Project) Dialogue(id string) *Dialogue {
	p.ensureIndex()
	return p.dialogues[id]
}

// DialogueFragment returns the dialogue fragment with id, or nil.
func (p *Project) DialogueFragment(id string) *DialogueFragment {
	p.ensureIndex()
	return p.dialogueFragments[id]
}

// Hub returns the hub with id, or nil.
func (p *Project) Hub(id string) *Hub {
	p.ensureIndex()
	return p.hubs[id]
}

// Jump returns the jump with id, or nil.
func (p *Project) Jump(id string) *Jump {
	p.ensureIndex()
	return p.jumps[id]
}

// Condition returns the condition with id, or nil.
func (p *Project) Condition(id string) *Condition {
	p.ensureIndex()
	return p.conditions[id]
}

// Instruction returns the instruction with id, or nil.
func (p *Project) Instruction(id string) *Instruction {
	p.ensureIndex()
	return p.instructions[id]
}

// FullVariableNames lists every "<set>.<variable>" name in declaration order.
func (p *Project) FullVariableNames() []string {
	var names []string
	for _, set := range p.VariableSets {
		if set == nil {
			continue
		}
		for _, variable := range set.Variables {
			names = append(names, FullVariableName(set, variable))
		}
	}
	return names
}

// Load reads a project file in YAML or JSON form.
func Load(filename string) (*Project, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadProjectFile, err)
	}
	defer file.Close()

	p, err := Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return p, nil
}

// Decode parses a project document and indexes it.
func Decode(reader io.Reader) (*Project, error) {
	var p Project
	decoder := yaml.NewDecoder(reader)
	if err := decoder.Decode(&p); err != nil {
		if err == io.EOF {
			return nil, common.FormatErrorString(common.ErrFailedToParseProject, "empty document")
		}
		return nil, common.FormatError(common.ErrFailedToParseProject, err)
	}
	p.Reindex()
	return &p, nil
}

// Encode writes the project as YAML.
func Encode(p *Project, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(p); err != nil {
		return err
	}
	return encoder.Close()
}
