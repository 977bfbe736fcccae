package flow

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/blocksim/block"
)

// Spec describes a chain, loadable from a YAML file:
//
//	type: float32
//	buffer_size: 4096
//	parallel: 1
//	source: {block: CountingSource, params: {n_samples_max: 1000000}}
//	stages:
//	  - {block: SimCompute, params: {complexity_order: 2.0}}
//	sink: {block: NullSink}
type Spec struct {
	Type       string      `yaml:"type"`
	BufferSize int         `yaml:"buffer_size"`
	Parallel   int         `yaml:"parallel"`
	Source     BlockSpec   `yaml:"source"`
	Stages     []BlockSpec `yaml:"stages"`
	Sink       BlockSpec   `yaml:"sink"`
}

// BlockSpec names a registered block kind and its settings.
type BlockSpec struct {
	Block  string         `yaml:"block"`
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

// LoadSpec reads and parses a YAML flow file with strict field checking.
func LoadSpec(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading flow spec: %w", err)
	}
	return ParseSpec(data)
}

// ParseSpec parses YAML flow data. Unknown fields are errors so typos do not
// silently fall back to defaults.
func ParseSpec(data []byte) (*Spec, error) {
	var spec Spec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing flow spec: %w", err)
	}
	return &spec, nil
}

// blocks returns source, stages and sink in chain order.
func (s *Spec) blocks() []BlockSpec {
	all := make([]BlockSpec, 0, len(s.Stages)+2)
	all = append(all, s.Source)
	all = append(all, s.Stages...)
	return append(all, s.Sink)
}

// names returns the effective instance name of every block. Unnamed blocks
// are named after their kind, suffixed with their position when the kind
// occurs more than once.
func (s *Spec) names() []string {
	all := s.blocks()
	occurrences := make(map[string]int)
	for _, b := range all {
		if b.Name == "" {
			occurrences[b.Block]++
		}
	}
	names := make([]string, len(all))
	for i, b := range all {
		switch {
		case b.Name != "":
			names[i] = b.Name
		case occurrences[b.Block] > 1:
			names[i] = fmt.Sprintf("%s_%d", b.Block, i)
		default:
			names[i] = b.Block
		}
	}
	return names
}

// Validate checks element type, block kinds, sizes and name uniqueness,
// returning one error listing every problem.
func (s *Spec) Validate() error {
	var problems []string
	if s.Type == "" {
		problems = append(problems, "type must be set")
	} else if !isSupportedType(s.Type) {
		problems = append(problems, fmt.Sprintf("unsupported element type %q", s.Type))
	}
	if s.BufferSize < 0 {
		problems = append(problems, fmt.Sprintf("buffer_size must be >= 0, got %d", s.BufferSize))
	}
	if s.Parallel < 0 {
		problems = append(problems, fmt.Sprintf("parallel must be >= 0, got %d", s.Parallel))
	}

	names := s.names()
	seen := make(map[string]bool)
	for i, b := range s.blocks() {
		if b.Block == "" {
			problems = append(problems, fmt.Sprintf("block %d: kind must be set", i))
			continue
		}
		if s.Type != "" && !block.Registered(b.Block, s.Type) {
			problems = append(problems, fmt.Sprintf("block %d: %s<%s> is not registered", i, b.Block, s.Type))
		}
		if seen[names[i]] {
			problems = append(problems, fmt.Sprintf("duplicate block name %q", names[i]))
		}
		seen[names[i]] = true
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid flow spec: %s", strings.Join(problems, "; "))
	}
	return nil
}

// Build instantiates the blocks described by s and wires them into a Chain.
// Each call creates fresh block instances.
func Build[T any](s *Spec, opts Options) (*Chain[T], error) {
	if opts.BufferSize == 0 {
		opts.BufferSize = s.BufferSize
	}
	names := s.names()
	all := s.blocks()
	created := make([]block.Block, len(all))
	for i, bs := range all {
		b, err := block.New(bs.Block, s.Type, names[i], bs.Params)
		if err != nil {
			return nil, err
		}
		created[i] = b
	}
	return NewChain[T](opts, created[0], created[1:len(created)-1], created[len(created)-1])
}
