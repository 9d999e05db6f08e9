// Package lsif is the reference implementation for the L-System Interchange Format.
//
// An LSIF stream is a sequence of YAML documents, one L-system each:
//
//	axiom: "A(0, 2)"
//	generations: 3
//	rules:
//	  - predecessor: "B"
//	    target: "A(x, y)"
//	    successor: "C(1)"
//	    guard: "x == 0 && y < 10"
//	    replacement: "A(1, y + 1) B(2, 3)"
//
// predecessor, successor and guard are optional; an empty replacement deletes the target.
// Symbols are written as a single character optionally followed by parameters in parentheses,
// spaces between symbols are ignored: "F[+F]F" is five symbols.
package lsif

import (
	"io"

	"gopkg.in/yaml.v3"
)

type Format struct {
	Axiom       string `yaml:"axiom"`
	Generations uint   `yaml:"generations"`
	Rules       []Rule `yaml:"rules"`
}

type Rule struct {
	Predecessor string `yaml:"predecessor,omitempty"`
	Target      string `yaml:"target"`
	Successor   string `yaml:"successor,omitempty"`
	Guard       string `yaml:"guard,omitempty"`
	Replacement string `yaml:"replacement"`
}

type Decoder struct {
	in          io.Reader
	yamlDecoder *yaml.Decoder
}

func NewDecoder(in io.Reader) *Decoder {
	yamlDecoder := yaml.NewDecoder(in)
	yamlDecoder.KnownFields(true)
	return &Decoder{
		in:          in,
		yamlDecoder: yamlDecoder,
	}
}

// Decode reads the next document of the stream. It returns io.EOF once the stream is exhausted.
func (dec *Decoder) Decode() (*Format, error) {
	format := &Format{}
	// Read until yaml multi-document delimiter and/or until EOF
	err := dec.yamlDecoder.Decode(format)
	return format, err
}
