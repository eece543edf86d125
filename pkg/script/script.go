package script

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mholzen/lifo/pkg/collections"
)

type Kind string

const (
	KindPush Kind = "push"
	KindPop  Kind = "pop"
	KindDrop Kind = "drop"
)

type Op struct {
	Kind   Kind
	Values []int32
	Line   int
}

type Step struct {
	Op       Kind   `json:"op"`
	Line     int    `json:"line"`
	Value    *int32 `json:"value,omitempty"`
	Present  bool   `json:"present"`
	Released int    `json:"released,omitempty"`
}

func (s Step) String() string {
	switch s.Op {
	case KindPop:
		if !s.Present {
			return "pop -> none"
		}
		return fmt.Sprintf("pop -> %d", *s.Value)
	case KindDrop:
		return fmt.Sprintf("drop -> released %d", s.Released)
	}
	return string(s.Op)
}

// ReferenceScenario pops on empty, interleaves pushes and pops, and ends empty.
const ReferenceScenario = `# pop on an empty stack
pop
push 1 2 3
pop
pop
push 4 5
pop
pop
pop
pop
`

// Parse reads one operation per line. Blank lines and '#' comments are skipped.
func Parse(r io.Reader) ([]Op, error) {
	var ops []Op
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		op, err := parseOp(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		op.Line = lineNo
		ops = append(ops, op)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read script: %w", err)
	}
	return ops, nil
}

func parseOp(fields []string) (Op, error) {
	kind := Kind(strings.ToLower(fields[0]))
	args := fields[1:]
	switch kind {
	case KindPush:
		if len(args) == 0 {
			return Op{}, fmt.Errorf("push needs at least one value")
		}
		values := make([]int32, 0, len(args))
		for _, arg := range args {
			v, err := strconv.ParseInt(arg, 10, 32)
			if err != nil {
				return Op{}, fmt.Errorf("invalid value %q: %w", arg, err)
			}
			values = append(values, int32(v))
		}
		return Op{Kind: kind, Values: values}, nil
	case KindPop, KindDrop:
		if len(args) != 0 {
			return Op{}, fmt.Errorf("%s takes no arguments", kind)
		}
		return Op{Kind: kind}, nil
	}
	return Op{}, fmt.Errorf("unknown operation: %s", fields[0])
}

// Run applies ops to s in order and records a step for every pop and drop.
func Run(s collections.LIFO, ops []Op) []Step {
	steps := []Step{}
	for _, op := range ops {
		switch op.Kind {
		case KindPush:
			for _, v := range op.Values {
				s.Push(v)
			}
			slog.Debug("push", "line", op.Line, "values", op.Values)
		case KindPop:
			step := Step{Op: KindPop, Line: op.Line}
			if v, ok := s.Pop(); ok {
				step.Value = &v
				step.Present = true
			}
			slog.Debug("pop", "line", op.Line, "present", step.Present)
			steps = append(steps, step)
		case KindDrop:
			released := s.Drop()
			slog.Debug("drop", "line", op.Line, "released", released)
			steps = append(steps, Step{Op: KindDrop, Line: op.Line, Released: released})
		}
	}
	return steps
}
