package grid

import (
	"fmt"

	"github.com/midbel/gridcalc/formula"
	"github.com/midbel/gridcalc/value"
)

// Content is what a cell holds. The zero content of a slot is Empty.
type Content interface {
	Raw() string
	Kind() value.Kind
	Number(*Sheet) (float64, error)
	Text(*Sheet) (string, error)
}

// Classify turns raw user input into content: a leading '=' gives a formula,
// an empty string gives Empty, a number gives Number and anything else is
// kept as Text.
func Classify(raw string) (Content, error) {
	if formula.IsFormula(raw) {
		return NewFormula(raw)
	}
	if raw == "" {
		return Empty{}, nil
	}
	if n, ok := value.ParseFloat(raw); ok {
		return Number(n), nil
	}
	return Text(raw), nil
}

type Empty struct{}

func (Empty) Raw() string {
	return ""
}

func (Empty) Kind() value.Kind {
	return value.KindEmpty
}

func (Empty) Number(_ *Sheet) (float64, error) {
	return 0, nil
}

func (Empty) Text(_ *Sheet) (string, error) {
	return "", nil
}

type Text string

func (t Text) Raw() string {
	return string(t)
}

func (Text) Kind() value.Kind {
	return value.KindText
}

// Number reads the text as a number. An empty text counts as zero.
func (t Text) Number(_ *Sheet) (float64, error) {
	if t == "" {
		return 0, nil
	}
	n, ok := value.ParseFloat(string(t))
	if !ok {
		return 0, fmt.Errorf("%q: %w", string(t), formula.ErrNotNumeric)
	}
	return n, nil
}

func (t Text) Text(_ *Sheet) (string, error) {
	return string(t), nil
}

type Number float64

func (n Number) Raw() string {
	return value.FormatFloat(float64(n))
}

func (Number) Kind() value.Kind {
	return value.KindNumber
}

func (n Number) Number(_ *Sheet) (float64, error) {
	return float64(n), nil
}

func (n Number) Text(_ *Sheet) (string, error) {
	return n.Raw(), nil
}

// Formula keeps the text entered by the user, its parsed form and the last
// value computed. A nil cache means the value has to be computed again.
// Failed evaluations never fill the cache.
type Formula struct {
	raw    string
	parsed *formula.Formula
	cache  *float64
}

func NewFormula(raw string) (*Formula, error) {
	parsed, err := formula.Parse(raw)
	if err != nil {
		return nil, err
	}
	f := Formula{
		raw:    raw,
		parsed: parsed,
	}
	return &f, nil
}

func (f *Formula) Raw() string {
	return f.raw
}

func (*Formula) Kind() value.Kind {
	return value.KindFormula
}

func (f *Formula) References() []string {
	return f.parsed.References()
}

func (f *Formula) Number(sh *Sheet) (float64, error) {
	if f.cache != nil {
		return *f.cache, nil
	}
	n, err := formula.Eval(f.parsed.Postfix, sh)
	if err != nil {
		return 0, err
	}
	f.cache = &n
	return n, nil
}

func (f *Formula) Text(sh *Sheet) (string, error) {
	n, err := f.Number(sh)
	if err != nil {
		return "", err
	}
	return value.FormatFloat(n), nil
}

// Cached reports the value computed by the last successful evaluation.
func (f *Formula) Cached() (float64, bool) {
	if f.cache == nil {
		return 0, false
	}
	return *f.cache, true
}

func (f *Formula) clear() {
	f.cache = nil
}
