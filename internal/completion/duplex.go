package completion

import (
	"fmt"
	"math/rand"
)

// Selection names which of a duplex pair a Selector picked.
type Selection int

const (
	SelectFirst Selection = iota
	SelectSecond
)

// Selector decides, for each requested token, which source to draw
// from next.
type Selector interface {
	Select() Selection
}

// SelectorFactory builds a fresh Selector for one completion request.
type SelectorFactory interface {
	Create(params Params) Selector
}

// RandomnessSource supplies a percentage in [0, 100] used to weigh a
// selection. Tests substitute a StaticRandomness for determinism.
type RandomnessSource interface {
	NextPercentage() uint8
}

// mathRandRandomness draws from math/rand's default source.
type mathRandRandomness struct{}

func (mathRandRandomness) NextPercentage() uint8 {
	return uint8(rand.Intn(101))
}

// StaticRandomness replays a fixed sequence of percentages, falling
// back to 0 once exhausted. Used by tests to pin selector outcomes.
type StaticRandomness struct {
	values []uint8
	i      int
}

// NewStaticRandomness returns a RandomnessSource that replays values
// in order.
func NewStaticRandomness(values ...uint8) *StaticRandomness {
	return &StaticRandomness{values: values}
}

func (s *StaticRandomness) NextPercentage() uint8 {
	if s.i >= len(s.values) {
		return 0
	}
	v := s.values[s.i]
	s.i++
	return v
}

// WeightedSelector picks First when its draw is <= weights.first,
// Second otherwise; weights.first + weights.second must equal 100.
type WeightedSelector struct {
	firstWeight uint8
	random      RandomnessSource
}

func (w *WeightedSelector) Select() Selection {
	if w.random.NextPercentage() <= w.firstWeight {
		return SelectFirst
	}
	return SelectSecond
}

// WeightedSelectorFactory builds WeightedSelectors with fixed weights
// and a pluggable randomness source (math/rand by default).
type WeightedSelectorFactory struct {
	FirstWeight, SecondWeight uint8
	Random                    RandomnessSource
}

// NewWeightedSelectorFactory validates that the weights sum to 100 and
// defaults to math/rand-backed randomness.
func NewWeightedSelectorFactory(first, second uint8) (*WeightedSelectorFactory, error) {
	if int(first)+int(second) != 100 {
		return nil, fmt.Errorf("completion: weights must sum to 100; got %d, %d", first, second)
	}
	return &WeightedSelectorFactory{FirstWeight: first, SecondWeight: second, Random: mathRandRandomness{}}, nil
}

func (f *WeightedSelectorFactory) Create(_ Params) Selector {
	random := f.Random
	if random == nil {
		random = mathRandRandomness{}
	}
	return &WeightedSelector{firstWeight: f.FirstWeight, random: random}
}

// WordIndexSelectorFactory picks a (first, second) weight pair based
// on the cursor's word index, clamped to the last entry once the
// index exceeds the table (matching the bundled markov+recency
// schedule's "after a few words, prefer recency more" intent).
type WordIndexSelectorFactory struct {
	WeightsByIndex [][2]uint8
	// Random, if set, is threaded into every per-request WeightedSelectorFactory;
	// nil uses math/rand.
	Random RandomnessSource
}

func NewWordIndexSelectorFactory(weightsByIndex [][2]uint8) *WordIndexSelectorFactory {
	return &WordIndexSelectorFactory{WeightsByIndex: weightsByIndex}
}

func (f *WordIndexSelectorFactory) Create(params Params) Selector {
	index := params.WordIndex()
	if max := len(f.WeightsByIndex) - 1; index > max {
		index = max
	}
	pair := f.WeightsByIndex[index]
	wf, err := NewWeightedSelectorFactory(pair[0], pair[1])
	if err != nil {
		// WeightsByIndex is constructed by this package's own callers
		// from constant tables; a bad pair here is a programmer error,
		// not a runtime condition callers need to handle.
		panic(err)
	}
	wf.Random = f.Random
	return wf.Create(params)
}

// DuplexSource blends two sources through a Selector called once per
// output position: the selected side's next not-yet-emitted
// suggestion is taken, falling back to the other side when the
// selected side has none left. This mirrors the original's DuplexIter,
// which calls select() on every pull rather than once for the whole
// list — with a skewed weight (e.g. 100/0) this degenerates to "drain
// one side, then the other"; with a mixed weight it interleaves.
type DuplexSource struct {
	First, Second Source
	Selector      SelectorFactory
}

func NewDuplexSource(first, second Source, selector SelectorFactory) *DuplexSource {
	return &DuplexSource{First: first, Second: second, Selector: selector}
}

func (d *DuplexSource) Suggest(params Params) []string {
	firstList := d.First.Suggest(params)
	secondList := d.Second.Suggest(params)
	selector := d.Selector.Create(params)

	var out []string
	fi, si := 0, 0
	for fi < len(firstList) || si < len(secondList) {
		switch selector.Select() {
		case SelectFirst:
			if fi < len(firstList) {
				out = append(out, firstList[fi])
				fi++
			} else {
				out = append(out, secondList[si])
				si++
			}
		default:
			if si < len(secondList) {
				out = append(out, secondList[si])
				si++
			} else {
				out = append(out, firstList[fi])
				fi++
			}
		}
	}
	return out
}
