package ebus

import "math"

type AggregatorFunc func(b *Bus, topic string, value float64)

// Aggregator derives new topics from published values. It runs on the bus
// goroutine and must not block.
type Aggregator struct {
	fun AggregatorFunc
}

func NewAggregator(f AggregatorFunc) *Aggregator {
	return &Aggregator{fun: f}
}

func (b *Bus) RegisterAggregator(aggs ...*Aggregator) {
	b.aggMu.Lock()
	defer b.aggMu.Unlock()
outer:
	for _, agg := range aggs {
		for _, existing := range b.aggregators {
			if existing == agg {
				continue outer
			}
		}
		b.aggregators = append(b.aggregators, agg)
	}
}

// DiffAggregator publishes second-first on output once both inputs have
// been updated since the last output.
func DiffAggregator(first, second, output string) *Aggregator {
	var firstUpdated, secondUpdated bool
	var firstValue, secondValue float64
	return NewAggregator(func(b *Bus, topic string, value float64) {
		switch topic {
		case first:
			firstValue, firstUpdated = value, true
		case second:
			secondValue, secondUpdated = value, true
		default:
			return
		}
		if firstUpdated && secondUpdated {
			b.Publish(output, secondValue-firstValue)
			firstUpdated, secondUpdated = false, false
		}
	})
}

// ScaleAggregator republishes input as value*factor+offset.
func ScaleAggregator(input, output string, factor, offset float64) *Aggregator {
	return NewAggregator(func(b *Bus, topic string, value float64) {
		if topic == input {
			b.Publish(output, value*factor+offset)
		}
	})
}

// SmoothAggregator publishes an exponential moving average of input. alpha
// is the weight of the newest sample and is clamped into (0,1].
func SmoothAggregator(input, output string, alpha float64) *Aggregator {
	if alpha <= 0 || math.IsNaN(alpha) {
		alpha = 0.01
	}
	alpha = math.Min(alpha, 1)
	var avg float64
	var primed bool
	return NewAggregator(func(b *Bus, topic string, value float64) {
		if topic != input {
			return
		}
		if !primed {
			avg, primed = value, true
		} else {
			avg += alpha * (value - avg)
		}
		b.Publish(output, avg)
	})
}
