// Package ebus is a small topic bus carrying float64 readings from value
// sources to the widgets displaying them. The last value of every topic is
// cached so late subscribers start from the current reading.
package ebus

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

var ErrBusFull = errors.New("publish channel full")

var ErrClosed = errors.New("bus closed")

type Message struct {
	Topic string
	Value float64
}

type Bus struct {
	in       chan Message
	unsub    chan chan float64
	unsubAll chan chan Message
	done     chan struct{}
	once     sync.Once

	mu   sync.Mutex
	subs map[string][]chan float64
	all  []chan Message

	aggMu       sync.Mutex
	aggregators []*Aggregator

	cache *ttlcache.Cache[string, float64]
}

// New starts a bus whose cached values expire after ttl.
func New(ttl time.Duration) *Bus {
	b := &Bus{
		in:       make(chan Message, 100),
		unsub:    make(chan chan float64, 100),
		unsubAll: make(chan chan Message, 100),
		done:     make(chan struct{}),
		subs:     make(map[string][]chan float64),
		cache: ttlcache.New[string, float64](
			ttlcache.WithTTL[string, float64](ttl),
		),
	}
	go b.cache.Start()
	go b.run()
	return b
}

// Close stops the bus and closes every subscriber channel.
func (b *Bus) Close() {
	b.once.Do(func() {
		close(b.done)
		b.cache.Stop()
	})
}

func (b *Bus) closed() bool {
	select {
	case <-b.done:
		return true
	default:
		return false
	}
}

func (b *Bus) run() {
	for {
		select {
		case <-b.done:
			b.mu.Lock()
			for topic, chans := range b.subs {
				for _, ch := range chans {
					close(ch)
				}
				delete(b.subs, topic)
			}
			for _, ch := range b.all {
				close(ch)
			}
			b.all = nil
			b.mu.Unlock()
			return
		case msg := <-b.in:
			b.dispatch(msg)
		case ch := <-b.unsubAll:
			b.mu.Lock()
			for i, sub := range b.all {
				if sub == ch {
					b.all = append(b.all[:i], b.all[i+1:]...)
					close(sub)
					break
				}
			}
			b.mu.Unlock()
		case ch := <-b.unsub:
			b.mu.Lock()
		outer:
			for topic, chans := range b.subs {
				for i, sub := range chans {
					if sub == ch {
						b.subs[topic] = append(chans[:i], chans[i+1:]...)
						close(ch)
						if len(b.subs[topic]) == 0 {
							delete(b.subs, topic)
						}
						break outer
					}
				}
			}
			b.mu.Unlock()
		}
	}
}

func (b *Bus) dispatch(msg Message) {
	if v := b.cache.Get(msg.Topic); v != nil && v.Value() == msg.Value {
		return
	}
	b.cache.Set(msg.Topic, msg.Value, ttlcache.DefaultTTL)

	b.mu.Lock()
	for _, sub := range b.all {
		select {
		case sub <- msg:
		default:
			log.Printf("ebus: dropping slow subscriber for %s", msg.Topic)
			go b.UnsubscribeAll(sub)
		}
	}
	for _, sub := range b.subs[msg.Topic] {
		select {
		case sub <- msg.Value:
		default:
		}
	}
	b.mu.Unlock()

	b.aggMu.Lock()
	aggs := b.aggregators
	b.aggMu.Unlock()
	for _, agg := range aggs {
		agg.fun(b, msg.Topic, msg.Value)
	}
}

// Publish queues a value. Repeating the cached value of a topic is a no-op
// for subscribers.
func (b *Bus) Publish(topic string, value float64) error {
	if b.closed() {
		return ErrClosed
	}
	select {
	case b.in <- Message{Topic: topic, Value: value}:
		return nil
	default:
		return ErrBusFull
	}
}

// Last returns the cached value of topic.
func (b *Bus) Last(topic string) (float64, bool) {
	itm := b.cache.Get(topic)
	if itm == nil {
		return 0, false
	}
	return itm.Value(), true
}

// Topics lists the topics with a cached value.
func (b *Bus) Topics() []string {
	return b.cache.Keys()
}

// Subscribe returns a channel receiving every new value of topic, starting
// with the cached one. The channel is closed when the bus closes.
func (b *Bus) Subscribe(topic string) chan float64 {
	ch := make(chan float64, 100)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed() {
		close(ch)
		return ch
	}
	b.subs[topic] = append(b.subs[topic], ch)
	if itm := b.cache.Get(topic); itm != nil {
		ch <- itm.Value()
	}
	return ch
}

func (b *Bus) Unsubscribe(ch chan float64) {
	select {
	case b.unsub <- ch:
	case <-b.done:
	}
}

// SubscribeFunc calls f for every value of topic on its own goroutine. The
// returned func unsubscribes.
func (b *Bus) SubscribeFunc(topic string, f func(float64)) func() {
	ch := b.Subscribe(topic)
	go func() {
		for v := range ch {
			f(v)
		}
	}()
	return func() {
		b.Unsubscribe(ch)
	}
}

// SubscribeAll receives every message, starting with the cached values.
func (b *Bus) SubscribeAll() chan Message {
	ch := make(chan Message, 100)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed() {
		close(ch)
		return ch
	}
	b.all = append(b.all, ch)
	b.cache.Range(func(item *ttlcache.Item[string, float64]) bool {
		select {
		case ch <- Message{Topic: item.Key(), Value: item.Value()}:
			return true
		default:
			return false
		}
	})
	return ch
}

func (b *Bus) UnsubscribeAll(ch chan Message) {
	select {
	case b.unsubAll <- ch:
	case <-b.done:
	}
}

func (b *Bus) SubscribeAllFunc(f func(topic string, value float64)) func() {
	ch := b.SubscribeAll()
	go func() {
		for m := range ch {
			f(m.Topic, m.Value)
		}
	}()
	return func() {
		b.UnsubscribeAll(ch)
	}
}

var std = New(time.Minute)

// Default returns the process wide bus.
func Default() *Bus { return std }

func Publish(topic string, value float64) error { return std.Publish(topic, value) }

func Subscribe(topic string) chan float64 { return std.Subscribe(topic) }

func Unsubscribe(ch chan float64) { std.Unsubscribe(ch) }

func SubscribeFunc(topic string, f func(float64)) func() { return std.SubscribeFunc(topic, f) }

func SubscribeAllFunc(f func(topic string, value float64)) func() { return std.SubscribeAllFunc(f) }
