// Package sysstat publishes host load readings gathered with gopsutil.
package sysstat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/roffe/txgauge/pkg/source"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/load"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/sensors"
)

// Topics published, relative to the sampler prefix.
const (
	TopicCPU    = "cpu"
	TopicMem    = "mem"
	TopicSwap   = "swap"
	TopicDisk   = "disk"
	TopicLoad1  = "load1"
	TopicLoad5  = "load5"
	TopicLoad15 = "load15"
	TopicTemp   = "temp"
)

type Sampler struct {
	interval time.Duration
	prefix   string
	diskPath string
	log      func(string)

	collectors []collector
}

type collector func(ctx context.Context, out map[string]float64) error

func New(interval time.Duration, prefix string, logFunc func(string)) *Sampler {
	if logFunc == nil {
		logFunc = func(s string) { log.Println(s) }
	}
	s := &Sampler{
		interval: interval,
		prefix:   prefix,
		diskPath: "/",
		log:      logFunc,
	}
	s.collectors = []collector{collectCPU, collectMem, collectLoad, s.collectDisk, collectTemp}
	return s
}

func (s *Sampler) Name() string { return "sysstat" }

func (s *Sampler) Run(ctx context.Context, pub source.Publisher) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	var lastErr string
	for {
		vals, err := s.Collect(ctx)
		if err != nil && err.Error() != lastErr {
			s.log("sysstat: " + err.Error())
			lastErr = err.Error()
		}
		for k, v := range vals {
			if err := pub.Publish(s.prefix+k, v); err != nil {
				s.log(fmt.Sprintf("sysstat: publish %s: %v", k, err))
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Collect takes one sample. Readings that could be taken are returned even
// when others failed.
func (s *Sampler) Collect(ctx context.Context) (map[string]float64, error) {
	out := make(map[string]float64, 8)
	var errs []error
	for _, c := range s.collectors {
		if err := c(ctx, out); err != nil {
			errs = append(errs, err)
		}
	}
	return out, errors.Join(errs...)
}

func collectCPU(ctx context.Context, out map[string]float64) error {
	total, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil || len(total) == 0 {
		return fmt.Errorf("cpu percent: %w", err)
	}
	out[TopicCPU] = total[0]
	return nil
}

func collectMem(ctx context.Context, out map[string]float64) error {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return fmt.Errorf("virtual memory: %w", err)
	}
	out[TopicMem] = v.UsedPercent
	sw, err := mem.SwapMemoryWithContext(ctx)
	if err != nil {
		return fmt.Errorf("swap memory: %w", err)
	}
	out[TopicSwap] = sw.UsedPercent
	return nil
}

func collectLoad(ctx context.Context, out map[string]float64) error {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return fmt.Errorf("load average: %w", err)
	}
	out[TopicLoad1] = avg.Load1
	out[TopicLoad5] = avg.Load5
	out[TopicLoad15] = avg.Load15
	return nil
}

func (s *Sampler) collectDisk(ctx context.Context, out map[string]float64) error {
	u, err := disk.UsageWithContext(ctx, s.diskPath)
	if err != nil {
		return fmt.Errorf("disk usage %s: %w", s.diskPath, err)
	}
	out[TopicDisk] = u.UsedPercent
	return nil
}

// collectTemp publishes the hottest sensor. gopsutil reports partial
// results together with a warning error, so any reading wins.
func collectTemp(ctx context.Context, out map[string]float64) error {
	temps, err := sensors.TemperaturesWithContext(ctx)
	if len(temps) == 0 {
		if err == nil {
			return nil
		}
		return fmt.Errorf("temperatures: %w", err)
	}
	hottest := temps[0].Temperature
	for _, t := range temps[1:] {
		hottest = max(hottest, t.Temperature)
	}
	out[TopicTemp] = hottest
	return nil
}

// SetDiskPath selects the mount point whose usage is reported.
func (s *Sampler) SetDiskPath(p string) {
	s.diskPath = p
}
