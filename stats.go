// stats.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/skimmer-sim/skimmer/log"
)

// Stats collects a few statistics related to rendering and time spent in
// various phases of the system.
type Stats struct {
	startTime time.Time
	frames    int
	lastLog   time.Time
	proc      *process.Process
}

var startupMallocs uint64

func NewStats(lg *log.Logger) *Stats {
	s := &Stats{
		startTime: time.Now(),
		lastLog:   time.Now(),
	}

	var err error
	s.proc, err = process.NewProcess(int32(os.Getpid()))
	if err != nil {
		lg.Warnf("Unable to get process handle for stats: %v", err)
	}
	return s
}

func (s *Stats) FrameRendered() {
	s.frames++
}

// MaybeLog logs the stats once a minute.
func (s *Stats) MaybeLog(lg *log.Logger) {
	if time.Since(s.lastLog) < time.Minute {
		return
	}
	s.lastLog = time.Now()
	lg.Info("stats", slog.Any("stats", s.LogValue()))
}

func (s *Stats) LogValue() slog.Value {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	if startupMallocs == 0 { // first call
		startupMallocs = mem.Mallocs
	}

	elapsed := time.Since(s.startTime).Seconds()
	mallocsPerSecond := float64(mem.Mallocs-startupMallocs) / elapsed

	attrs := []slog.Attr{
		slog.Float64("frames_per_second", float64(s.frames)/elapsed),
		slog.Float64("mallocs_per_second", mallocsPerSecond),
		slog.Int64("active_mallocs", int64(mem.Mallocs-mem.Frees)),
		slog.Int64("memory_in_use", int64(mem.HeapAlloc)),
	}
	if s.proc != nil {
		if cpu, err := s.proc.CPUPercent(); err == nil {
			attrs = append(attrs, slog.Float64("cpu_percent", cpu))
		}
	}
	return slog.GroupValue(attrs...)
}
