package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/xrgallery/ecs"
	"github.com/plus3/xrgallery/gallery"
)

type Report struct {
	// Configuration
	Frames  int
	TPS     int
	Targets int

	// Results
	TotalTime       time.Duration
	SimTime         time.Duration
	UpdateTime      Stats
	PeakProjectiles int
	Gameplay        gallery.Stats
	Score           int
	ScoreText       string
	Scheduler       *ecs.SchedulerStats
	GCPauseMetrics  bool
	MemStatsStart   runtime.MemStats
	MemStatsEnd     runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

const reportTemplate = `
# Gallery Benchmark Report

## Configuration
- **Frames:** {{.Frames}} at {{.TPS}} fps ({{.SimTime}} simulated)
- **Targets:** {{.Targets}}

## Gameplay
- **Fired:** {{.Gameplay.Fired}} ({{.Gameplay.Misfires}} misfires)
- **Hits:** {{.Gameplay.Hits}} ({{percent .Gameplay.Hits .Gameplay.Fired}})
- **Expired:** {{.Gameplay.Expired}}
- **Respawns:** {{.Gameplay.Respawns}}
- **Peak Projectiles:** {{.PeakProjectiles}}
- **Score:** {{.Score}} (display {{.ScoreText}})

## Performance
- **Total Wall Time:** {{.TotalTime}}
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
- **Timers Fired:** {{.Scheduler.TimersFired}}
{{range .Scheduler.Systems}}  - {{.Name}}: avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
		"percent": func(part, whole int) string {
			if whole == 0 {
				return "n/a"
			}
			return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(whole))
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
