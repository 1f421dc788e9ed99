// Package observ aggregates per-file stage timings of a batch run.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// StageStat accumulates the durations reported for one stage.
type StageStat struct {
	Name  string
	Count int
	Total time.Duration
	Max   time.Duration
}

// Table collects timings by stage, keeping stages in first-seen order.
type Table struct {
	stats []StageStat
	index map[string]int
}

// NewTable creates an empty table.
func NewTable() *Table { return &Table{index: make(map[string]int)} }

// Add records one duration for stage.
func (t *Table) Add(stage string, d time.Duration) {
	i, ok := t.index[stage]
	if !ok {
		i = len(t.stats)
		t.index[stage] = i
		t.stats = append(t.stats, StageStat{Name: stage})
	}
	s := &t.stats[i]
	s.Count++
	s.Total += d
	s.Max = max(s.Max, d)
}

// StageReport представляет сжатую информацию о стадии для сериализации.
type StageReport struct {
	Name    string  `json:"name"`
	Files   int     `json:"files"`
	TotalMS float64 `json:"total_ms"`
	MaxMS   float64 `json:"max_ms"`
}

// Report описывает агрегированные данные таблицы.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Stages  []StageReport `json:"stages"`
}

// Report returns the stages with durations in milliseconds.
func (t *Table) Report() Report {
	var report Report
	var total time.Duration
	for _, s := range t.stats {
		total += s.Total
		report.Stages = append(report.Stages, StageReport{
			Name:    s.Name,
			Files:   s.Count,
			TotalMS: durationToMillis(s.Total),
			MaxMS:   durationToMillis(s.Max),
		})
	}
	report.TotalMS = durationToMillis(total)
	return report
}

// Summary returns a human-readable table of the stages.
func (t *Table) Summary() string {
	report := t.Report()
	var b strings.Builder
	b.WriteString("timings:\n")
	for _, s := range report.Stages {
		fmt.Fprintf(&b, "  %-12s %9.2f ms  max %8.2f ms  (%d files)\n", s.Name, s.TotalMS, s.MaxMS, s.Files)
	}
	fmt.Fprintf(&b, "  %-12s %9.2f ms\n", "total", report.TotalMS)
	return b.String()
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
