// Package timehist buckets packet arrivals by time, keyed by TCP source
// port. Because the capture duration is unknown until ingestion ends, the
// histogram maintains parallel fixed-bucket-count views at several time
// spans and picks the smallest span that did not overflow when it is
// rendered.
package timehist

import (
	"time"

	"NetGlance/internal/render"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	bucketCount   = 600
	titleFontSize = 8.0
)

type bucket struct {
	counts map[uint16]uint64
	total  uint64
}

type scale struct {
	span     time.Duration
	buckets  []bucket
	overflow uint64
}

// Histogram is an append-only time-bucketed series of (timestamp, port)
// events. The zero value is not usable; construct with New.
type Histogram struct {
	scales  []scale
	base    time.Time
	inserts uint64
}

// New builds a histogram covering spans from one minute up to a year.
func New() *Histogram {
	spans := []time.Duration{
		time.Minute,
		time.Hour,
		24 * time.Hour,
		7 * 24 * time.Hour,
		30 * 24 * time.Hour,
		365 * 24 * time.Hour,
	}
	h := &Histogram{scales: make([]scale, len(spans))}
	for i, span := range spans {
		h.scales[i] = scale{span: span, buckets: make([]bucket, bucketCount)}
	}
	return h
}

// Insert records one event. The first inserted timestamp anchors bucket zero
// of every scale; events outside a scale's span count toward its overflow.
func (h *Histogram) Insert(ts time.Time, port uint16) {
	if h.inserts == 0 {
		h.base = ts
	}
	h.inserts++

	offset := ts.Sub(h.base)
	for i := range h.scales {
		sc := &h.scales[i]
		idx := int(offset / (sc.span / bucketCount))
		if offset < 0 || idx < 0 || idx >= bucketCount {
			sc.overflow++
			continue
		}
		b := &sc.buckets[idx]
		if b.counts == nil {
			b.counts = make(map[uint16]uint64)
		}
		b.counts[port]++
		b.total++
	}
}

// Inserts returns the number of recorded events.
func (h *Histogram) Inserts() uint64 {
	return h.inserts
}

// NumScales returns how many parallel spans the histogram maintains.
func (h *Histogram) NumScales() int {
	return len(h.scales)
}

// bestScale is the smallest span with no overflow, or the coarsest span when
// every scale overflowed.
func (h *Histogram) bestScale() int {
	for i := range h.scales {
		if h.scales[i].overflow == 0 {
			return i
		}
	}
	return len(h.scales) - 1
}

// Render draws the best-fitting scale into bounds.
func (h *Histogram) Render(s render.Surface, b render.Bounds, colors render.PortColors, title string) {
	h.RenderScale(s, b, colors, title, h.bestScale())
}

// RenderScale draws one specific scale into bounds: a centered title, then
// one bar per occupied bucket, colored by the bucket's dominant port, over a
// thin baseline.
func (h *Histogram) RenderScale(s render.Surface, b render.Bounds, colors render.PortColors, title string, scaleIdx int) {
	ext := s.MeasureText(title, titleFontSize)
	s.DrawText(title, b.X+(b.Width-ext.Width)/2, b.Y+ext.Height, titleFontSize, drawing.ColorBlack)

	plotTop := b.Y + ext.Height*2
	plotHeight := b.Height - ext.Height*2 - 1
	if plotHeight <= 0 {
		return
	}
	s.FillRect(b.X, b.Y+b.Height-1, b.Width, 1, drawing.ColorBlack)

	if scaleIdx < 0 || scaleIdx >= len(h.scales) || h.inserts == 0 {
		return
	}
	sc := &h.scales[scaleIdx]

	last := 0
	var maxTotal uint64
	for i := range sc.buckets {
		if sc.buckets[i].total > 0 {
			last = i
		}
		if sc.buckets[i].total > maxTotal {
			maxTotal = sc.buckets[i].total
		}
	}
	if maxTotal == 0 {
		return
	}

	barWidth := b.Width / float64(last+1)
	for i := 0; i <= last; i++ {
		bkt := &sc.buckets[i]
		if bkt.total == 0 {
			continue
		}
		barHeight := float64(bkt.total) / float64(maxTotal) * plotHeight
		x := b.X + float64(i)*barWidth
		y := plotTop + (plotHeight - barHeight)
		s.FillRect(x, y, barWidth, barHeight, colors.ForPort(dominantPort(bkt)))
	}
}

// dominantPort picks the port with the highest count in a bucket, smallest
// port winning ties.
func dominantPort(b *bucket) uint16 {
	var best uint16
	var bestCount uint64
	first := true
	for p, c := range b.counts {
		if first || c > bestCount || (c == bestCount && p < best) {
			best, bestCount = p, c
			first = false
		}
	}
	return best
}
