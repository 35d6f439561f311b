// uim - a library for reading and writing Universal Ink Model files
// Copyright (C) 2026 UIM Authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package stats computes read-only summary statistics over an
// [uim.InkModel]: stroke and point counts, per-channel value ranges,
// brush usage, and knowledge-graph predicate frequency. It is a pure
// traversal over the core's public accessors, grounded on
// original_source/uim/utils/statistics.py.
package stats

import (
	"math"

	"github.com/digink/uim"
)

// PointCountStats summarizes the per-stroke sample count distribution.
type PointCountStats struct {
	Total int
	Min   int
	Max   int
	Mean  float64
}

// ChannelStats summarizes one sensor channel's raw value range across
// every frame that carries it.
type ChannelStats struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
}

// BrushUsage counts how many strokes reference a given brush URI.
type BrushUsage struct {
	StrokesCount int
	Percent      float64
}

// DocumentBounds is the axis-aligned bounding box of every stroke in
// the model's main tree.
type DocumentBounds struct {
	Left, Top, Right, Bottom float64
	Width, Height            float64
}

// Summary is the full statistics report produced by [Analyze].
type Summary struct {
	UIMVersion     string
	StrokesCount   int
	PointsCount    PointCountStats
	Brushes        map[string]*BrushUsage
	SensorChannels map[uim.ID]*ChannelStats
	Predicates     map[string]int
	ViewNames      []string
	DocumentBounds DocumentBounds
}

// Analyze walks m and produces a [Summary]. It never mutates m.
func Analyze(m *uim.InkModel) *Summary {
	s := &Summary{
		UIMVersion:     m.Version.String(),
		StrokesCount:   m.Strokes.Len(),
		Brushes:        make(map[string]*BrushUsage),
		SensorChannels: make(map[uim.ID]*ChannelStats),
		Predicates:     make(map[string]int),
	}

	pointCounts := make([]int, 0, m.Strokes.Len())
	for _, stroke := range m.Strokes.All() {
		n := stroke.Spline.SampleCount()
		pointCounts = append(pointCounts, n)
		s.PointsCount.Total += n

		if stroke.Style != nil {
			usage := s.Brushes[stroke.Style.BrushURI]
			if usage == nil {
				usage = &BrushUsage{}
				s.Brushes[stroke.Style.BrushURI] = usage
			}
			usage.StrokesCount++
		}

		if stroke.SensorDataID != nil {
			accumulateChannelStats(m, *stroke.SensorDataID, s.SensorChannels)
		}
	}
	finishPointCountStats(&s.PointsCount, pointCounts)
	finishChannelStats(s.SensorChannels)
	for _, usage := range s.Brushes {
		usage.Percent = percent(usage.StrokesCount, s.StrokesCount)
	}

	for _, t := range m.Triples.All() {
		s.Predicates[t.Predicate]++
	}

	for name := range m.ViewTrees {
		s.ViewNames = append(s.ViewNames, name)
	}

	s.DocumentBounds = computeDocumentBounds(m)
	return s
}

func accumulateChannelStats(m *uim.InkModel, sensorDataID uim.ID, out map[uim.ID]*ChannelStats) {
	sd, err := m.SensorData.Get(sensorDataID)
	if err != nil {
		return
	}
	for _, ch := range sd.Channels {
		cs := out[ch.SensorChannelID]
		if cs == nil {
			cs = &ChannelStats{Min: math.Inf(1), Max: math.Inf(-1)}
			out[ch.SensorChannelID] = cs
		}
		for _, v := range ch.Values {
			cs.Count++
			cs.Mean += v
			if v < cs.Min {
				cs.Min = v
			}
			if v > cs.Max {
				cs.Max = v
			}
		}
	}
}

func finishChannelStats(channels map[uim.ID]*ChannelStats) {
	for _, cs := range channels {
		if cs.Count > 0 {
			cs.Mean /= float64(cs.Count)
		}
	}
}

func finishPointCountStats(p *PointCountStats, counts []int) {
	if len(counts) == 0 {
		return
	}
	p.Min, p.Max = counts[0], counts[0]
	sum := 0
	for _, c := range counts {
		if c < p.Min {
			p.Min = c
		}
		if c > p.Max {
			p.Max = c
		}
		sum += c
	}
	p.Mean = float64(sum) / float64(len(counts))
}

func computeDocumentBounds(m *uim.InkModel) DocumentBounds {
	if m.MainTree == nil {
		return DocumentBounds{}
	}
	var box uim.BBox
	have := false
	for _, stroke := range m.Strokes.All() {
		minX, minY, maxX, maxY, ok := stroke.BoundingBox()
		if !ok {
			continue
		}
		if !have {
			box = uim.BBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
			have = true
			continue
		}
		box.MinX = math.Min(box.MinX, minX)
		box.MinY = math.Min(box.MinY, minY)
		box.MaxX = math.Max(box.MaxX, maxX)
		box.MaxY = math.Max(box.MaxY, maxY)
	}
	if !have {
		return DocumentBounds{}
	}
	return DocumentBounds{
		Left: box.MinX, Top: box.MinY, Right: box.MaxX, Bottom: box.MaxY,
		Width: box.MaxX - box.MinX, Height: box.MaxY - box.MinY,
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(n)/float64(total)*10000) / 100
}
