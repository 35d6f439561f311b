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

// Package uim reads, constructs, and writes Universal Ink Model (UIM)
// documents: a RIFF-chunked, protobuf-encoded container describing
// digital ink captured from styli, touch, or mouse input.
//
// An [InkModel] bundles four coupled data planes: raw per-sample sensor
// streams with device provenance ([SensorDataRepository]), rendered
// geometry as Catmull-Rom splines ([Stroke]), a set of logical trees
// grouping strokes into semantically meaningful regions ([InkTree]), and
// an RDF-style triple store attaching meaning to tree nodes
// ([TripleStore]).
//
// Use [Parse] to read a ".uim" file (auto-detecting the 3.0.0 or 3.1.0
// on-disk version) and [Encode] to write one back out (always 3.1.0).
package uim
