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

// Command uim-inspect dumps a .uim file's structure: header version,
// stroke and point counts, document bounds, view names, brush usage,
// and knowledge-graph predicate frequency. It mirrors the teacher's
// demo/pdf-inspect in shape: flag-parsed path argument, a check(err)
// exit helper, and lines truncated to the terminal width.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/term"

	"github.com/digink/uim"
	"github.com/digink/uim/stats"
	"github.com/digink/uim/uimjson"
)

type config struct {
	Lenient bool `toml:"lenient"`
	Width   int  `toml:"width"`
	JSON    bool `toml:"json"`
}

func main() {
	configPath := flag.String("config", "uim-inspect.toml", "TOML config file")
	lenient := flag.Bool("lenient", false, "drop dangling sensor-data references instead of failing")
	asJSON := flag.Bool("json", false, "print the full model as JSON instead of a summary")
	flag.Parse()

	cfg := loadConfig(*configPath)
	if *lenient {
		cfg.Lenient = true
	}
	if *asJSON {
		cfg.JSON = true
	}

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: uim-inspect [-config file] [-lenient] [-json] <file.uim>")
		os.Exit(1)
	}

	data, err := os.ReadFile(flag.Arg(0))
	check(err)

	m, err := uim.ParseWithOptions(data, uim.ParseOptions{Lenient: cfg.Lenient})
	check(err)

	if cfg.JSON {
		out, err := uimjson.Marshal(m)
		check(err)
		os.Stdout.Write(out)
		fmt.Println()
		return
	}

	printSummary(m, terminalWidth(cfg.Width))
}

func loadConfig(path string) config {
	cfg := config{Width: 80}
	if _, err := os.Stat(path); err != nil {
		return cfg
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		fmt.Fprintf(os.Stderr, "uim-inspect: ignoring malformed config %s: %v\n", path, err)
		return config{Width: 80}
	}
	return cfg
}

func terminalWidth(fallback int) int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	if fallback > 0 {
		return fallback
	}
	return 80
}

func printSummary(m *uim.InkModel, width int) {
	summary := stats.Analyze(m)

	fmt.Printf("UIM version:     %s\n", summary.UIMVersion)
	fmt.Printf("Strokes:         %d\n", summary.StrokesCount)
	fmt.Printf("Points:          total %d, min %d, max %d, mean %.1f\n",
		summary.PointsCount.Total, summary.PointsCount.Min, summary.PointsCount.Max, summary.PointsCount.Mean)
	fmt.Printf("Document bounds: [%.2f, %.2f] - [%.2f, %.2f] (%.2fx%.2f)\n",
		summary.DocumentBounds.Left, summary.DocumentBounds.Top,
		summary.DocumentBounds.Right, summary.DocumentBounds.Bottom,
		summary.DocumentBounds.Width, summary.DocumentBounds.Height)

	if len(summary.ViewNames) > 0 {
		fmt.Println(wrap("Views: "+strings.Join(summary.ViewNames, ", "), width))
	}

	if len(summary.Brushes) > 0 {
		fmt.Println("Brushes:")
		for uri, usage := range summary.Brushes {
			fmt.Printf("  %-40s %5d strokes (%.1f%%)\n", uri, usage.StrokesCount, usage.Percent)
		}
	}

	if len(summary.Predicates) > 0 {
		fmt.Println("Predicates:")
		for pred, count := range summary.Predicates {
			fmt.Println(wrap(fmt.Sprintf("  %s: %d", pred, count), width))
		}
	}
}

func wrap(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	return s[:width-1] + "…"
}

func check(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
