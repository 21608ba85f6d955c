// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command vrdemo renders a scene file with the vraster engine.
//
// Scenes are TOML or YAML documents listing shapes to fill or stroke:
//
//	vrdemo -scene shapes.toml -output shapes.png
//
// Without -scene a built-in demo scene is drawn.
package main

import (
	"flag"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/vraster"
)

const demoScene = `
width = 480
height = 320
background = "#1a2233"

[[shape]]
rect = [0, 0, 480, 160]
[shape.fill]
linear = [0, 0, 0, 160]
stops = [{ offset = 0, color = "#33507f" }, { offset = 1, color = "#1a2233" }]

[[shape]]
circle = [120, 160, 70]
[shape.fill]
color = "#ff4d4dcc"

[[shape]]
circle = [170, 160, 70]
[shape.fill]
color = "#4dff4dcc"

[[shape]]
circle = [145, 205, 70]
[shape.fill]
radial = [145, 205, 0, 145, 205, 70]
stops = [{ offset = 0, color = "#ffffff" }, { offset = 1, color = "#4d4dffcc" }]

[[shape]]
rect = [300, 60, 140, 90]
[shape.fill]
color = "#ffcc00"
[shape.stroke]
color = "#ffffff"
width = 4

[[shape]]
points = [[300, 280], [330, 200], [360, 280], [390, 200], [420, 280]]
antialias = "best"
[shape.stroke]
color = "#80e0ff"
width = 6
join = "round"
cap = "round"

[[shape]]
points = [[260, 300], [460, 300]]
[shape.stroke]
color = "#ffffff"
width = 2
dash = [8, 4]

[[shape]]
op = "dest-out"
clip = [300.5, 100.5, 60, 30]
`

func main() {
	var (
		scene   = flag.String("scene", "", "scene file (.toml, .yaml or .yml)")
		output  = flag.String("output", "demo.png", "output file")
		width   = flag.Int("width", 0, "override the scene width")
		height  = flag.Int("height", 0, "override the scene height")
		verbose = flag.Bool("v", false, "log renderer decisions")
	)
	flag.Parse()

	if *verbose {
		vraster.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var (
		s   *Scene
		err error
	)
	if *scene != "" {
		s, err = LoadScene(*scene)
	} else {
		s, err = DecodeScene([]byte(demoScene), ".toml")
	}
	if err != nil {
		log.Fatalf("Failed to load scene: %v", err)
	}
	if *width > 0 {
		s.Width = *width
	}
	if *height > 0 {
		s.Height = *height
	}

	e := vraster.New()
	defer e.Close()

	dst, err := Render(e, s)
	if err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	f, err := os.Create(*output)
	if err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if err := png.Encode(f, dst.RGBA()); err != nil {
		f.Close()
		log.Fatalf("Failed to save: %v", err)
	}
	if err := f.Close(); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Demo saved to %s (%dx%d)\n", *output, s.Width, s.Height)
}
