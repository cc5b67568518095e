// Command strokedemo demonstrates the stroker path stroking library.
//
// It strokes a set of showcase paths (joins, caps, dashes, conics),
// rasterizes the resulting outlines with golang.org/x/image/vector and
// writes the result to a PNG file.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log"
	"os"

	"golang.org/x/image/vector"

	"github.com/gogpu/stroker"
)

func main() {
	var (
		width  = flag.Int("width", 800, "image width")
		height = flag.Int("height", 600, "image height")
		output = flag.String("output", "strokes.png", "output file")
	)
	flag.Parse()

	dst := image.NewRGBA(image.Rect(0, 0, *width, *height))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for _, demo := range demos() {
		outline := stroker.Stroked(demo.path, demo.style)
		fillOutline(dst, outline, demo.color)
	}

	if err := savePNG(*output, dst); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, *width, *height)
}

type demo struct {
	path  *stroker.Path
	style stroker.Stroke
	color color.Color
}

func demos() []demo {
	zigzag := stroker.BuildPath().
		MoveTo(0, 60).LineTo(60, 0).LineTo(120, 60).LineTo(180, 0).
		Build()

	bend := stroker.BuildPath().
		MoveTo(0, 0).LineTo(100, 0).LineTo(100, 100).
		Build()

	wave := stroker.BuildPath().
		MoveTo(0, 50).
		CubicTo(50, -50, 130, 150, 180, 50).
		Build()

	at := func(p *stroker.Path, x, y float64) *stroker.Path {
		return p.Transform(stroker.Translate(x, y))
	}

	return []demo{
		// Join styles on the same zigzag.
		{at(zigzag, 40, 60), stroker.DefaultStroke().WithWidth(14).WithMiterLimit(6), color.RGBA{0x33, 0x66, 0xcc, 0xff}},
		{at(zigzag, 280, 60), stroker.RoundStroke().WithWidth(14), color.RGBA{0xcc, 0x55, 0x33, 0xff}},
		{at(zigzag, 520, 60), stroker.DefaultStroke().WithWidth(14).WithJoin(stroker.LineJoinBevel), color.RGBA{0x33, 0x99, 0x55, 0xff}},

		// Cap styles.
		{at(bend, 60, 200), stroker.DefaultStroke().WithWidth(16), color.RGBA{0x55, 0x44, 0xaa, 0xff}},
		{at(bend, 300, 200), stroker.RoundStroke().WithWidth(16), color.RGBA{0xaa, 0x44, 0x88, 0xff}},
		{at(bend, 540, 200), stroker.SquareStroke().WithWidth(16).WithJoin(stroker.LineJoinMiterClip).WithMiterLimit(1.2), color.RGBA{0x22, 0x88, 0x99, 0xff}},

		// A true circle from conic quadrants, stroked and dashed.
		{stroker.BuildPath().Circle(160, 460, 70).Build(), stroker.DefaultStroke().WithWidth(10), color.RGBA{0xdd, 0x88, 0x22, 0xff}},
		{stroker.BuildPath().Circle(400, 460, 70).Build(), stroker.DashedStroke(18, 12).WithWidth(8).WithCap(stroker.LineCapRound), color.RGBA{0x44, 0x44, 0x44, 0xff}},

		// Cubic with curvature-driven subdivision.
		{at(wave, 560, 420), stroker.RoundStroke().WithWidth(12), color.RGBA{0x88, 0x33, 0xcc, 0xff}},
	}
}

// fillOutline rasterizes a closed outline with the signed-area
// accumulation of x/image/vector, so the two rings of closed contours
// cut a proper hole.
func fillOutline(dst *image.RGBA, outline *stroker.Path, c color.Color) {
	bounds := dst.Bounds()
	r := vector.NewRasterizer(bounds.Dx(), bounds.Dy())
	for _, poly := range stroker.FlattenPath(outline, 0.1) {
		if len(poly) < 2 {
			continue
		}
		r.MoveTo(float32(poly[0].X), float32(poly[0].Y))
		for _, p := range poly[1:] {
			r.LineTo(float32(p.X), float32(p.Y))
		}
		r.ClosePath()
	}
	r.Draw(dst, bounds, image.NewUniform(c), image.Point{})
}

func savePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
