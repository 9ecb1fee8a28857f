package render

import (
	"crypto/sha256"
	"encoding/hex"
	"reflect"
	"testing"

	"github.com/lixenwraith/vi-mandel/fractal"
	"github.com/lixenwraith/vi-mandel/palette"
)

func TestBufferBounds(t *testing.T) {
	b := NewBuffer(4, 3)
	if b.Width() != 4 || b.Height() != 3 || len(b.Pix()) != 4*3*4 {
		t.Fatalf("dims %dx%d pix %d", b.Width(), b.Height(), len(b.Pix()))
	}

	c := palette.RGB{R: 1, G: 2, B: 3}
	b.Set(3, 2, c)
	if got, ok := b.Get(3, 2); !ok || got != c {
		t.Errorf("Get(3,2) = %+v, %v", got, ok)
	}

	// Out of bounds writes are dropped, reads report !ok
	b.Set(4, 0, c)
	b.Set(-1, 0, c)
	b.Set(0, 3, c)
	if _, ok := b.Get(4, 0); ok {
		t.Error("Get(4,0) reported in bounds")
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if x == 3 && y == 2 {
				continue
			}
			if got, _ := b.Get(x, y); got != Background {
				t.Errorf("pixel (%d,%d) = %+v, want background", x, y, got)
			}
		}
	}
}

func TestBufferFillRectClips(t *testing.T) {
	b := NewBuffer(5, 5)
	c := palette.RGB{R: 200}
	b.FillRect(3, 3, 10, 10, c)

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			got, _ := b.Get(x, y)
			want := Background
			if x >= 3 && y >= 3 {
				want = c
			}
			if got != want {
				t.Errorf("(%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}

	b.FillRect(-5, -5, 0, 2, c) // empty after clipping
	if got, _ := b.Get(0, 0); got != Background {
		t.Errorf("empty rect painted (0,0) = %+v", got)
	}
}

func TestBufferImage(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Set(1, 0, palette.RGB{R: 10, G: 20, B: 30})
	img := b.ToImage()
	if img.Bounds() != b.Bounds() {
		t.Fatalf("bounds %v != %v", img.Bounds(), b.Bounds())
	}
	r, g, bl, a := img.At(1, 0).RGBA()
	if r>>8 != 10 || g>>8 != 20 || bl>>8 != 30 || a>>8 != 255 {
		t.Errorf("At(1,0) = %d %d %d %d", r>>8, g>>8, bl>>8, a>>8)
	}
	if _, _, _, a := b.At(5, 5).RGBA(); a != 0 {
		t.Error("out of bounds At should be transparent")
	}
}

// Frozen at 512x512, depth 50, default palette
// The first region sits below the real axis under y-down and is almost empty
var fullRenderBaselines = []struct {
	name                 string
	x, y, xRange, yRange float64
	histogram            map[int]int
	digest               string
	colours              int
}{
	{
		name: "Below axis", x: -2, y: -2, xRange: 4, yRange: 4,
		histogram: map[int]int{0: 262143, 1: 1},
		digest:    "1bb0ff5d4200e3d6fc7fe10325962c04b17f997adbf89ad798efecf158749f19",
		colours:   2,
	},
	{
		name: "Default region", x: -2, y: 2, xRange: 4, yRange: 4,
		histogram: map[int]int{
			fractal.Inside: 26081,
			0: 56285, 1: 103332, 2: 34597, 3: 14195, 4: 7882, 5: 4549, 6: 3164, 7: 2115, 8: 1632, 9: 1200,
			10: 991, 11: 737, 12: 625, 13: 517, 14: 462, 15: 399, 16: 344, 17: 300, 18: 255, 19: 196,
			20: 202, 21: 168, 22: 157, 23: 134, 24: 140, 25: 104, 26: 90, 27: 98, 28: 92, 29: 102,
			30: 86, 31: 82, 32: 78, 33: 61, 34: 74, 35: 62, 36: 44, 37: 48, 38: 64, 39: 40,
			40: 52, 41: 36, 42: 40, 43: 34, 44: 40, 45: 32, 46: 34, 47: 36, 48: 22, 49: 34,
		},
		digest:  "fc43c62a157742e36ac275aa6341b12e6ad73dce0626bf1ab3a086ff2dc67156",
		colours: 50,
	},
}

func TestRenderFullBaselines(t *testing.T) {
	const (
		width, height = 512, 512
		depth         = 50
	)
	for _, tt := range fullRenderBaselines {
		t.Run(tt.name, func(t *testing.T) {
			v := fractal.NewView(tt.x, tt.y, tt.xRange, tt.yRange, width, height)

			histogram := make(map[int]int)
			for py := 0; py < height; py++ {
				for px := 0; px < width; px++ {
					x, y := v.PixelToComplex(px, py)
					histogram[fractal.Escape(x, y, depth)]++
				}
			}
			if !reflect.DeepEqual(histogram, tt.histogram) {
				t.Errorf("escape histogram = %v, want %v", histogram, tt.histogram)
			}

			buf := RenderFull(&v, palette.Default(depth))
			sum := sha256.Sum256(buf.Pix())
			if got := hex.EncodeToString(sum[:]); got != tt.digest {
				t.Errorf("pixel digest = %s, want %s", got, tt.digest)
			}

			colours := make(map[palette.RGB]struct{})
			for py := 0; py < height; py++ {
				for px := 0; px < width; px++ {
					c, _ := buf.Get(px, py)
					colours[c] = struct{}{}
				}
			}
			if len(colours) != tt.colours {
				t.Errorf("distinct colours = %d, want %d", len(colours), tt.colours)
			}
		})
	}
}

func TestRenderFullMirrorSymmetry(t *testing.T) {
	// Rows 256-k and 256+k sample y = +k*step and -k*step exactly
	v := fractal.NewView(-2, 2, 4, 4, 512, 512)
	buf := RenderFull(&v, palette.Default(50))

	for k := 1; k < 256; k++ {
		for px := 0; px < 512; px++ {
			a, _ := buf.Get(px, 256-k)
			b, _ := buf.Get(px, 256+k)
			if a != b {
				t.Fatalf("pixel %d differs between rows %d and %d: %v vs %v", px, 256-k, 256+k, a, b)
			}
		}
	}
}

func TestRenderFullProgress(t *testing.T) {
	v := fractal.NewView(-2, 2, 4, 4, 16, 7)
	var reports [][2]int
	buf := RenderFullProgress(&v, palette.Default(20), func(done, total int) {
		reports = append(reports, [2]int{done, total})
	})

	if len(reports) != 7 {
		t.Fatalf("got %d reports, want one per row", len(reports))
	}
	for i, r := range reports {
		if r != [2]int{i + 1, 7} {
			t.Errorf("report %d = %v, want [%d 7]", i, r, i+1)
		}
	}
	if !buf.Equal(RenderFull(&v, palette.Default(20))) {
		t.Error("progress reporting changed the image")
	}
}

func TestProgressiveSequence(t *testing.T) {
	v := fractal.NewView(-2, 2, 4, 4, 64, 48)
	pal := palette.Default(40)
	r := NewRenderer(64, 48, DefaultPasses)

	if !r.Pending() || r.Factor() != 2 {
		t.Fatalf("new renderer: pending %v factor %d", r.Pending(), r.Factor())
	}

	if !r.Step(&v, pal) {
		t.Fatal("first pass not rendered")
	}
	// Coarse pass: each 2x2 block carries its origin pixel colour
	buf := r.Buffer()
	for by := 0; by < 48; by += 2 {
		for bx := 0; bx < 64; bx += 2 {
			origin, _ := buf.Get(bx, by)
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					if c, _ := buf.Get(bx+dx, by+dy); c != origin {
						t.Fatalf("block (%d,%d) not uniform at +(%d,%d)", bx, by, dx, dy)
					}
				}
			}
		}
	}

	if r.Factor() != 1 {
		t.Fatalf("second pass factor = %d, want 1", r.Factor())
	}
	if !r.Step(&v, pal) {
		t.Fatal("second pass not rendered")
	}
	if r.Pending() || r.Remaining() != 0 {
		t.Fatalf("still pending after full pass: %d", r.Remaining())
	}

	full := RenderFull(&v, pal)
	if !full.Equal(r.Buffer()) {
		t.Error("final progressive pass differs from full render")
	}

	// Idle steps do nothing
	before := append([]uint8(nil), r.Buffer().Pix()...)
	if r.Step(&v, pal) {
		t.Error("idle step rendered")
	}
	for i := range before {
		if before[i] != r.Buffer().Pix()[i] {
			t.Fatal("idle step modified buffer")
		}
	}
}

func TestProgressiveOddExtentFullyCovered(t *testing.T) {
	// Width and height not divisible by the coarse factor
	v := fractal.NewView(-2, 2, 4, 4, 33, 17)
	pal := palette.New(palette.RGB{R: 255}, palette.RGB{B: 255}, 30)
	r := NewRenderer(33, 17, 3)

	sentinel := palette.RGB{R: 1, G: 2, B: 3}
	r.Buffer().Fill(sentinel)

	if r.Factor() != 4 {
		t.Fatalf("factor = %d, want 4", r.Factor())
	}
	r.Step(&v, pal)
	for y := 0; y < 17; y++ {
		for x := 0; x < 33; x++ {
			if c, _ := r.Buffer().Get(x, y); c == sentinel {
				t.Fatalf("pixel (%d,%d) not overwritten by coarse pass", x, y)
			}
		}
	}
}

func TestInvalidateRestartsSequence(t *testing.T) {
	v := fractal.NewView(-2, 2, 4, 4, 16, 16)
	pal := palette.Default(20)
	r := NewRenderer(16, 16, DefaultPasses)

	r.Step(&v, pal)
	r.Invalidate()
	if r.Remaining() != DefaultPasses || r.Factor() != 2 {
		t.Errorf("after invalidate remaining %d factor %d", r.Remaining(), r.Factor())
	}
}

func TestResizeReallocates(t *testing.T) {
	r := NewRenderer(16, 16, DefaultPasses)
	v := fractal.NewView(-2, 2, 4, 4, 16, 16)
	r.Step(&v, palette.Default(10))
	r.Step(&v, palette.Default(10))
	old := r.Buffer()

	r.Resize(32, 8)
	if r.Buffer() == old {
		t.Error("resize reused the old buffer")
	}
	if r.Buffer().Width() != 32 || r.Buffer().Height() != 8 {
		t.Errorf("new buffer %dx%d", r.Buffer().Width(), r.Buffer().Height())
	}
	if !r.Pending() {
		t.Error("resize must owe a new pass sequence")
	}
}

func TestRenderFullIndependentOfLiveBuffer(t *testing.T) {
	v := fractal.NewView(-2, 2, 4, 4, 20, 20)
	pal := palette.Default(30)
	r := NewRenderer(20, 20, DefaultPasses)
	r.Step(&v, pal)
	live := append([]uint8(nil), r.Buffer().Pix()...)

	full := RenderFull(&v, pal)
	if full == r.Buffer() {
		t.Fatal("RenderFull returned the live buffer")
	}
	if r.Remaining() != DefaultPasses-1 {
		t.Errorf("RenderFull changed pass counter: %d", r.Remaining())
	}
	for i := range live {
		if live[i] != r.Buffer().Pix()[i] {
			t.Fatal("RenderFull modified the live buffer")
		}
	}
}

func TestNewRendererDefaultsPasses(t *testing.T) {
	if r := NewRenderer(4, 4, 0); r.Passes() != DefaultPasses {
		t.Errorf("passes = %d, want %d", r.Passes(), DefaultPasses)
	}
}
