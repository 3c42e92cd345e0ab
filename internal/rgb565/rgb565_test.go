package rgb565

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPack(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    Color
	}{
		{name: "Black", want: Black},
		{name: "White", r: 255, g: 255, b: 255, want: White},
		{name: "Red", r: 255, want: 0xF800},
		{name: "Green", g: 255, want: 0x07E0},
		{name: "Blue", b: 255, want: 0x001F},
		{name: "Truncates low bits", r: 0x07, g: 0x03, b: 0x07, want: Black},
		{name: "Played green", r: 0x1d, g: 0xb9, b: 0x54, want: 0x1DCA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Pack(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("Pack(%d,%d,%d) = %#04x, want %#04x", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestFromRGB888(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{name: "Empty", in: nil, want: []byte{}},
		{name: "Red pixel", in: []byte{255, 0, 0}, want: []byte{0xF8, 0x00}},
		{name: "Blue pixel", in: []byte{0, 0, 255}, want: []byte{0x00, 0x1F}},
		{
			name: "Two pixels",
			in:   []byte{0, 255, 0, 255, 255, 255},
			want: []byte{0x07, 0xE0, 0xFF, 0xFF},
		},
		{name: "Partial trailing pixel", in: []byte{255, 0, 0, 9}, want: []byte{0xF8, 0x00}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromRGB888(tt.in)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromRGB888 mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFromRGB888LengthAndDeterminism(t *testing.T) {
	for n := 0; n <= 30; n++ {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte(i * 37)
		}
		first := FromRGB888(buf)
		if len(first) != n*2/3 {
			t.Fatalf("len(FromRGB888(%d bytes)) = %d, want %d", n, len(first), n*2/3)
		}
		if diff := cmp.Diff(first, FromRGB888(buf)); diff != "" {
			t.Fatalf("output not deterministic for %d bytes:\n%s", n, diff)
		}
	}
}

func TestBufferMatchesPack(t *testing.T) {
	out := FromRGB888([]byte{0x12, 0x34, 0x56})
	c := Pack(0x12, 0x34, 0x56)
	if got := FromBytes(out[0], out[1]); got != c {
		t.Errorf("buffer word %#04x != Pack %#04x", got, c)
	}
	if b := c.Bytes(); b != [2]byte{out[0], out[1]} {
		t.Errorf("Bytes() = %v, want %v", b, out)
	}
}

func TestModel(t *testing.T) {
	got := Model.Convert(color.RGBA{R: 255, A: 255})
	if got != Color(0xF800) {
		t.Errorf("Model.Convert(red) = %v, want 0xF800", got)
	}
	if got := Model.Convert(White); got != White {
		t.Errorf("Model.Convert(White) = %v", got)
	}
	r, g, b, a := White.RGBA()
	if r != 0xFFFF || g != 0xFFFF || b != 0xFFFF || a != 0xFFFF {
		t.Errorf("White.RGBA() = %d,%d,%d,%d", r, g, b, a)
	}
}
