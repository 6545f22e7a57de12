package layerseg

import "testing"

func TestDetectEdgesUniform(t *testing.T) {
	edges := DetectEdges(solidImage(4, 4, red))
	for i, v := range edges.Pix {
		if v != 0 {
			t.Fatalf("uniform image: edge intensity %d at index %d, want 0", v, i)
		}
	}
}

func TestDetectEdgesBorderStaysZero(t *testing.T) {
	edges := DetectEdges(splitImage(8, 8, black, white))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x == 0 || x == 7 || y == 0 || y == 7 {
				if v := edges.Pix[y*8+x]; v != 0 {
					t.Errorf("border pixel (%d,%d) = %d, want 0", x, y, v)
				}
			}
		}
	}
}

func TestDetectEdgesVerticalBoundary(t *testing.T) {
	edges := DetectEdges(splitImage(8, 8, black, white))
	// Interior rows must see the color boundary around x=4.
	found := false
	for y := 1; y < 7; y++ {
		if edges.Pix[y*8+4] > 0 || edges.Pix[y*8+3] > 0 {
			found = true
		}
	}
	if !found {
		t.Fatal("no edge intensity along the color boundary")
	}
	// Flat areas away from the boundary stay quiet.
	for y := 1; y < 7; y++ {
		if v := edges.Pix[y*8+1]; v != 0 {
			t.Errorf("flat pixel (1,%d) = %d, want 0", y, v)
		}
	}
}

func TestThresholdEdges(t *testing.T) {
	in := &EdgeMap{W: 5, H: 1, Pix: []uint8{0, 39, 40, 41, 255}}
	out := ThresholdEdges(in, 40)
	want := []uint8{0, 0, 255, 255, 255}
	for i, v := range out.Pix {
		if v != want[i] {
			t.Errorf("threshold at %d = %d, want %d", i, v, want[i])
		}
	}
	// Input untouched.
	if in.Pix[1] != 39 {
		t.Error("ThresholdEdges modified its input")
	}
}
