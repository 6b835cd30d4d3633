package tilemap

import "testing"

func TestGenerateIndexMap(t *testing.T) {
	m := GenerateIndexMap(DefaultIndexWidth, DefaultIndexHeight)

	if m.Width != 16 || m.Height != 16 {
		t.Fatalf("size = %dx%d, want 16x16", m.Width, m.Height)
	}
	if len(m.Pix) != 16*16*BytesPerTexel {
		t.Fatalf("len(Pix) = %d, want %d", len(m.Pix), 16*16*BytesPerTexel)
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			col, row := m.At(x, y)

			var wantCol, wantRow byte
			switch y {
			case 0:
				wantCol, wantRow = byte(x%2), 0
			case 1:
				wantCol, wantRow = byte(x%2), 1
			default:
				wantCol, wantRow = 8, 0
			}

			if col != wantCol || row != wantRow {
				t.Errorf("texel (%d,%d) = (%d,%d), want (%d,%d)", x, y, col, row, wantCol, wantRow)
			}
		}
	}
}

func TestGenerateIndexMapDefaults(t *testing.T) {
	m := GenerateIndexMap(0, -1)
	if m.Width != DefaultIndexWidth || m.Height != DefaultIndexHeight {
		t.Errorf("size = %dx%d, want default %dx%d", m.Width, m.Height, DefaultIndexWidth, DefaultIndexHeight)
	}
}

func TestNewIndexMap(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		pix     []byte
		wantErr bool
	}{
		{"valid", 2, 1, []byte{1, 2, 3, 4}, false},
		{"short data", 2, 2, []byte{1, 2, 3, 4}, true},
		{"zero width", 0, 2, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewIndexMap(tt.w, tt.h, tt.pix)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewIndexMap() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				if col, row := m.At(1, 0); col != 3 || row != 4 {
					t.Errorf("At(1,0) = (%d,%d), want (3,4)", col, row)
				}
			}
		})
	}
}
