package sizeutil

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 Bytes"},
		{1, "1 Bytes"},
		{500, "500 Bytes"},
		{1023, "1023 Bytes"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{2 * MB, "2.00 MB"},
		{15309209, "14.60 MB"},
		{GB, "1.00 GB"},
		{GB + GB/2, "1.50 GB"},
		{10 * GB, "10.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Format(tt.bytes)
			if got != tt.want {
				t.Errorf("Format(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		label   string
		want    int64
		wantErr bool
	}{
		{"", 0, false},
		{"   ", 0, false},
		{"500 Bytes", 500, false},
		{"500 bytes", 500, false},
		{"1 Byte", 1, false},
		{"42 B", 42, false},
		{"1.00 KB", 1024, false},
		{"1.50 KB", 1536, false},
		{"2.00 MB", 2 * MB, false},
		{"2.00 mb", 2 * MB, false},
		{"1.00 GB", GB, false},
		{"  1.00 GB  ", GB, false},
		{"1.00GB", 0, true},   // missing separator
		{"lots KB", 0, true},  // non-numeric value
		{"1.00 XB", 0, true},  // unknown unit
		{"1 2 KB", 0, true},   // too many fields
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := Parse(tt.label)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %d", tt.label, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.label, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}

func TestParse_OrdersDisplayLabels(t *testing.T) {
	// Listing rows carry labels, not byte counts; size sorting depends on
	// parsed values keeping the natural order across units.
	labels := []string{"500 Bytes", "1.00 KB", "2.00 MB", "1.00 GB"}

	var prev int64 = -1
	for _, label := range labels {
		n, err := Parse(label)
		if err != nil {
			t.Fatalf("Parse(%q) returned error: %v", label, err)
		}
		if n <= prev {
			t.Errorf("Parse(%q) = %d, not greater than previous %d", label, n, prev)
		}
		prev = n
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	for _, bytes := range []int64{0, 1, 512, 1024, 4096, 5 * MB, 3 * GB} {
		label := Format(bytes)
		parsed, err := Parse(label)
		if err != nil {
			t.Fatalf("Parse(Format(%d)) returned error: %v", bytes, err)
		}
		// Two-decimal labels lose precision; round-tripping must stay
		// within half a unit of the original.
		diff := bytes - parsed
		if diff < 0 {
			diff = -diff
		}
		if diff > bytes/100 {
			t.Errorf("round trip %d -> %q -> %d drifted too far", bytes, label, parsed)
		}
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		used  int64
		total int64
		want  int
	}{
		{"quarter of quota", 2560 * MB, 10 * GB, 25},
		{"empty", 0, 10 * GB, 0},
		{"full", 10 * GB, 10 * GB, 100},
		{"over quota clamps", 12 * GB, 10 * GB, 100},
		{"zero total", 5 * GB, 0, 0},
		{"negative total", 5 * GB, -1, 0},
		{"negative used", -5, 10 * GB, 0},
		{"rounds down", 1, 3, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percent(tt.used, tt.total)
			if got != tt.want {
				t.Errorf("Percent(%d, %d) = %d, want %d", tt.used, tt.total, got, tt.want)
			}
		})
	}
}
