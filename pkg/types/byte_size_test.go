// SPDX-License-Identifier: MPL-2.0

package types

import "testing"

func TestParseByteSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    uint64
		wantErr bool
	}{
		{in: "4M", want: 4 << 20},
		{in: "1m", want: 1 << 20},
		{in: "512k", want: 512 << 10},
		{in: "2G", want: 2 << 30},
		{in: "1.5M", want: 3 << 19},
		{in: "4 M", want: 4 << 20},
		{in: "4MiB", want: 4 << 20},
		{in: "4MB", want: 4_000_000},
		{in: "1048576", want: 1 << 20},
		{in: "lots", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseByteSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseByteSize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseByteSize(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
