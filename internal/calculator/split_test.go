package calculator

import (
	"testing"
)

func TestEqualSplit(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		n       int
		want    []int64
		wantErr bool
	}{
		{
			name:  "even two-person split",
			total: 300,
			n:     2,
			want:  []int64{150, 150},
		},
		{
			name:  "remainder goes to first participants",
			total: 100,
			n:     3,
			want:  []int64{34, 33, 33},
		},
		{
			name:  "remainder of two",
			total: 101,
			n:     3,
			want:  []int64{34, 34, 33},
		},
		{
			name:  "total smaller than participant count",
			total: 2,
			n:     5,
			want:  []int64{1, 1, 0, 0, 0},
		},
		{
			name:  "single participant takes everything",
			total: 999,
			n:     1,
			want:  []int64{999},
		},
		{
			name:    "zero total should error",
			total:   0,
			n:       2,
			wantErr: true,
		},
		{
			name:    "negative total should error",
			total:   -10,
			n:       2,
			wantErr: true,
		},
		{
			name:    "no participants should error",
			total:   100,
			n:       0,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EqualSplit(tt.total, tt.n)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EqualSplit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("EqualSplit() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("share[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEqualSplit_Conservation(t *testing.T) {
	for total := int64(1); total <= 500; total++ {
		for n := 1; n <= 12; n++ {
			shares, err := EqualSplit(total, n)
			if err != nil {
				t.Fatalf("EqualSplit(%d, %d) failed: %v", total, n, err)
			}
			if sum := Sum(shares); sum != total {
				t.Fatalf("EqualSplit(%d, %d) sums to %d", total, n, sum)
			}
			// Shares never differ by more than one unit
			if shares[0]-shares[n-1] > 1 {
				t.Fatalf("EqualSplit(%d, %d) = %v is not equal", total, n, shares)
			}
		}
	}
}
