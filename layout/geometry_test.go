package layout

import (
	"strings"
	"testing"
)

func TestGeometryForBank(t *testing.T) {
	tests := []struct {
		name      string
		bankSize  uint32
		pageSize  uint32
		wantPages uint32
		wantErr   bool
		errMsg    string
	}{
		{
			name:      "two pages",
			bankSize:  2 * DefaultPageSize,
			pageSize:  DefaultPageSize,
			wantPages: 1,
		},
		{
			name:      "eight pages",
			bankSize:  8 * 256,
			pageSize:  256,
			wantPages: 4,
		},
		{
			name:     "odd page count",
			bankSize: 3 * 256,
			pageSize: 256,
			wantErr:  true,
			errMsg:   "multiple of two pages",
		},
		{
			name:     "zero bank",
			bankSize: 0,
			pageSize: 256,
			wantErr:  true,
			errMsg:   "pages per pool",
		},
		{
			name:     "page smaller than header",
			bankSize: 64,
			pageSize: 32,
			wantErr:  true,
			errMsg:   "page size",
		},
		{
			name:     "zero page size",
			bankSize: 4096,
			pageSize: 0,
			wantErr:  true,
			errMsg:   "bank size",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := GeometryForBank(tt.bankSize, tt.pageSize)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errMsg)
				}
				if !IsGeometryError(err) {
					t.Errorf("error type = %T, want *GeometryError", err)
				}
				if !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error = %v, want substring %q", err, tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if g.PagesPerPool != tt.wantPages {
				t.Errorf("PagesPerPool = %d, want %d", g.PagesPerPool, tt.wantPages)
			}
			if g.BankSize() != tt.bankSize {
				t.Errorf("BankSize() = %d, want %d", g.BankSize(), tt.bankSize)
			}
		})
	}
}

func TestGeometryPools(t *testing.T) {
	g := Geometry{PageSize: 64, PagesPerPool: 3}

	if got := g.SlotsPerPage(); got != 4 {
		t.Errorf("SlotsPerPage() = %d, want 4", got)
	}
	if got := g.SlotsPerPool(); got != 12 {
		t.Errorf("SlotsPerPool() = %d, want 12", got)
	}
	if got := g.PageCount(); got != 6 {
		t.Errorf("PageCount() = %d, want 6", got)
	}

	tests := []struct {
		page      uint32
		start     uint32
		end       uint32
		otherPool uint32
	}{
		{page: 0, start: 0, end: 2, otherPool: 3},
		{page: 2, start: 0, end: 2, otherPool: 3},
		{page: 3, start: 3, end: 5, otherPool: 0},
		{page: 5, start: 3, end: 5, otherPool: 0},
	}
	for _, tt := range tests {
		if got := g.PoolStart(tt.page); got != tt.start {
			t.Errorf("PoolStart(%d) = %d, want %d", tt.page, got, tt.start)
		}
		if got := g.PoolEnd(tt.page); got != tt.end {
			t.Errorf("PoolEnd(%d) = %d, want %d", tt.page, got, tt.end)
		}
		if got := g.OtherPoolStart(tt.page); got != tt.otherPool {
			t.Errorf("OtherPoolStart(%d) = %d, want %d", tt.page, got, tt.otherPool)
		}
	}

	if got := g.SlotOffset(0); got != HeaderSize {
		t.Errorf("SlotOffset(0) = %d, want %d", got, HeaderSize)
	}
	if got := g.SlotOffset(3); got != 56 {
		t.Errorf("SlotOffset(3) = %d, want 56", got)
	}
}

func TestAlignment(t *testing.T) {
	if got := AlignUp[uint32](13, 8); got != 16 {
		t.Errorf("AlignUp(13, 8) = %d, want 16", got)
	}
	if got := AlignDown[uint32](13, 8); got != 8 {
		t.Errorf("AlignDown(13, 8) = %d, want 8", got)
	}
	if !IsAligned[uint64](4096, 2048) {
		t.Error("IsAligned(4096, 2048) = false")
	}
	if IsAligned[uint32](10, 0) {
		t.Error("IsAligned(10, 0) = true")
	}
}
