package service

import "testing"

func TestPaginate(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int
		wantPages  int
		wantNext   bool
		wantPrev   bool
		wantNextPg int // 0 means nil
		wantPrevPg int
	}{
		{"first of three pages", 1, 10, 25, 3, true, false, 2, 0},
		{"middle page", 2, 10, 25, 3, true, true, 3, 1},
		{"last partial page", 3, 10, 25, 3, false, true, 0, 2},
		{"exact fit", 2, 10, 20, 2, false, true, 0, 1},
		{"empty result", 1, 10, 0, 0, false, false, 0, 0},
		{"single item", 1, 10, 1, 1, false, false, 0, 0},
		{"page beyond the end", 5, 10, 25, 3, false, true, 0, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginate(tt.page, tt.limit, tt.total)

			if p.TotalPages != tt.wantPages {
				t.Errorf("TotalPages = %d, want %d", p.TotalPages, tt.wantPages)
			}
			if p.TotalItems != tt.total {
				t.Errorf("TotalItems = %d, want %d", p.TotalItems, tt.total)
			}
			if p.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", p.HasNext, tt.wantNext)
			}
			if p.HasPrev != tt.wantPrev {
				t.Errorf("HasPrev = %v, want %v", p.HasPrev, tt.wantPrev)
			}

			if tt.wantNextPg == 0 {
				if p.NextPage != nil {
					t.Errorf("NextPage = %d, want nil", *p.NextPage)
				}
			} else if p.NextPage == nil || *p.NextPage != tt.wantNextPg {
				t.Errorf("NextPage = %v, want %d", p.NextPage, tt.wantNextPg)
			}

			if tt.wantPrevPg == 0 {
				if p.PrevPage != nil {
					t.Errorf("PrevPage = %d, want nil", *p.PrevPage)
				}
			} else if p.PrevPage == nil || *p.PrevPage != tt.wantPrevPg {
				t.Errorf("PrevPage = %v, want %d", p.PrevPage, tt.wantPrevPg)
			}
		})
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, 10},
		{-5, 10},
		{1, 1},
		{50, 50},
		{51, 10},
		{10000, 10},
	}
	for _, tt := range tests {
		if got := clampLimit(tt.limit, 10, 50); got != tt.want {
			t.Errorf("clampLimit(%d, 10, 50) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestClampPage(t *testing.T) {
	if got := clampPage(0); got != 1 {
		t.Errorf("clampPage(0) = %d, want 1", got)
	}
	if got := clampPage(-10); got != 1 {
		t.Errorf("clampPage(-10) = %d, want 1", got)
	}
	if got := clampPage(7); got != 7 {
		t.Errorf("clampPage(7) = %d, want 7", got)
	}
}
