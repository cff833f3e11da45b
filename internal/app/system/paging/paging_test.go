package paging

import (
	"math"
	"net/http/httptest"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		number, limit int
		want          Page
	}{
		{"defaults", 0, 0, Page{1, DefaultLimit}},
		{"negative page", -3, 5, Page{1, 5}},
		{"explicit", 3, 20, Page{3, 20}},
		{"capped", 1, 5000, Page{1, MaxLimit}},
		{"huge page", math.MaxInt, 12, Page{MaxNumber, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := New(tt.number, tt.limit); got != tt.want {
				t.Errorf("New(%d,%d) = %+v, want %+v", tt.number, tt.limit, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		target string
		want   Page
	}{
		{"/properties", Page{1, 12}},
		{"/properties?page=2&limit=5", Page{2, 5}},
		{"/properties?page=abc&limit=xyz", Page{1, 12}},
		{"/properties?page=0&limit=-1", Page{1, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			got := Parse(httptest.NewRequest("GET", tt.target, nil))
			if got != tt.want {
				t.Errorf("Parse = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSkipAndPages(t *testing.T) {
	p := New(3, 12)
	if p.Skip() != 24 {
		t.Errorf("Skip = %d, want 24", p.Skip())
	}

	tests := []struct {
		total int64
		want  int64
	}{
		{0, 0},
		{1, 1},
		{12, 1},
		{13, 2},
		{25, 3},
	}
	for _, tt := range tests {
		if got := p.Pages(tt.total); got != tt.want {
			t.Errorf("Pages(%d) = %d, want %d", tt.total, got, tt.want)
		}
	}
}

func TestSkip_HugePageStaysPositive(t *testing.T) {
	for _, target := range []string{
		"/properties?page=900000000000000000",
		"/properties?page=900000000000000000&limit=100",
		"/properties?page=99999999999999999999999",
	} {
		p := Parse(httptest.NewRequest("GET", target, nil))
		if p.Skip() < 0 {
			t.Errorf("%s: Skip = %d, want >= 0", target, p.Skip())
		}
		if p.Number > MaxNumber {
			t.Errorf("%s: Number = %d, want <= %d", target, p.Number, MaxNumber)
		}
	}
}
