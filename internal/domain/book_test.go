package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCatalogFilterNormalize(t *testing.T) {
	tests := []struct {
		name       string
		filter     CatalogFilter
		wantPage   int
		wantLimit  int
		wantMax    string
		wantOffset int
	}{
		{
			name:       "zero filter gets defaults",
			filter:     CatalogFilter{},
			wantPage:   1,
			wantLimit:  12,
			wantMax:    "999999",
			wantOffset: 0,
		},
		{
			name:       "negative page clamps to one",
			filter:     CatalogFilter{Page: -3, Limit: 20},
			wantPage:   1,
			wantLimit:  20,
			wantMax:    "999999",
			wantOffset: 0,
		},
		{
			name:       "explicit values survive",
			filter:     CatalogFilter{Page: 3, Limit: 10, PriceMax: decimal.NewFromInt(50)},
			wantPage:   3,
			wantLimit:  10,
			wantMax:    "50",
			wantOffset: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Normalize()

			if got.Page != tt.wantPage {
				t.Errorf("page = %d, want %d", got.Page, tt.wantPage)
			}
			if got.Limit != tt.wantLimit {
				t.Errorf("limit = %d, want %d", got.Limit, tt.wantLimit)
			}
			if got.PriceMax.String() != tt.wantMax {
				t.Errorf("price max = %s, want %s", got.PriceMax.String(), tt.wantMax)
			}
			if got.Offset() != tt.wantOffset {
				t.Errorf("offset = %d, want %d", got.Offset(), tt.wantOffset)
			}
		})
	}
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{25, 12, 3},
		{100, 10, 10},
		{5, 0, 0},
	}

	for _, tt := range tests {
		if got := PageCount(tt.total, tt.limit); got != tt.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestBookEnums(t *testing.T) {
	for _, c := range []BookCategory{CategoryFiction, CategoryNonFiction, CategoryAcademic, CategoryTextbook, CategoryNovel} {
		if !c.Valid() {
			t.Errorf("category %q should be valid", c)
		}
	}
	if BookCategory("poetry").Valid() {
		t.Error("unknown category should be invalid")
	}

	for _, c := range []BookCondition{ConditionExcellent, ConditionGood, ConditionFair, ConditionPoor} {
		if !c.Valid() {
			t.Errorf("condition %q should be valid", c)
		}
	}
	if BookCondition("mint").Valid() {
		t.Error("unknown condition should be invalid")
	}
}
