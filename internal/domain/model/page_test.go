package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPage(t *testing.T) {
	tests := []struct {
		name string
		page Page[int]
		want PaginationState
	}{
		{
			name: "first of three",
			page: Page[int]{CurrentPage: 1, TotalPages: 3, TotalItems: 25, HasNextPage: true},
			want: PaginationState{CurrentPage: 0, PageSize: 10, TotalPages: 3, TotalItems: 25, HasNextPage: true},
		},
		{
			name: "middle page",
			page: Page[int]{CurrentPage: 2, TotalPages: 3, TotalItems: 25},
			want: PaginationState{CurrentPage: 1, PageSize: 10, TotalPages: 3, TotalItems: 25, HasNextPage: true, HasPreviousPage: true},
		},
		{
			name: "last page",
			page: Page[int]{CurrentPage: 3, TotalPages: 3, TotalItems: 25, HasNextPage: true},
			want: PaginationState{CurrentPage: 2, PageSize: 10, TotalPages: 3, TotalItems: 25, HasPreviousPage: true},
		},
		{
			name: "empty result",
			page: Page[int]{CurrentPage: 1, TotalPages: 0},
			want: PaginationState{PageSize: 10},
		},
		{
			name: "page beyond total is clamped",
			page: Page[int]{CurrentPage: 9, TotalPages: 2},
			want: PaginationState{CurrentPage: 1, PageSize: 10, TotalPages: 2, HasPreviousPage: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromPage(tt.page, 10)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.CurrentPage > 0, got.HasPreviousPage)
			assert.Equal(t, got.CurrentPage < got.TotalPages-1, got.HasNextPage)
		})
	}
}

func TestNewPaginationState(t *testing.T) {
	assert.Equal(t, PaginationState{PageSize: 1}, NewPaginationState(0))
	assert.Equal(t, 25, NewPaginationState(25).PageSize)
}

func TestFilterParams(t *testing.T) {
	assert.Equal(t, map[string]string{"Role": "", "Status": "2"}, EmployeeFilter{Status: "2"}.Params())
	assert.Equal(t, map[string]string{"LineId": "4", "DayType": ""}, LineScheduleFilter{LineID: "4"}.Params())
	assert.Nil(t, NoFilter{}.Params())
	assert.Equal(t, map[string]string{"x": "y"}, MapFilter{"x": "y"}.Params())
}

func TestRoleAndTypeRules(t *testing.T) {
	for _, r := range []int{0, 1, 2} {
		assert.False(t, RoleRequiresCNH(r))
		assert.True(t, IsBusType(r))
	}
	assert.True(t, RoleRequiresCNH(3))
	assert.False(t, IsBusType(5))
}

func TestMaintenanceCostDecoding(t *testing.T) {
	var m Maintenance
	require.NoError(t, json.Unmarshal([]byte(`{"id":3,"vehicleId":7,"sector":1,"description":"brakes","startDate":"2024-05-01T08:00","cost":1234.5}`), &m))
	require.NotNil(t, m.Cost)
	assert.True(t, decimal.RequireFromString("1234.50").Equal(*m.Cost))
	assert.Nil(t, m.EndDate)
}
