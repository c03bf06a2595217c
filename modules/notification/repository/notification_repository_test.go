package repository

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outings-api/modules/notification/entity"
)

func TestNotificationRepository_GetByUserID_Paging(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &entity.Notification{ID: fmt.Sprintf("ntf-%d", i), UserID: "user-1"}))
	}

	cases := []struct {
		name       string
		pageNumber int
		pageSize   int
		want       []string
	}{
		{"first page", 1, 2, []string{"ntf-2", "ntf-1"}},
		{"last partial page", 2, 2, []string{"ntf-0"}},
		{"just past the end", 3, 2, []string{}},
		{"huge page number", 4611686018427387904, 4, []string{}},
		{"max int page number", math.MaxInt, 100, []string{}},
		{"zero page reads as first", 0, 10, []string{"ntf-2", "ntf-1", "ntf-0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, err := repo.GetByUserID(ctx, "user-1", tc.pageNumber, tc.pageSize)
			require.NoError(t, err)
			got := make([]string, 0, len(page.Items))
			for _, n := range page.Items {
				got = append(got, n.ID)
			}
			assert.Equal(t, tc.want, got)
			assert.Equal(t, 3, page.TotalItems)
		})
	}
}
