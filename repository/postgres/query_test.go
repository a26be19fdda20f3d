package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fastygo/taskboard/domain"
	"github.com/fastygo/taskboard/repository"
)

func TestBuildListQuery(t *testing.T) {
	completed := true
	urgent := domain.PriorityUrgent

	tests := []struct {
		name      string
		filter    repository.TaskFilter
		wantConds []string
		wantArgs  []interface{}
	}{
		{
			name:      "owner only",
			filter:    repository.TaskFilter{OwnerID: "u1"},
			wantConds: []string{"user_id = $1"},
			wantArgs:  []interface{}{"u1"},
		},
		{
			name:      "personal tasks",
			filter:    repository.TaskFilter{OwnerID: "u1", OrganizationID: domain.Null[string]()},
			wantConds: []string{"user_id = $1", "organization_id IS NULL"},
			wantArgs:  []interface{}{"u1"},
		},
		{
			name: "all filters",
			filter: repository.TaskFilter{
				OwnerID:        "u1",
				OrganizationID: domain.Set("org"),
				Completed:      &completed,
				Priority:       &urgent,
				Search:         "  50%_off  ",
			},
			wantConds: []string{
				"user_id = $1",
				"organization_id = $2",
				"completed = $3",
				"priority = $4",
				"(title ILIKE $5 OR description ILIKE $5)",
			},
			wantArgs: []interface{}{"u1", "org", true, "urgent", `%50\%\_off%`},
		},
		{
			name:      "blank search ignored",
			filter:    repository.TaskFilter{OwnerID: "u1", Search: "   "},
			wantConds: []string{"user_id = $1"},
			wantArgs:  []interface{}{"u1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildListQuery(tt.filter)
			for _, cond := range tt.wantConds {
				assert.Contains(t, query, cond)
			}
			assert.Equal(t, tt.wantArgs, args)
			assert.NotContains(t, query, "ILIKE $6")
			assert.True(t, strings.HasSuffix(strings.TrimSpace(query), "created_at DESC"))
		})
	}
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%foo%", containsPattern("foo"))
	assert.Equal(t, `%a\\b%`, containsPattern(`a\b`))
}
