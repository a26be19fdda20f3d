package postgres

import (
	"fmt"
	"strings"

	"github.com/fastygo/taskboard/repository"
)

const taskColumns = `id::text, user_id, organization_id::text, title, description, completed, priority, due_date, created_at, updated_at`

const priorityOrder = `
	ORDER BY CASE priority
		WHEN 'urgent' THEN 1
		WHEN 'high' THEN 2
		WHEN 'medium' THEN 3
		WHEN 'low' THEN 4
	END ASC, created_at DESC`

// buildListQuery renders the list statement for filter. The owner predicate is
// always the first condition.
func buildListQuery(filter repository.TaskFilter) (string, []interface{}) {
	args := []interface{}{filter.OwnerID}
	conds := []string{"user_id = $1"}

	bind := func(expr string, value interface{}) {
		args = append(args, value)
		conds = append(conds, strings.ReplaceAll(expr, "?", fmt.Sprintf("$%d", len(args))))
	}

	if filter.OrganizationID.Present {
		if org, ok := filter.OrganizationID.Get(); ok {
			bind("organization_id = ?", org)
		} else {
			conds = append(conds, "organization_id IS NULL")
		}
	}
	if filter.Completed != nil {
		bind("completed = ?", *filter.Completed)
	}
	if filter.Priority != nil {
		bind("priority = ?", string(*filter.Priority))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		bind("(title ILIKE ? OR description ILIKE ?)", containsPattern(search))
	}

	query := "SELECT " + taskColumns + "\n\tFROM tasks\n\tWHERE " +
		strings.Join(conds, "\n\t  AND ") + priorityOrder
	return query, args
}
