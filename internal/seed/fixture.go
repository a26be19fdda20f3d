// Package seed loads demo tasks from YAML fixtures or generates them.
package seed

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"gopkg.in/yaml.v3"

	"github.com/fastygo/taskboard/domain"
)

// Fixture is the YAML document read by taskctl seed.
type Fixture struct {
	Tasks []FixtureTask `yaml:"tasks"`
}

// FixtureTask is one task to create. Due accepts RFC 3339 or English phrases
// such as "next friday" or "in 3 days", resolved against the seed time.
type FixtureTask struct {
	UserID         string  `yaml:"user_id"`
	OrganizationID *string `yaml:"organization_id"`
	Title          string  `yaml:"title"`
	Description    *string `yaml:"description"`
	Priority       string  `yaml:"priority"`
	Completed      bool    `yaml:"completed"`
	Due            string  `yaml:"due"`
}

// LoadFile reads a fixture from path.
func LoadFile(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a fixture and rejects tasks without an owner.
func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	for i, t := range fx.Tasks {
		if strings.TrimSpace(t.UserID) == "" {
			return nil, fmt.Errorf("task %d (%q): user_id is required", i, t.Title)
		}
	}
	return &fx, nil
}

// DueParser resolves fixture due dates.
type DueParser struct {
	w *when.Parser
}

func NewDueParser() *DueParser {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	return &DueParser{w: w}
}

// Parse returns nil for an empty value.
func (p *DueParser) Parse(value string, base time.Time) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	res, err := p.w.Parse(value, base)
	if err != nil {
		return nil, fmt.Errorf("parse due %q: %w", value, err)
	}
	if res == nil {
		return nil, fmt.Errorf("parse due %q: not a recognizable date", value)
	}
	t := res.Time.UTC()
	return &t, nil
}

// Demo builds the default demo set: five personal tasks per user and five
// tasks per organization shared between the users, cycling through the
// priorities.
func Demo(users []string, orgs []string) *Fixture {
	fx := &Fixture{}
	for u, user := range users {
		for i := 0; i < 5; i++ {
			fx.Tasks = append(fx.Tasks, FixtureTask{
				UserID:    user,
				Title:     fmt.Sprintf("Personal task %d", i+1),
				Priority:  domain.Priorities[i%len(domain.Priorities)].String(),
				Completed: i%(u+2) == 0,
				Due:       fmt.Sprintf("in %d days", i+1),
			})
		}
	}
	if len(users) == 0 {
		return fx
	}
	for o, org := range orgs {
		org := org
		for i := 0; i < 5; i++ {
			fx.Tasks = append(fx.Tasks, FixtureTask{
				UserID:         users[(o+i)%len(users)],
				OrganizationID: &org,
				Title:          fmt.Sprintf("Team task %d", i+1),
				Priority:       domain.Priorities[i%len(domain.Priorities)].String(),
				Completed:      i%(o+3) == 0,
				Due:            fmt.Sprintf("in %d days", 2*(i+1)),
			})
		}
	}
	return fx
}
