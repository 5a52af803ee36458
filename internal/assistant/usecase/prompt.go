package usecase

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// promptInput is everything the system instruction depends on.
type promptInput struct {
	TaskNames     []string
	TaskListNames []string
	Now           time.Time
}

// buildSystemPrompt renders the instruction sent with every request. Equal
// inputs give byte-identical output.
func buildSystemPrompt(in promptInput) string {
	return fmt.Sprintf(systemPromptTemplate,
		buildTimeContext(in.Now),
		bulletList(normalizeNames(in.TaskListNames)),
		bulletList(normalizeNames(in.TaskNames)),
	)
}

// buildTimeContext describes now, tomorrow and the Monday-Sunday week around now.
func buildTimeContext(now time.Time) string {
	weekday := int(now.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	weekStart := now.AddDate(0, 0, -(weekday - 1))
	weekEnd := weekStart.AddDate(0, 0, 6)
	tomorrow := now.AddDate(0, 0, 1)

	return fmt.Sprintf(timeContextTemplate,
		now.Format(modelDateLayout),
		now.Format("15:04"),
		now.Location().String(),
		now.Weekday().String()+", "+now.Format(modelDateLayout),
		tomorrow.Weekday().String()+", "+tomorrow.Format(modelDateLayout),
		weekStart.Format(modelDateLayout),
		weekEnd.Format(modelDateLayout),
	)
}

// normalizeNames trims, drops blanks and case-insensitive duplicates, and
// sorts. The first spelling seen in sorted order wins.
func normalizeNames(names []string) []string {
	cleaned := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			cleaned = append(cleaned, n)
		}
	}
	sort.Slice(cleaned, func(i, j int) bool {
		li, lj := strings.ToLower(cleaned[i]), strings.ToLower(cleaned[j])
		if li != lj {
			return li < lj
		}
		return cleaned[i] < cleaned[j]
	})

	out := cleaned[:0]
	for i, n := range cleaned {
		if i > 0 && strings.EqualFold(n, out[len(out)-1]) {
			continue
		}
		out = append(out, n)
	}
	return out
}

func bulletList(names []string) string {
	if len(names) == 0 {
		return "(none)"
	}
	var sb strings.Builder
	for i, n := range names {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("- ")
		sb.WriteString(n)
	}
	return sb.String()
}
