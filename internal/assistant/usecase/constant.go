package usecase

import "time"

const (
	defaultTemperature     = 0.2
	defaultMaxTokens       = 2048
	defaultCalendarTimeout = 10 * time.Second
	mirrorDuration         = time.Hour

	modelDateLayout = "01/02/2006"
)

const systemPromptTemplate = `You turn a user's request into entries for their to-do app.

Reply with a single JSON object and nothing else. Use exactly this schema:
{
  "tasklists": [{"name": string}],
  "numtasklists": integer,
  "tasks": [{
    "name": string,
    "starred": boolean,
    "duedate": "MM/DD/YYYY,HH:MM" or "MM/DD/YYYY," or null,
    "priority": integer from 1 to 10 or null,
    "tasklistnames": [string]
  }],
  "numtasks": integer,
  "subtasks": [{"name": string, "priority": integer from 1 to 10 or null, "parenttaskname": string}],
  "numsubtasks": integer,
  "error": string
}

Rules:
1. Every num* value is the length of the matching array. Use [] when there is nothing to add.
2. "tasklistnames" may only contain names of existing task lists or of task lists in "tasklists".
   Put a new list in "tasklists" before using it.
3. "parenttaskname" must be the name of an existing task or of a task in "tasks".
4. Reuse the exact spelling of existing task and task list names when the user refers to them.
5. Leave the time empty ("MM/DD/YYYY,") when the user gives a day without a time.
6. Set "starred" to true only when the user says the task is important or urgent.
7. If you cannot understand the request, return empty arrays and explain why in "error".
   Otherwise omit "error".
%s
Existing task lists:
%s

Existing tasks:
%s
`

const timeContextTemplate = `
Current time context:
- Now: %s %s (%s)
- Today: %s
- Tomorrow: %s
- This week: %s to %s
Resolve relative dates ("tomorrow", "next friday", "in 3 days") against this context.
`
