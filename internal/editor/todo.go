package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/yata-app/yata/todo"
)

// TodoData is the editable view of a todo rendered into the editor buffer.
type TodoData struct {
	// Title is the todo title.
	Title string
	// Scheduled is the day in YYYY-MM-DD form, or "long-term" for the
	// undated backlog.
	Scheduled string
	// List is the name of the list the todo belongs to. Empty means none.
	List string
	// Notes is the markdown body below the frontmatter.
	Notes string
}

// DataFromTodo builds TodoData from an existing todo. listName is the
// resolved display name for the todo's list, empty when it has none.
func DataFromTodo(t todo.Todo, listName string) TodoData {
	scheduled := "long-term"
	if !t.LongTerm {
		scheduled = t.ScheduledFor.Local().Format("2006-01-02")
	}
	return TodoData{
		Title:     t.Title,
		Scheduled: scheduled,
		List:      listName,
		Notes:     t.Notes,
	}
}

var todoTemplate = template.Must(template.New("todo").Parse(`title = {{ printf "%q" .Title }}
scheduled = {{ printf "%q" .Scheduled }} # YYYY-MM-DD, or "long-term"
list = {{ printf "%q" .List }} # list name, or empty for none
---
{{ .Notes }}`))

// RenderTodoTOML renders the todo data as an editor buffer.
func RenderTodoTOML(data TodoData) (string, error) {
	var buf bytes.Buffer
	if err := todoTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTodo is the parsed result of an edited buffer.
type ParsedTodo struct {
	Title     string `toml:"title"`
	Scheduled string `toml:"scheduled"`
	List      string `toml:"list"`
	Notes     string
}

// ParseTodoTOML parses an edited buffer back into its fields.
func ParseTodoTOML(content string) (*ParsedTodo, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTodo
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Notes = strings.TrimLeft(body, "\n")
	parsed.Scheduled = strings.ToLower(strings.TrimSpace(parsed.Scheduled))
	parsed.Title = strings.TrimSpace(parsed.Title)

	if parsed.Title == "" {
		return nil, fmt.Errorf("title must not be empty")
	}
	if parsed.Scheduled == "" {
		return nil, fmt.Errorf("scheduled must be a YYYY-MM-DD day or \"long-term\"")
	}

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	separatorIndex := -1
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			separatorIndex = i
			break
		}
	}
	if separatorIndex == -1 {
		return content, ""
	}

	frontmatter := strings.Join(lines[:separatorIndex], "\n")
	body := strings.Join(lines[separatorIndex+1:], "\n")
	return frontmatter, body
}

// EditTodo opens the editor pre-populated with data and returns the
// parsed result.
func EditTodo(data TodoData) (*ParsedTodo, error) {
	content, err := RenderTodoTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "yata-todo-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTodoTOML(string(edited))
}
