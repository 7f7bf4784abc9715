package overlay

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/taskflow/internal/domain"
)

// TaskCreatedMsg is emitted when the add form is submitted
type TaskCreatedMsg struct {
	Form domain.TaskForm
}

// TaskEditedMsg is emitted when the edit form is submitted
type TaskEditedMsg struct {
	ID    string
	Patch domain.TaskPatch
}

const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldCategory
	fieldTags
	fieldDue
	fieldEstimate
	fieldSubmit
	fieldCount
)

const formWidth = 60

// TaskFormOverlay is the add/edit task form. Input is only turned into a
// domain value on submit; until then every field is free text.
type TaskFormOverlay struct {
	editID string

	title       textinput.Model
	description textarea.Model
	tagInput    textinput.Model
	due         textinput.Model
	estimate    textinput.Model

	priority  domain.Priority
	category  domain.Category
	tags      []string
	tagCursor int

	focus  int
	errs   map[string]string
	loc    *time.Location
	styles *Styles
}

// NewTaskFormOverlay creates an empty add form with the given defaults
func NewTaskFormOverlay(priority domain.Priority, category domain.Category) *TaskFormOverlay {
	if !priority.Valid() {
		priority = domain.PriorityMedium
	}
	if !category.Valid() {
		category = domain.CategoryOther
	}

	f := &TaskFormOverlay{
		title:       newInput("What needs doing?", 200),
		description: newDescription(),
		tagInput:    newInput("type a tag and press Enter", 40),
		due:         newInput(domain.DueDateLayout, len(domain.DueDateLayout)),
		estimate:    newInput("minutes", 5),
		priority:    priority,
		category:    category,
		tags:        []string{},
		tagCursor:   -1,
		errs:        make(map[string]string),
		loc:         time.Local,
		styles:      New(),
	}
	f.setFocus(fieldTitle)
	return f
}

// NewEditTaskOverlay creates a form prefilled from an existing task
func NewEditTaskOverlay(task domain.Task) *TaskFormOverlay {
	f := NewTaskFormOverlay(task.Priority, task.Category)
	f.editID = task.ID
	f.title.SetValue(task.Title)
	f.description.SetValue(task.Description)
	f.tags = domain.NormalizeTags(task.Tags)
	if task.DueDate != nil {
		f.due.SetValue(task.DueDate.In(f.loc).Format(domain.DueDateLayout))
	}
	if task.EstimatedTime != nil {
		f.estimate.SetValue(strconv.Itoa(*task.EstimatedTime))
	}
	return f
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = formWidth - 14
	ti.Prompt = ""
	return ti
}

func newDescription() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Optional details..."
	ta.CharLimit = 2000
	ta.ShowLineNumbers = false
	ta.SetWidth(formWidth)
	ta.SetHeight(4)
	return ta
}

// IsEdit reports whether the form edits an existing task
func (f *TaskFormOverlay) IsEdit() bool {
	return f.editID != ""
}

// Init initializes the overlay
func (f *TaskFormOverlay) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (f *TaskFormOverlay) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f, f.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "esc":
		return f, func() tea.Msg { return CloseOverlayMsg{} }

	case "ctrl+s":
		return f, f.submit()

	case "tab", "down":
		if keyMsg.String() == "down" && f.focus == fieldDescription {
			break
		}
		f.setFocus((f.focus + 1) % fieldCount)
		return f, nil

	case "shift+tab", "up":
		if keyMsg.String() == "up" && f.focus == fieldDescription {
			break
		}
		f.setFocus((f.focus - 1 + fieldCount) % fieldCount)
		return f, nil

	case "enter":
		switch f.focus {
		case fieldDescription:
			// newline inside the textarea
		case fieldTags:
			f.addTag()
			return f, nil
		default:
			return f, f.submit()
		}
	}

	switch f.focus {
	case fieldPriority:
		f.cyclePriority(keyMsg.String())
		return f, nil
	case fieldCategory:
		f.cycleCategory(keyMsg.String())
		return f, nil
	case fieldTags:
		if f.tagInput.Value() == "" && f.handleChipKey(keyMsg.String()) {
			return f, nil
		}
	case fieldSubmit:
		return f, nil
	}

	return f, f.updateFocused(msg)
}

func (f *TaskFormOverlay) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch f.focus {
	case fieldTitle:
		f.title, cmd = updateInput(f.title, msg, f.errs, "title")
	case fieldDescription:
		f.description, cmd = f.description.Update(msg)
	case fieldTags:
		prev := f.tagInput.Value()
		f.tagInput, cmd = updateInput(f.tagInput, msg, f.errs, "tags")
		if f.tagInput.Value() != prev {
			f.tagCursor = -1
		}
	case fieldDue:
		f.due, cmd = updateInput(f.due, msg, f.errs, "due")
	case fieldEstimate:
		f.estimate, cmd = updateInput(f.estimate, msg, f.errs, "estimate")
	}
	return cmd
}

// updateInput forwards msg and clears the field's error once its text changes
func updateInput(in textinput.Model, msg tea.Msg, errs map[string]string, field string) (textinput.Model, tea.Cmd) {
	prev := in.Value()
	in, cmd := in.Update(msg)
	if in.Value() != prev {
		delete(errs, field)
	}
	return in, cmd
}

func (f *TaskFormOverlay) setFocus(field int) {
	f.focus = field
	f.title.Blur()
	f.description.Blur()
	f.tagInput.Blur()
	f.due.Blur()
	f.estimate.Blur()

	switch field {
	case fieldTitle:
		f.title.Focus()
	case fieldDescription:
		f.description.Focus()
	case fieldTags:
		f.tagInput.Focus()
	case fieldDue:
		f.due.Focus()
	case fieldEstimate:
		f.estimate.Focus()
	}
}

func (f *TaskFormOverlay) cyclePriority(key string) {
	i := indexOf(domain.Priorities, f.priority)
	switch key {
	case "left", "h":
		i = (i - 1 + len(domain.Priorities)) % len(domain.Priorities)
	case "right", "l", " ":
		i = (i + 1) % len(domain.Priorities)
	default:
		return
	}
	f.priority = domain.Priorities[i]
}

func (f *TaskFormOverlay) cycleCategory(key string) {
	i := indexOf(domain.Categories, f.category)
	switch key {
	case "left", "h":
		i = (i - 1 + len(domain.Categories)) % len(domain.Categories)
	case "right", "l", " ":
		i = (i + 1) % len(domain.Categories)
	default:
		return
	}
	f.category = domain.Categories[i]
}

func indexOf[T comparable](values []T, v T) int {
	for i, candidate := range values {
		if candidate == v {
			return i
		}
	}
	return 0
}

// handleChipKey moves between and removes existing tags while the tag
// input is empty. It reports whether the key was consumed.
func (f *TaskFormOverlay) handleChipKey(key string) bool {
	if len(f.tags) == 0 {
		return false
	}
	switch key {
	case "left":
		if f.tagCursor < 0 {
			f.tagCursor = len(f.tags) - 1
		} else if f.tagCursor > 0 {
			f.tagCursor--
		}
		return true
	case "right":
		if f.tagCursor >= 0 && f.tagCursor < len(f.tags)-1 {
			f.tagCursor++
		} else {
			f.tagCursor = -1
		}
		return true
	case "backspace", "delete":
		idx := f.tagCursor
		if idx < 0 {
			idx = len(f.tags) - 1
		}
		f.tags = domain.RemoveTag(f.tags, f.tags[idx])
		if f.tagCursor >= len(f.tags) {
			f.tagCursor = len(f.tags) - 1
		}
		delete(f.errs, "tags")
		return true
	}
	return false
}

func (f *TaskFormOverlay) addTag() {
	tags, err := domain.AddTag(f.tags, f.tagInput.Value())
	if err != nil {
		f.setError(err)
		return
	}
	f.tags = tags
	f.tagInput.SetValue("")
	f.tagCursor = -1
	delete(f.errs, "tags")
}

func (f *TaskFormOverlay) setError(err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		f.errs[ve.Field] = ve.Err.Error()
		return
	}
	f.errs["form"] = err.Error()
}

// Errors returns the inline validation messages keyed by field
func (f *TaskFormOverlay) Errors() map[string]string {
	return f.errs
}

// build validates every field. All failing fields are reported at once.
func (f *TaskFormOverlay) build() (domain.TaskForm, bool) {
	for _, field := range []string{"title", "due", "estimate", "form"} {
		delete(f.errs, field)
	}

	form := domain.NewTaskForm(strings.TrimSpace(f.title.Value()))
	form.Description = strings.TrimSpace(f.description.Value())
	form.Priority = f.priority
	form.Category = f.category
	form.Tags = append([]string(nil), f.tags...)

	if err := form.Validate(); err != nil {
		f.setError(err)
	}
	due, err := domain.ParseDueDate(f.due.Value(), f.loc)
	if err != nil {
		f.setError(err)
	}
	form.DueDate = due
	estimate, err := domain.ParseEstimate(f.estimate.Value())
	if err != nil {
		f.setError(err)
	}
	form.EstimatedTime = estimate

	return form, len(f.errs) == 0
}

func (f *TaskFormOverlay) submit() tea.Cmd {
	// Text left in the tag input is added on submit
	if strings.TrimSpace(f.tagInput.Value()) != "" {
		f.addTag()
	}

	form, ok := f.build()
	if !ok {
		return nil
	}

	var result tea.Msg
	if f.IsEdit() {
		result = TaskEditedMsg{ID: f.editID, Patch: patchFromForm(form)}
	} else {
		result = TaskCreatedMsg{Form: form}
	}
	return tea.Batch(
		func() tea.Msg { return result },
		func() tea.Msg { return CloseOverlayMsg{} },
	)
}

func patchFromForm(form domain.TaskForm) domain.TaskPatch {
	tags := form.Tags
	patch := domain.TaskPatch{
		Title:              &form.Title,
		Description:        &form.Description,
		Priority:           &form.Priority,
		Category:           &form.Category,
		Tags:               &tags,
		DueDate:            form.DueDate,
		ClearDueDate:       form.DueDate == nil,
		EstimatedTime:      form.EstimatedTime,
		ClearEstimatedTime: form.EstimatedTime == nil,
	}
	return patch
}

// View renders the form
func (f *TaskFormOverlay) View() string {
	var b strings.Builder

	f.writeField(&b, fieldTitle, "Title", f.title.View(), "title")
	b.WriteString(f.label(fieldDescription, "Description"))
	b.WriteString("\n")
	b.WriteString(f.description.View())
	b.WriteString("\n\n")
	f.writeField(&b, fieldPriority, "Priority", f.renderPriority(), "")
	f.writeField(&b, fieldCategory, "Category", f.renderCategory(), "")
	f.writeField(&b, fieldTags, "Tags", f.renderTags(), "tags")
	f.writeField(&b, fieldDue, "Due", f.due.View(), "due")
	f.writeField(&b, fieldEstimate, "Estimate", f.estimate.View(), "estimate")

	b.WriteString(f.styles.Separator.Render(strings.Repeat("─", formWidth)))
	b.WriteString("\n")

	submitStyle := f.styles.MenuItem
	if f.focus == fieldSubmit {
		submitStyle = f.styles.MenuItemActive
	}
	label := "[ Add Task ]"
	if f.IsEdit() {
		label = "[ Save Changes ]"
	}
	b.WriteString(submitStyle.Render(label))

	hints := []string{
		f.styles.MenuKey.Render("Tab") + " " + f.styles.Footer.UnsetMarginTop().Render("Next field"),
		f.styles.MenuKey.Render("←/→") + " " + f.styles.Footer.UnsetMarginTop().Render("Cycle"),
		f.styles.MenuKey.Render("Ctrl+S") + " " + f.styles.Footer.UnsetMarginTop().Render("Save"),
		f.styles.MenuKey.Render("Esc") + " " + f.styles.Footer.UnsetMarginTop().Render("Cancel"),
	}
	b.WriteString("\n")
	b.WriteString(f.styles.Footer.Render(strings.Join(hints, " • ")))

	return b.String()
}

func (f *TaskFormOverlay) label(field int, text string) string {
	if f.focus == field {
		return f.styles.LabelFocused.Render(text + ":")
	}
	return f.styles.Label.Render(text + ":")
}

func (f *TaskFormOverlay) writeField(b *strings.Builder, field int, text, value, errKey string) {
	b.WriteString(f.label(field, text))
	b.WriteString(" ")
	b.WriteString(value)
	b.WriteString("\n")
	if msg, ok := f.errs[errKey]; ok && errKey != "" {
		b.WriteString(f.styles.Error.Render("  ✗ " + msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

func (f *TaskFormOverlay) renderPriority() string {
	parts := make([]string, 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		style := f.styles.MenuItem
		indicator := " "
		if p == f.priority {
			style = f.styles.MenuItemActive
			indicator = "●"
		}
		parts = append(parts, style.Render(fmt.Sprintf("[%s%s]", indicator, p.Label())))
	}
	return strings.Join(parts, " ")
}

func (f *TaskFormOverlay) renderCategory() string {
	style := f.styles.MenuItem
	if f.focus == fieldCategory {
		style = f.styles.MenuItemActive
	}
	return style.Render("‹ " + f.category.Label() + " ›")
}

func (f *TaskFormOverlay) renderTags() string {
	chips := make([]string, 0, len(f.tags)+1)
	for i, tag := range f.tags {
		style := f.styles.Chip
		if i == f.tagCursor {
			style = f.styles.ChipActive
		}
		chips = append(chips, style.Render("#"+tag))
	}
	chips = append(chips, f.tagInput.View())
	return strings.Join(chips, " ")
}

// Title returns the overlay title
func (f *TaskFormOverlay) Title() string {
	if f.IsEdit() {
		return "Edit Task"
	}
	return "New Task"
}

// Size returns the overlay dimensions
func (f *TaskFormOverlay) Size() (width, height int) {
	return formWidth + 10, 30
}
