package ui

import (
	"context"
	"strings"

	"fundlookup/internal/config"
	"fundlookup/internal/dataset"
	"fundlookup/internal/logging"
	"fundlookup/internal/lookup"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type focusTarget int

const (
	focusInput focusTarget = iota
	focusTrigger
)

// datasetLoadedMsg carries the loader's single result into Update.
type datasetLoadedMsg struct {
	result dataset.Result
}

// FormOptions holds the text and projection the form displays.
type FormOptions struct {
	Title            string
	Intro            string
	InputPlaceholder string
	TriggerLabel     string
	Placeholder      string
	NotFoundMessage  string
	Projection       lookup.Projection
}

// FormOptionsFromConfig builds form options from the loaded configuration.
func FormOptionsFromConfig(cfg *config.Config) FormOptions {
	return FormOptions{
		Title:            cfg.UI.Title,
		Intro:            cfg.UI.Intro,
		InputPlaceholder: cfg.UI.InputPlaceholder,
		TriggerLabel:     cfg.UI.TriggerLabel,
		Placeholder:      cfg.Lookup.Placeholder,
		NotFoundMessage:  cfg.Lookup.NotFoundMessage,
		Projection: lookup.Projection{
			KeyColumn: cfg.Lookup.KeyColumn,
			Columns:   cfg.Lookup.Projection,
		},
	}
}

// FormModel is the bubbletea model of the lookup form: one text input, one
// trigger control and the result region.
type FormModel struct {
	ctx    context.Context
	loader *dataset.Loader
	opts   FormOptions
	styles Styles

	input textinput.Model
	focus focusTarget
	state lookup.Model

	width int
}

// NewFormModel creates the form. The loader should already be started; the
// form only waits for its result.
func NewFormModel(ctx context.Context, loader *dataset.Loader, opts FormOptions, styles Styles) FormModel {
	ti := textinput.New()
	ti.Placeholder = opts.InputPlaceholder
	ti.Prompt = ""
	ti.CharLimit = 64
	ti.Width = 32
	ti.Focus()

	return FormModel{
		ctx:    ctx,
		loader: loader,
		opts:   opts,
		styles: styles,
		input:  ti,
		focus:  focusInput,
		state:  lookup.NewModel(opts.Projection),
		width:  80,
	}
}

// Lookup returns the current presenter model.
func (m FormModel) Lookup() lookup.Model {
	return m.state
}

func (m FormModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForDataset(m.ctx, m.loader),
	)
}

// waitForDataset subscribes to the loader and blocks off the UI goroutine
// until the result arrives. A cancelled context is delivered as a failed load.
func waitForDataset(ctx context.Context, loader *dataset.Loader) tea.Cmd {
	return func() tea.Msg {
		delivered := make(chan dataset.Result, 1)
		loader.Subscribe(func(res dataset.Result) {
			delivered <- res
		})

		select {
		case res := <-delivered:
			return datasetLoadedMsg{result: res}
		case <-ctx.Done():
			return datasetLoadedMsg{result: dataset.Result{Dataset: dataset.Empty(), Err: ctx.Err()}}
		}
	}
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case datasetLoadedMsg:
		m.state = m.state.Loaded(msg.result)
		if msg.result.Err != nil {
			logging.Get(logging.CategoryUI).Warn("dataset unavailable, lookups will report not found: %v", msg.result.Err)
		} else {
			logging.UI("dataset delivered: %d records", msg.result.Dataset.Len())
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 8; w > 10 && w < 64 {
			m.input.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyTab, tea.KeyShiftTab:
			return m.toggleFocus(), nil

		case tea.KeyEnter:
			if m.focus == focusInput {
				return m.evaluate("input"), nil
			}
			return m.evaluate("trigger"), nil

		case tea.KeySpace:
			if m.focus == focusTrigger {
				return m.evaluate("trigger"), nil
			}
		}

		if m.focus != focusInput {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.state = m.state.WithQuery(m.input.Value())
	return m, cmd
}

func (m FormModel) toggleFocus() FormModel {
	if m.focus == focusInput {
		m.focus = focusTrigger
		m.input.Blur()
	} else {
		m.focus = focusInput
		m.input.Focus()
	}
	return m
}

// evaluate is the single evaluate action behind both trigger paths.
func (m FormModel) evaluate(via string) FormModel {
	m.state = m.state.WithQuery(m.input.Value()).Evaluate()
	logging.UI("evaluate via %s: %s", via, m.state.State())
	return m
}

func (m FormModel) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Header.Width(m.width).Render(m.opts.Title))
	sb.WriteString("\n")

	if m.opts.Intro != "" {
		sb.WriteString(RenderMarkdown(m.opts.Intro, m.width-4, m.styles.Theme.IsDark))
	}

	var body strings.Builder
	body.WriteString(m.styles.Prompt.Render(m.opts.Projection.KeyColumn+": ") + m.input.View())
	body.WriteString("\n")
	body.WriteString(m.styles.Muted.Render("Current input: ") + m.styles.UserInput.Render(m.state.Query()))
	body.WriteString("\n\n")

	trigger := m.styles.Trigger
	if m.focus == focusTrigger {
		trigger = m.styles.TriggerFocused
	}
	body.WriteString(trigger.Render("[ " + m.opts.TriggerLabel + " ]"))
	body.WriteString("\n")
	body.WriteString(m.styles.RenderDivider(m.width - 4))
	body.WriteString("\n")

	body.WriteString(RenderResult(m.styles, m.state.State(), m.opts, m.width-4))

	sb.WriteString(m.styles.Content.Render(body.String()))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("Tab: switch focus • Enter: calculate • Esc: quit"))

	return sb.String()
}

// RenderResult renders the result region with the background matching the
// state's kind.
func RenderResult(s Styles, state lookup.State, opts FormOptions, width int) string {
	style := s.ResultEmpty
	switch state.Kind() {
	case lookup.KindFound:
		style = s.ResultFound
	case lookup.KindNotFound:
		style = s.ResultNotFound
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		state.Lines(opts.Projection.Columns, opts.Placeholder, opts.NotFoundMessage)...))
}
