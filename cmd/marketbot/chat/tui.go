package chatcmder

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	bubbletea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/basilio254/market-bot/pkg/cliui"
	"github.com/basilio254/market-bot/pkg/conversation"
	"github.com/basilio254/market-bot/pkg/gemini"
)

func init() {
	// Force TrueColor profile to fix lipgloss color detection issue
	// See: https://github.com/charmbracelet/lipgloss/issues/439
	renderer := lipgloss.NewRenderer(os.Stdout, termenv.WithProfile(termenv.TrueColor))
	renderer.SetColorProfile(termenv.TrueColor)
	lipgloss.SetDefaultRenderer(renderer)
}

var (
	chatTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	chatMutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	chatDividerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("237"))
	chatUserStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("111")).Bold(true)
	chatAsstStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	chatSourceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Underline(true)
	chatThinkingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
)

type replyMsg struct {
	turn conversation.Turn
}

type chatModel struct {
	client *gemini.Client
	store  *conversation.Store
	model  string

	viewport viewport.Model
	input    textinput.Model
	spin     spinner.Model

	waiting bool
	ready   bool
	width   int
	height  int
}

func runChatTUI(client *gemini.Client, store *conversation.Store, modelName string) error {
	input := textinput.New()
	input.Placeholder = "Ask about SEO, social media, ads..."
	input.Prompt = chatUserStyle.Render("> ")
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Points
	spin.Style = chatThinkingStyle

	model := chatModel{
		client: client,
		store:  store,
		model:  modelName,
		input:  input,
		spin:   spin,
	}

	program := bubbletea.NewProgram(model, bubbletea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m chatModel) Init() bubbletea.Cmd {
	return textinput.Blink
}

func (m chatModel) Update(msg bubbletea.Msg) (bubbletea.Model, bubbletea.Cmd) {
	switch msg := msg.(type) {
	case bubbletea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 2
		footerHeight := 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
		m.input.Width = msg.Width - 4
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case replyMsg:
		m.store.Append(msg.turn)
		m.waiting = false
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd bubbletea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case bubbletea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, bubbletea.Quit
		case "enter":
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			if text == "/exit" {
				return m, bubbletea.Quit
			}
			m.store.Append(conversation.NewTurn(conversation.RoleUser, text))
			m.input.Reset()
			m.waiting = true
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			return m, bubbletea.Batch(m.spin.Tick, requestReplyCmd(m.client, m.store))
		}
	}

	var cmds []bubbletea.Cmd
	var cmd bubbletea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, bubbletea.Batch(cmds...)
}

func (m chatModel) View() string {
	if !m.ready {
		return "loading..."
	}

	header := chatTitleStyle.Render("marketbot") +
		chatMutedStyle.Render(" · "+m.model)

	status := chatMutedStyle.Render("Enter to send · /exit or Ctrl+C to quit")
	if m.waiting {
		status = m.spin.View() + chatThinkingStyle.Render(" Marketing Expert is typing...")
	}

	return strings.Join([]string{
		header,
		m.rule(),
		m.viewport.View(),
		m.rule(),
		m.input.View(),
		status,
	}, "\n")
}

func (m chatModel) rule() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	return chatDividerStyle.Render(strings.Repeat("─", width))
}

func (m chatModel) renderTranscript() string {
	var sections []string
	for _, turn := range m.store.Turns() {
		switch turn.Role {
		case conversation.RoleSystem:
			// The persona never shows in the transcript.
			continue
		case conversation.RoleUser:
			sections = append(sections, chatUserStyle.Render("you")+"\n"+turn.Text)
		case conversation.RoleAssistant:
			sections = append(sections, chatAsstStyle.Render("expert")+"\n"+renderAssistantTurn(turn))
		}
	}
	return strings.Join(sections, "\n\n")
}

func renderAssistantTurn(turn conversation.Turn) string {
	text := turn.Text
	if rendered, err := cliui.RenderMarkdown(turn.Text); err == nil {
		text = strings.TrimRight(rendered, "\n")
	}

	if len(turn.Sources) == 0 {
		return text
	}

	var b strings.Builder
	b.WriteString(text)
	b.WriteString("\n\n")
	b.WriteString(chatMutedStyle.Render("Sources"))
	for i, source := range turn.Sources {
		b.WriteString(fmt.Sprintf("\n  %d. %s %s",
			i+1,
			source.Title,
			chatSourceStyle.Render(source.URI),
		))
	}
	return b.String()
}

func requestReplyCmd(client *gemini.Client, store *conversation.Store) bubbletea.Cmd {
	return func() bubbletea.Msg {
		return replyMsg{turn: requestReply(client, store)}
	}
}
