package cmd

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"tabula/internal/ui"
)

// dateFormatChoices are the layouts offered by the setup wizard.
var dateFormatChoices = []string{
	"02-Jan-2006",
	"2006-01-02",
	"Jan 2, 2006",
	"02/01/2006",
	"01/02/2006",
}

func newInitCmd(root *rootOptions) *cobra.Command {
	var (
		force    bool
		defaults bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file",
		Long: `Creates ~/.tabula/config.yaml (or the file named by --config). In a terminal
a short setup asks for the default page size and date format; with
--defaults, or when stdin is not a terminal, the defaults are written as is.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := root.configFile
			if !force {
				_, err := os.Stat(path)
				if err == nil {
					return errors.New("configuration file already exists, use --force to overwrite")
				}
				if !os.IsNotExist(err) {
					return fmt.Errorf("cannot access config path %s: %w", path, err)
				}
			}

			cfg := root.cfg
			if !defaults && stdinIsTerminal() {
				chosen, ok, err := runSetup(cfg)
				if err != nil {
					return err
				}
				if !ok {
					cmd.Println("Setup canceled, nothing written.")
					return nil
				}
				cfg = chosen
			}

			if err := SaveConfig(path, cfg); err != nil {
				return err
			}
			root.logger.Info().Str("path", path).Msg("configuration written")
			cmd.Printf("Configuration initialized at %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "write defaults without asking")
	return cmd
}

func stdinIsTerminal() bool {
	fi, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

type setupStep int

const (
	stepPageSize setupStep = iota
	stepDateFormat
	stepDone
)

type setupModel struct {
	step     setupStep
	cfg      Config
	sizes    []int
	size     int
	format   int
	canceled bool
	width    int
	height   int
}

func newSetupModel(cfg Config) setupModel {
	sizes := cfg.PageSizeOptions
	if len(sizes) == 0 {
		sizes = DefaultConfig().PageSizeOptions
	}
	return setupModel{
		step:   stepPageSize,
		cfg:    cfg,
		sizes:  sizes,
		size:   max(slices.Index(sizes, cfg.PageSize), 0),
		format: max(slices.Index(dateFormatChoices, cfg.DateFormat), 0),
	}
}

func (m setupModel) Init() tea.Cmd { return nil }

func (m setupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.canceled = true
			m.step = stepDone
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter":
			return m.nextStep()
		}
	}
	return m, nil
}

func (m *setupModel) move(delta int) {
	switch m.step {
	case stepPageSize:
		m.size = (m.size + delta + len(m.sizes)) % len(m.sizes)
	case stepDateFormat:
		m.format = (m.format + delta + len(dateFormatChoices)) % len(dateFormatChoices)
	}
}

func (m setupModel) nextStep() (tea.Model, tea.Cmd) {
	switch m.step {
	case stepPageSize:
		m.cfg.PageSize = m.sizes[m.size]
		m.step = stepDateFormat
		return m, nil
	case stepDateFormat:
		m.cfg.DateFormat = dateFormatChoices[m.format]
		m.step = stepDone
		return m, tea.Quit
	}
	return m, nil
}

var setupPanelStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(ui.ColorMuted).
	Padding(1, 2)

func (m setupModel) View() string {
	width := m.width
	if width <= 0 {
		width = 80
	}

	header := ui.TitleStyle.Width(width).Render("  " + ui.HeaderStyle.Render("tabula") + ui.ToolbarStyle.Render(" › Setup"))

	var question string
	var options []string
	switch m.step {
	case stepPageSize:
		question = "Rows per page?"
		for i, s := range m.sizes {
			options = append(options, renderChoice(fmt.Sprintf("%d", s), i == m.size))
		}
	case stepDateFormat:
		question = "How should dates look?"
		sample := time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)
		for i, f := range dateFormatChoices {
			options = append(options, renderChoice(sample.Format(f), i == m.format))
		}
	default:
		return header
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		ui.SectionStyle.Render(question),
		"",
		strings.Join(options, "\n"),
		"",
		ui.HelpDescStyle.Render("j/k to choose, enter to confirm, q to cancel"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, setupPanelStyle.Render(body))
}

func renderChoice(label string, selected bool) string {
	if selected {
		return "  " + ui.HelpKeyStyle.Bold(true).Render("→ "+label)
	}
	return "    " + ui.NormalRowStyle.Render(label)
}

// runSetup runs the wizard and reports whether it was completed.
func runSetup(cfg Config) (Config, bool, error) {
	prog := tea.NewProgram(newSetupModel(cfg), tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return Config{}, false, fmt.Errorf("setup tui failed: %w", err)
	}
	m, ok := final.(setupModel)
	if !ok {
		return Config{}, false, fmt.Errorf("unexpected setup model type")
	}
	if m.canceled {
		return Config{}, false, nil
	}
	return m.cfg, true, nil
}
