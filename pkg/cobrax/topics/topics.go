// Package topics adds help topics to a Cobra command tree. Topics are
// markdown or text files read from an fs.FS, usually an embedded one, and
// are shown by "help <topic>".
package topics

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic is one help page
type Topic struct {
	Name    string
	Path    string
	Content string
}

// Options configures the Manager
type Options struct {
	// Extensions of the files read as topics, [".md", ".txt"] when empty
	Extensions []string

	// Renderer formats topic content, PlainRenderer when nil
	Renderer Renderer
}

// Manager holds the topics of a command tree
type Manager struct {
	topics     map[string]*Topic
	extensions []string
	renderer   Renderer
}

// Load reads every topic file in fsys
func Load(fsys fs.FS, opts Options) (*Manager, error) {
	m := &Manager{
		topics:     make(map[string]*Topic),
		extensions: opts.Extensions,
		renderer:   opts.Renderer,
	}
	if len(m.extensions) == 0 {
		m.extensions = []string{".md", ".txt"}
	}
	if m.renderer == nil {
		m.renderer = PlainRenderer{}
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !m.supported(p) {
			return nil
		}
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(path.Base(p), path.Ext(p))
		m.topics[name] = &Topic{Name: name, Path: p, Content: string(content)}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load help topics: %w", err)
	}
	return m, nil
}

func (m *Manager) supported(p string) bool {
	ext := path.Ext(p)
	for _, e := range m.extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Get returns a topic by name. Flag-style names are accepted.
func (m *Manager) Get(name string) (*Topic, bool) {
	name = strings.TrimLeft(name, "-")
	t, ok := m.topics[name]
	return t, ok
}

// Names returns the sorted topic names
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render writes a rendered topic
func (m *Manager) Render(w io.Writer, t *Topic) error {
	_, err := fmt.Fprint(w, m.renderer.Render(t.Content, path.Ext(t.Path)))
	return err
}

// List writes the topic index
func (m *Manager) List(w io.Writer, program string) error {
	names := m.Names()
	if len(names) == 0 {
		_, err := fmt.Fprintln(w, "No help topics available.")
		return err
	}
	var b strings.Builder
	b.WriteString("Available help topics:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", name)
	}
	fmt.Fprintf(&b, "\nUse '%s help <topic>' to read about a specific topic.\n", program)
	_, err := io.WriteString(w, b.String())
	return err
}

// Install replaces the help command of root with one that also knows the
// topics of m
func (m *Manager) Install(root *cobra.Command) {
	originalHelp := root.HelpFunc()

	helpCmd := &cobra.Command{
		Use:   "help [command or topic]",
		Short: "Help about any command or topic",
		Long: `Help provides help for any command or topic in the application.
Simply type ` + root.Name() + ` help [path to command or topic] for full details.

To see all available help topics:
  ` + root.Name() + ` help topics`,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			completions := []string{"topics"}
			for _, c := range root.Commands() {
				if !c.Hidden {
					completions = append(completions, c.Name())
				}
			}
			completions = append(completions, m.Names()...)
			return completions, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) == 0 {
				originalHelp(root, nil)
				return nil
			}
			if args[0] == "topics" {
				return m.List(out, root.Name())
			}
			if t, ok := m.Get(args[0]); ok {
				return m.Render(out, t)
			}

			target, _, err := root.Find(args)
			if target == nil || err != nil {
				return fmt.Errorf("unknown help topic %q", strings.Join(args, " "))
			}
			originalHelp(target, nil)
			return nil
		},
	}

	for _, c := range root.Commands() {
		if c.Name() == "help" {
			root.RemoveCommand(c)
			break
		}
	}
	root.SetHelpCommand(helpCmd)
}
