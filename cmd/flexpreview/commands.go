package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"

	"github.com/lineoa/keywordconsole/pkg/flexmessage"
)

type renderOptions struct {
	width    int
	html     bool
	template string
	set      []string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "flexpreview",
		Short:         "Preview LINE Flex bubbles built by the keyword console",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRenderCmd(), newTemplatesCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render sections JSON, a single tree or a preset",
		Long: `render reads a bubble from a file, or stdin when the file is "-".
The input is either an object keyed by section (Header, Hero, Body, Footer)
or an array of elements, which is placed in Body. With --template the bubble
is built from a preset instead and --set slot=value overrides its slots.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := loadSections(cmd.InOrStdin(), args, opts)
			if err != nil {
				return err
			}
			preview := flexmessage.PreviewBubble(sections)
			if opts.html {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), flexmessage.RenderHTML(preview))
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), flexmessage.RenderTerminal(preview, opts.width))
			return err
		},
	}
	cmd.Flags().IntVarP(&opts.width, "width", "w", 40, "bubble width in terminal cells")
	cmd.Flags().BoolVar(&opts.html, "html", false, "print an HTML fragment instead")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "build the bubble from a preset")
	cmd.Flags().StringArrayVar(&opts.set, "set", nil, "override a preset slot, as slot=value")
	return cmd
}

func newTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List the presets and their editable slots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, def := range flexmessage.Templates {
				fmt.Fprintf(out, "%s\t%s\t%s\n", def.Name, def.Title, def.Description)
				for _, slot := range def.Slots {
					if !slot.Kind.HasContent() {
						continue
					}
					fmt.Fprintf(out, "  %s\t%s\t%s\n", slot.ID, slot.Kind.DisplayName(), slot.Label)
				}
			}
			return nil
		},
	}
}

func loadSections(stdin io.Reader, args []string, opts *renderOptions) (flexmessage.Sections, error) {
	if opts.template != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("a file and --template cannot be combined")
		}
		return buildTemplate(opts.template, opts.set)
	}
	if len(opts.set) > 0 {
		return nil, fmt.Errorf("--set needs --template")
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a file, \"-\" or --template is required")
	}

	data, err := readInput(stdin, args[0])
	if err != nil {
		return nil, err
	}
	return parseSections(data)
}

func readInput(stdin io.Reader, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

// parseSections accepts sections JSON or a bare element array for Body
func parseSections(data []byte) (flexmessage.Sections, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("input is not valid JSON")
	}

	sections := flexmessage.NewSections()
	switch parsed := gjson.ParseBytes(data); {
	case parsed.IsArray():
		var tree flexmessage.Tree
		if err := json.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("failed to decode elements: %w", err)
		}
		sections[flexmessage.SectionBody] = tree
	case parsed.IsObject():
		var decoded flexmessage.Sections
		if err := json.Unmarshal(data, &decoded); err != nil {
			return nil, fmt.Errorf("failed to decode sections: %w", err)
		}
		for name, tree := range decoded {
			sections[name] = tree
		}
	default:
		return nil, fmt.Errorf("input must be a JSON object or array")
	}

	if err := sections.Validate(); err != nil {
		return nil, err
	}
	return sections, nil
}

func buildTemplate(name string, set []string) (flexmessage.Sections, error) {
	def, ok := flexmessage.FindTemplate(name)
	if !ok {
		return nil, fmt.Errorf("unknown template %q", name)
	}
	overrides := flexmessage.TemplateOverrides{}
	for _, kv := range set {
		slotID, value, found := strings.Cut(kv, "=")
		if !found {
			return nil, fmt.Errorf("invalid --set %q, expected slot=value", kv)
		}
		if !overrides.Set(def, slotID, value) {
			return nil, fmt.Errorf("template %s has no editable slot %q", def.Name, slotID)
		}
	}
	return def.Build(flexmessage.UUIDGenerator{}, overrides), nil
}
