// Package prompt assembles the enriched prompt sent to the chat backend.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/appforge-ai/assistant-platform/internal/model"
)

// recentActionTail is how many executed-action names are replayed to keep
// the model aware of what already happened.
const recentActionTail = 10

// Catalog supplies the live action descriptors for prompt injection.
type Catalog interface {
	DescribeAll() []model.ActionDescriptor
}

// Builder assembles prompts from static guidance, the live catalog and the
// conversation context. It performs no network or storage I/O.
type Builder struct {
	catalog Catalog
}

// NewBuilder creates a prompt builder over the given catalog.
func NewBuilder(catalog Catalog) *Builder {
	return &Builder{catalog: catalog}
}

// Build concatenates the prompt sections in fixed order. Sections with no
// data are skipped entirely, never emitted as empty headers. The project
// argument is the snapshot of the context's current project and may be nil.
func (b *Builder) Build(userMessage string, ctx *model.ConversationContext, project *model.Project) string {
	var sb strings.Builder

	section(&sb, systemFraming)
	section(&sb, actionProtocol)
	section(&sb, b.renderCatalog())
	section(&sb, projectDefaults)
	section(&sb, projectGlossary)
	section(&sb, fileConventions)

	if ctx != nil && ctx.CurrentProjectID != "" && project != nil {
		section(&sb, renderProject(project))
	}
	if ctx != nil {
		if tail := ctx.RecentActions(recentActionTail); len(tail) > 0 {
			section(&sb, "Actions already executed in this conversation: "+strings.Join(tail, ", "))
		}
	}

	sb.WriteString(userMessage)
	return sb.String()
}

func (b *Builder) renderCatalog() string {
	descs := b.catalog.DescribeAll()
	if len(descs) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Available actions:\n")
	for _, d := range descs {
		fmt.Fprintf(&sb, "  %s - %s\n", d.Name, d.Description)
		if len(d.Parameters) > 0 {
			fmt.Fprintf(&sb, "    parameters: %s\n", renderParams(d.Parameters))
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderParams(specs map[string]model.ParamSpec) string {
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		spec := specs[name]
		p := name + " (" + spec.Type
		if spec.Required {
			p += ", required"
		}
		p += ")"
		parts = append(parts, p)
	}
	return strings.Join(parts, ", ")
}

func renderProject(p *model.Project) string {
	var sb strings.Builder
	sb.WriteString("Current project:\n")
	fmt.Fprintf(&sb, "  id: %s\n", p.ID)
	fmt.Fprintf(&sb, "  name: %s\n", p.Name)
	fmt.Fprintf(&sb, "  package_name: %s\n", p.PackageName)
	fmt.Fprintf(&sb, "  version: %s (%d)", p.VersionName, p.VersionCode)
	return sb.String()
}

func section(sb *strings.Builder, text string) {
	if text == "" {
		return
	}
	sb.WriteString(text)
	sb.WriteString("\n\n")
}
