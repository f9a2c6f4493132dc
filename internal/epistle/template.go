package epistle

import (
	"fmt"
	"os"
	"strings"

	"epistle/internal/registry"
)

// TemplateWriter renders the human-readable epistle document. The
// content is free-form markdown; nothing machine-parses it, so the
// layout can evolve without a migration.
type TemplateWriter struct{}

// Write renders the template for rec and writes it to path.
func (w *TemplateWriter) Write(path string, rec *registry.Record) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Epistle: %s\n\n", strings.Join(rec.Personas, " ↔ "))
	fmt.Fprintf(&b, "**ID**: %s\n", rec.ID)
	fmt.Fprintf(&b, "**Date**: %s\n", rec.Date)
	fmt.Fprintf(&b, "**Topic**: %s\n", rec.Topic)
	fmt.Fprintf(&b, "**Prompted by**: %s\n", promptedByLabel(rec.PromptedBy))
	fmt.Fprintf(&b, "**Status**: %s\n\n", rec.Status)

	b.WriteString("## Context\n\n")
	b.WriteString(renderContext(rec.Context))
	b.WriteString("\n\n")

	b.WriteString("## Dialog\n\n")
	fmt.Fprintf(&b, "**%s:**\n[Waiting for first message...]\n\n", rec.Personas[0])
	fmt.Fprintf(&b, "**%s:**\n[Response...]\n\n", rec.Personas[1])

	b.WriteString("## Outcome / Conclusions\n\n")
	b.WriteString("[To be filled as conversation develops]\n\n")

	b.WriteString("## Related Files & References\n\n")
	fmt.Fprintf(&b, "- Registry entry: %s\n", rec.ID)
	b.WriteString("- Previous epistles: [add links here]\n")
	b.WriteString("- Implementation: [if applicable]\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}

func promptedByLabel(promptedBy *string) string {
	if promptedBy == nil || *promptedBy == "" {
		return "self-initiated"
	}
	return *promptedBy
}

func renderContext(contextFiles []string) string {
	if len(contextFiles) == 0 {
		return "[No context documents attached yet. Use `epistle add-context` to add them.]"
	}
	lines := []string{"**Referenced documents:**", ""}
	for _, cf := range contextFiles {
		lines = append(lines, "- "+cf)
	}
	return strings.Join(lines, "\n")
}
