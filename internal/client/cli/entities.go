package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/sitecms/internal/client/catalog"
)

func (a *App) Entities(ctx context.Context) error {
	for _, e := range catalog.All() {
		cur := " "
		if a.editor != nil && a.editor.Entity().Name == e.Name {
			cur = "*"
		}
		fmt.Fprintf(a.out, "%s %-14s %s\n", cur, e.Name, e.DisplayName)
	}
	return nil
}

// Use switches to another content type. Unsaved edits of the current one
// are dropped, so they are offered to the stash first.
func (a *App) Use(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("use <name>")
	}
	e, ok := catalog.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown content type %q (see 'entities')", args[0])
	}
	if err := a.offerStash(ctx); err != nil {
		return err
	}
	return a.open(ctx, e)
}

// Reload re-fetches the collection, discarding local edits.
func (a *App) Reload(ctx context.Context) error {
	if err := a.editor.Load(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %d item(s)\n", a.editor.Entity().DisplayName, a.editor.Len())
	return nil
}

func (a *App) List(ctx context.Context) error {
	printList(a.out, a.editor.Entity(), a.editor.Drafts(), a.editor.Errors())
	if a.editor.Len() > 0 && !a.editor.CanSave() {
		fmt.Fprintln(a.out, "Some required fields are empty; saving is blocked until they are filled.")
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("show <n>")
	}
	i, err := parseItem(args[0], a.editor.Len())
	if err != nil {
		return err
	}
	d, err := a.editor.Draft(i)
	if err != nil {
		return err
	}
	printDraft(a.out, a.editor.Entity(), i, d, a.editor.Errors())
	return nil
}
