package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/sitecms/internal/client/models"
	"github.com/dmitrijs2005/sitecms/internal/filex"
)

// maxImportSize bounds the JSON file read by Import.
const maxImportSize = 8 << 20

// Export writes the collection, in presentation order, as a JSON array.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("export <file>")
	}
	recs := a.editor.Export()
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	if err := filex.WriteAtomic(args[0], append(data, '\n')); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported %d item(s) to %s\n", len(recs), args[0])
	return nil
}

// Import reads a JSON array written by Export (or by older tools) and merges
// it into the collection. Nothing is sent to the Gateway.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("import <file>")
	}
	data, err := filex.ReadLimited(args[0], maxImportSize)
	if err != nil {
		return err
	}

	var recs []models.Record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&recs); err != nil {
		return fmt.Errorf("decode %s: %w", args[0], err)
	}

	n, err := a.editor.Import(recs)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Imported %d item(s). Save them to publish.\n", n)
	return nil
}

func (a *App) Stash(ctx context.Context) error {
	n, err := a.editor.Stash(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Stashed %d unsaved item(s).\n", n)
	return nil
}

func (a *App) Restore(ctx context.Context) error {
	n, err := a.editor.Restore(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Restored %d item(s).\n", n)
	return nil
}

// offerStash asks whether unsaved new items of the current content type
// should be stashed before they are dropped.
func (a *App) offerStash(ctx context.Context) error {
	if a.editor == nil || a.stash == nil {
		return nil
	}
	n := 0
	for _, d := range a.editor.Drafts() {
		if d.ID.Origin() == models.OriginLocal {
			n++
		}
	}
	if n == 0 {
		return nil
	}
	ok, err := confirm(a.reader, fmt.Sprintf("Stash %d unsaved new item(s) before switching?", n), a.out)
	if err != nil || !ok {
		return err
	}
	return a.Stash(ctx)
}
