package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/dmitrijs2005/findreve/internal/client/models"
)

// List prints all items as a table. Bodies that do not look like an item
// list are printed as raw JSON.
func (a *App) List(ctx context.Context) error {
	res := a.api.GetItems(ctx)
	if !res.OK() {
		log.Printf("Error: %s", res.Detail)
		return resultError(res)
	}

	items, err := decodeItems(res.Data)
	if err != nil {
		return printResult(a.out, res)
	}
	printItems(a.out, items)
	return nil
}

func (a *App) Get(ctx context.Context, id string) error {
	return printResult(a.out, a.api.GetItem(ctx, id))
}

// Add prompts for the fields of a new item and creates it.
func (a *App) Add(ctx context.Context) error {
	var fields [4]string
	for i, prompt := range []string{"Enter key", "Enter name", "Enter icon", "Enter phone"} {
		v, err := getSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		fields[i] = v
	}

	return printResult(a.out, a.api.AddItems(ctx, fields[0], fields[1], fields[2], fields[3]))
}

// Update prompts for every field of an item. The finder message is asked
// for only when the new status is "lost".
func (a *App) Update(ctx context.Context) error {
	var p models.ItemPatch

	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Enter item id", &p.ID},
		{"Enter key", &p.Key},
		{"Enter name", &p.Name},
		{"Enter icon", &p.Icon},
		{"Enter phone", &p.Phone},
		{"Enter status (ok, lost; empty to keep)", &p.Status},
	} {
		v, err := getSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		*f.dst = v
	}

	if p.Status == models.ItemStatusLost {
		msg, err := getMultiline(a.reader, "Enter a message for the finder", a.out)
		if err != nil {
			return err
		}
		p.Context = msg
	}

	return printResult(a.out, a.api.UpdateItems(ctx, p))
}

func (a *App) Delete(ctx context.Context, id string) error {
	res := a.api.DeleteItem(ctx, id)
	if res.OK() {
		fmt.Fprintf(a.out, "Item %s deleted\n", id)
		return nil
	}
	return printResult(a.out, res)
}
