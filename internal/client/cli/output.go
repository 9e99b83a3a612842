package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/dmitrijs2005/findreve/internal/client/models"
)

// resultError turns a failed Result into an error carrying its detail.
func resultError(res models.Result) error {
	if res.OK() {
		return nil
	}
	return errors.New(res.Detail)
}

// printResult writes res as indented JSON and returns resultError(res).
func printResult(w io.Writer, res models.Result) error {
	b, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(b))
	return resultError(res)
}

// decodeItems accepts either a bare JSON array of items or the server's
// {code, data, msg} wrapper around one.
func decodeItems(data json.RawMessage) ([]models.Item, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, models.ErrNoData
	}

	var items []models.Item
	if data[0] == '[' {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
		return items, nil
	}

	var dr models.DefaultResponse
	if err := json.Unmarshal(data, &dr); err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(dr.Data)) == 0 || bytes.Equal(bytes.TrimSpace(dr.Data), []byte("null")) {
		return []models.Item{}, nil
	}
	if err := json.Unmarshal(dr.Data, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func printItems(w io.Writer, items []models.Item) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No items")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tKEY\tNAME\tICON\tSTATUS\tPHONE")
	for _, it := range items {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", it.ID, it.Key, it.Name, it.Icon, it.Status, it.Phone)
	}
	_ = tw.Flush()
}
