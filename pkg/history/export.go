package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"
)

var ErrBadExport = errors.New("malformed history export")

// ExportJSON encodes entries, newest first, as
// {"namespace": ..., "key": ..., "entries": [...]}.
func ExportJSON(entries []string) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	if out, err = sjson.SetBytes(out, "namespace", PrefsNamespace); err != nil {
		return nil, err
	}
	if out, err = sjson.SetBytes(out, "key", PrefsKey); err != nil {
		return nil, err
	}
	if out, err = sjson.SetBytes(out, "entries", []string{}); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if out, err = sjson.SetBytes(out, "entries.-1", e); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ImportJSON reads an export produced by ExportJSON. A bare JSON array of
// strings is accepted too.
func ImportJSON(data []byte) ([]string, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrBadExport)
	}
	list := gjson.ParseBytes(data)
	if !list.IsArray() {
		list = list.Get("entries")
	}
	if !list.IsArray() {
		return nil, fmt.Errorf("%w: no entries array", ErrBadExport)
	}

	var out []string
	var bad error
	list.ForEach(func(_, v gjson.Result) bool {
		if v.Type != gjson.String {
			bad = fmt.Errorf("%w: entry %s is not a string", ErrBadExport, v.Raw)
			return false
		}
		out = append(out, v.String())
		return true
	})
	if bad != nil {
		return nil, bad
	}
	return out, nil
}

// RenderHTML writes a standalone page listing entries, newest first.
func RenderHTML(w io.Writer, entries []string) error {
	items := make([]g.Node, 0, len(entries))
	for _, e := range entries {
		items = append(items, h.Li(h.Class("entry"), g.Text(e)))
	}

	page := g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		h.HTML(h.Lang("pt-BR"),
			h.Head(
				h.Meta(h.Charset("UTF-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1.0")),
				h.TitleEl(g.Text("Calculadora R$/kg - "+Header)),
				h.StyleEl(g.Raw(`body{font-family:sans-serif;margin:2rem} .empty{color:#666}`)),
			),
			h.Body(
				h.H1(g.Text(Header)),
				g.If(len(entries) == 0, h.P(h.Class("empty"), g.Text("Nenhum cálculo registrado."))),
				g.If(len(entries) > 0, h.Ol(g.Group(items))),
			),
		),
	})
	return page.Render(w)
}
