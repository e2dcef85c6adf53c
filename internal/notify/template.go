package notify

import (
	"bytes"
	"fmt"
	"sort"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-inventory/internal/display"
	"github.com/pixil98/go-inventory/internal/tags"
)

// Notification kinds a template can be configured for.
const (
	KindGranted        = "granted"
	KindUsed           = "used"
	KindRemoved        = "removed"
	KindDropped        = "dropped"
	KindAllDropped     = "all_dropped"
	KindCrafted        = "crafted"
	KindRecipeConsumed = "recipe_consumed"
)

var kinds = map[string]bool{
	KindGranted:        true,
	KindUsed:           true,
	KindRemoved:        true,
	KindDropped:        true,
	KindAllDropped:     true,
	KindCrafted:        true,
	KindRecipeConsumed: true,
}

// templateFuncs provides sprig plus the display helpers to templates.
var templateFuncs = func() template.FuncMap {
	fm := sprig.TxtFuncMap()
	fm["amount"] = display.Amount
	fm["capitalize"] = display.Capitalize
	return fm
}()

// Data is what a notification template is executed with.
type Data struct {
	Owner  string
	Item   tags.Tag
	Name   string
	Amount float64
}

// Renderer holds the parsed notification templates.
type Renderer struct {
	tmpls map[string]*template.Template
}

// NewRenderer parses src, a map of kind to template text. Every template is
// parsed up front so a bad template fails at startup.
func NewRenderer(src map[string]string) (*Renderer, error) {
	r := &Renderer{tmpls: make(map[string]*template.Template, len(src))}

	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	el := errors.NewErrorList()
	for _, kind := range keys {
		if !kinds[kind] {
			el.Add(fmt.Errorf("template %q: unknown notification kind", kind))
			continue
		}
		tmpl, err := template.New(kind).Funcs(templateFuncs).Option("missingkey=error").Parse(src[kind])
		if err != nil {
			el.Add(fmt.Errorf("template %q: parsing template: %w", kind, err))
			continue
		}
		r.tmpls[kind] = tmpl
	}
	if err := el.Err(); err != nil {
		return nil, err
	}

	return r, nil
}

// Render expands the template for kind. It reports false when no template
// is configured for kind.
func (r *Renderer) Render(kind string, data Data) (string, bool, error) {
	if r == nil {
		return "", false, nil
	}
	tmpl, ok := r.tmpls[kind]
	if !ok {
		return "", false, nil
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", true, fmt.Errorf("executing template: %w", err)
	}
	return buf.String(), true, nil
}
