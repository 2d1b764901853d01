package symbols

import (
	"sort"
	"strings"

	"github.com/matzehuels/refdoc/pkg/model"
)

// Entry is one indexed symbol.
type Entry struct {
	ID   string `json:"id"`   // dotted identifier matched in text, e.g. "pkg.Type.method"
	Name string `json:"name"` // link label
	URL  string `json:"url"`  // link target
}

// Index is the ordered, read-only symbol index.
type Index struct {
	entries []Entry
}

// Entries returns a copy of the entries in precedence order.
func (idx *Index) Entries() []Entry {
	if idx == nil {
		return nil
	}
	out := make([]Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Len returns the number of entries.
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.entries)
}

// Lookup returns every entry with the given identifier, in index order.
func (idx *Index) Lookup(id string) []Entry {
	if idx == nil {
		return nil
	}
	var out []Entry
	for _, e := range idx.entries {
		if e.ID == id {
			out = append(out, e)
		}
	}
	return out
}

// Located pairs a module with the URL path of its document, relative to the
// site root and without suffix (e.g. "api/jnvim/buffer").
type Located struct {
	Module *model.Module
	URL    string
}

// Build indexes every module and returns the sorted index.
func Build(docs []Located) *Index {
	b := NewBuilder()
	for _, d := range docs {
		b.Add(d)
	}
	return b.Index()
}

// Builder accumulates entries module by module.
type Builder struct {
	entries []Entry
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add indexes one module.
func (b *Builder) Add(doc Located) {
	m := doc.Module
	if m == nil {
		return
	}
	b.entries = append(b.entries, Entry{ID: m.Name, Name: m.Name, URL: "/" + doc.URL})

	for _, c := range m.Classes {
		short := c.ShortName()
		b.add(doc.URL, c.Name, short)

		seen := make(map[string]bool)
		for _, method := range c.Methods {
			if !model.IsAccessor(method.Name) {
				b.add(doc.URL, c.Name+"."+method.Name, method.Name)
				continue
			}
			property, _, ok := model.ParseAccessor(method.Name)
			if !ok || seen[property] {
				continue
			}
			seen[property] = true
			b.add(doc.URL, c.Name+"."+property, short+"."+property)
		}

		if c.IsEnum {
			for _, f := range c.Fields {
				b.add(doc.URL, c.Name+"."+f.Name, short+"."+f.Name)
			}
		}
	}

	for _, fn := range m.Functions {
		b.add(doc.URL, m.Name+"."+fn.Name, fn.Name)
	}
}

func (b *Builder) add(url, id, name string) {
	b.entries = append(b.entries, Entry{ID: id, Name: name, URL: AnchorURL(url, name)})
}

// Index returns the entries collected so far, sorted by descending
// identifier length. Entries of equal length keep insertion order.
func (b *Builder) Index() *Index {
	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].ID) > len(entries[j].ID)
	})
	return &Index{entries: entries}
}

// AnchorURL returns "/<url>/#<lowercased name>".
func AnchorURL(url, name string) string {
	return "/" + url + "/#" + Anchor(name)
}

// Anchor derives the fragment identifier for a display name.
func Anchor(name string) string {
	return strings.ToLower(name)
}
