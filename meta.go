package argot

// ItemKind identifies what a single consumable item is.
type ItemKind uint8

const (
	// ItemFlag is a named switch with no value.
	ItemFlag ItemKind = iota

	// ItemArgument is a named flag that takes a value.
	ItemArgument

	// ItemPositional is a bare value identified by position.
	ItemPositional

	// ItemCommand is a literal subcommand word.
	ItemCommand
)

// Item describes one consumable unit of the command line for help,
// completion, and error rendering.
type Item struct {
	// Kind classifies the item.
	Kind ItemKind

	// Short is the single-letter name, or zero if none.
	Short rune

	// Long is the full name, or the command word for ItemCommand.
	Long string

	// Metavar is the value placeholder for arguments and positionals.
	Metavar string

	// Help is the one-line description shown in help output.
	Help string
}

// Describe renders the item the way error messages refer to it.
func (it Item) Describe() string {
	switch it.Kind {
	case ItemCommand:
		return "command " + it.Long
	case ItemPositional:
		return "<" + it.Metavar + ">"
	default:
		name := it.name()
		if it.Kind == ItemArgument {
			return name + " <" + it.Metavar + ">"
		}

		return name
	}
}

// name prefers the long form of a named item.
func (it Item) name() string {
	if it.Long != "" {
		return "--" + it.Long
	}

	return "-" + string(it.Short)
}

// MetaKind identifies a node of the [Meta] tree.
type MetaKind uint8

const (
	// MetaItem is a leaf holding one Item.
	MetaItem MetaKind = iota

	// MetaAnd is sequential composition: all children are consumed.
	MetaAnd

	// MetaOr is alternative composition: one child is consumed.
	MetaOr

	// MetaOptional marks a child that may be absent.
	MetaOptional

	// MetaRequired marks a child that must be present.
	MetaRequired

	// MetaMany marks a child consumed zero or more times.
	MetaMany

	// MetaAnywhere marks a child that may match at any position.
	MetaAnywhere

	// MetaDecorated attaches a help section note to a child.
	MetaDecorated

	// MetaSkip is an empty node hidden from all output.
	MetaSkip
)

// Meta is a structural description of what a parser accepts. Help
// rendering, suggestions, and the tokenizer's known-shorts sets are all
// derived from it; it never affects how the pool itself is consumed.
type Meta struct {
	// Kind classifies the node.
	Kind MetaKind

	// Children holds the sub-descriptions of And/Or nodes, or exactly one
	// entry for the wrapper kinds.
	Children []Meta

	// Item is set on MetaItem leaves.
	Item *Item

	// Note carries the MetaDecorated section text.
	Note string
}

// itemMeta wraps a single item as a leaf node.
func itemMeta(it Item) Meta {
	return Meta{Kind: MetaItem, Item: &it}
}

// wrapMeta nests inner under a wrapper kind.
func wrapMeta(kind MetaKind, inner Meta) Meta {
	return Meta{Kind: kind, Children: []Meta{inner}}
}

// andMeta sequences the given descriptions.
func andMeta(ms ...Meta) Meta {
	return Meta{Kind: MetaAnd, Children: ms}
}

// orMeta records an alternative between the two descriptions, flattening
// nested Or nodes so "expected one of" lists stay readable.
func orMeta(a, b Meta) Meta {
	children := make([]Meta, 0, 2)
	for _, m := range []Meta{a, b} {
		if m.Kind == MetaOr {
			children = append(children, m.Children...)
		} else {
			children = append(children, m)
		}
	}

	return Meta{Kind: MetaOr, Children: children}
}

// Walk calls fn for every item in the description, in declaration order.
func (m Meta) Walk(fn func(Item)) {
	if m.Kind == MetaItem {
		if m.Item != nil {
			fn(*m.Item)
		}

		return
	}

	for _, c := range m.Children {
		c.Walk(fn)
	}
}

// firstItems collects the set of items a parser could consume first:
// the first leg of every And, every branch of an Or. Anywhere uses it to
// seed its best-missing record.
func (m Meta) firstItems() []Item {
	switch m.Kind {
	case MetaItem:
		if m.Item == nil {
			return nil
		}

		return []Item{*m.Item}

	case MetaAnd:
		if len(m.Children) == 0 {
			return nil
		}

		return m.Children[0].firstItems()

	case MetaOr:
		var items []Item
		for _, c := range m.Children {
			items = append(items, c.firstItems()...)
		}

		return items

	case MetaSkip:
		return nil

	default:
		if len(m.Children) == 0 {
			return nil
		}

		return m.Children[0].firstItems()
	}
}

// shortSets derives the tokenizer's disambiguation sets from the
// description: the short letters acting as plain flags, and the short
// letters taking values.
func (m Meta) shortSets() (flags, valued []rune) {
	m.Walk(func(it Item) {
		if it.Short == 0 {
			return
		}

		switch it.Kind {
		case ItemFlag:
			flags = append(flags, it.Short)
		case ItemArgument:
			valued = append(valued, it.Short)
		}
	})

	return flags, valued
}
