package types

import (
	"fmt"
	"strconv"
)

// AddressKind tags the two address forms.
type AddressKind int

// Address kinds. The zero value is not a valid address.
const (
	AddressUnknown AddressKind = iota
	AddressCollection
	AddressItem
)

// String returns a short name for the kind.
func (k AddressKind) String() string {
	switch k {
	case AddressCollection:
		return "collection"
	case AddressItem:
		return "item"
	default:
		return "unknown"
	}
}

// Address identifies either the whole tool collection or one tool by id.
// Build addresses with Collection and Item; the router produces them by
// parsing a URI.
type Address struct {
	Kind AddressKind
	ID   int64 // Set only when Kind is AddressItem.
}

// Collection returns the address of all tools.
func Collection() Address {
	return Address{Kind: AddressCollection}
}

// Item returns the address of the tool with the given id.
func Item(id int64) Address {
	return Address{Kind: AddressItem, ID: id}
}

// IsCollection reports whether a is the collection address.
func (a Address) IsCollection() bool { return a.Kind == AddressCollection }

// IsItem reports whether a addresses a single tool.
func (a Address) IsItem() bool { return a.Kind == AddressItem }

// Contains reports whether other lies under a. The collection contains
// itself and every item; an item contains only itself.
func (a Address) Contains(other Address) bool {
	switch a.Kind {
	case AddressCollection:
		return other.Kind == AddressCollection || other.Kind == AddressItem
	case AddressItem:
		return other == a
	default:
		return false
	}
}

// String renders the authority-relative path form: "tools" or "tools/<id>".
func (a Address) String() string {
	switch a.Kind {
	case AddressCollection:
		return PathTools
	case AddressItem:
		return PathTools + "/" + strconv.FormatInt(a.ID, 10)
	default:
		return fmt.Sprintf("unknown(%d)", a.ID)
	}
}

// URI renders the full content URI of a under authority.
func (a Address) URI(authority string) string {
	if a.Kind == AddressItem {
		return ItemURI(authority, a.ID)
	}
	return CollectionURI(authority)
}
