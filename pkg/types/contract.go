// Table, column, and addressing constants for the tool inventory.

package types

import "strconv"

// Addressing scheme. Every address lives under content://<authority>/tools.
const (
	Scheme           = "content"
	DefaultAuthority = "com.example.android.inventory"
	PathTools        = "tools"
)

// Content-type prefixes distinguishing a collection response from a
// single-item response.
const (
	cursorDirBaseType  = "vnd.android.cursor.dir"
	cursorItemBaseType = "vnd.android.cursor.item"
)

// TableName is the only table in the inventory database.
const TableName = "tools"

// Column names of the tools table.
const (
	ColumnID            = "_id"
	ColumnName          = "name"
	ColumnPrice         = "price"
	ColumnQuantity      = "quantity"
	ColumnSupplierName  = "supplier"
	ColumnSupplierPhone = "phone_number"
)

// AllColumns lists every column in table order. It is the default projection.
var AllColumns = []string{
	ColumnID,
	ColumnName,
	ColumnPrice,
	ColumnQuantity,
	ColumnSupplierName,
	ColumnSupplierPhone,
}

// WritableColumns lists the columns a field map may set. The id is assigned
// by the engine and never written directly.
var WritableColumns = []string{
	ColumnName,
	ColumnPrice,
	ColumnQuantity,
	ColumnSupplierName,
	ColumnSupplierPhone,
}

// IsColumn reports whether name is a column of the tools table.
func IsColumn(name string) bool {
	for _, c := range AllColumns {
		if c == name {
			return true
		}
	}
	return false
}

// IsWritableColumn reports whether name may appear in a field map.
func IsWritableColumn(name string) bool {
	for _, c := range WritableColumns {
		if c == name {
			return true
		}
	}
	return false
}

// CollectionURI returns the address of the whole tool collection.
func CollectionURI(authority string) string {
	return Scheme + "://" + authority + "/" + PathTools
}

// ItemURI returns the address of a single tool: the collection address with
// the id appended.
func ItemURI(authority string, id int64) string {
	return CollectionURI(authority) + "/" + strconv.FormatInt(id, 10)
}

// ContentListType is the content-type tag of a collection response.
func ContentListType(authority string) string {
	return cursorDirBaseType + "/" + authority + "/" + PathTools
}

// ContentItemType is the content-type tag of a single-item response.
func ContentItemType(authority string) string {
	return cursorItemBaseType + "/" + authority + "/" + PathTools
}
