// Package types defines the tool inventory contract: table and column names,
// the content addressing scheme, field maps, row sets, the Tool entity,
// backend configuration, and the standard errors shared by the storage,
// provider, and CLI layers.
package types
