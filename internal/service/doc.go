// Package service contains the memo use cases. MemoService is the single
// entry point for delivery mechanisms: it validates input, applies the
// query and mutation rules, and maps store failures into the domain error
// taxonomy.
//
// The service layer depends on domain entities and the store interfaces,
// never on a specific store implementation.
package service
