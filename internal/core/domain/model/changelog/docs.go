// Package changelog records mutations of order terms made after confirmation
// and the counterparty's review of each one.
package changelog
