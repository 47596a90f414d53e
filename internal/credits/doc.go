// Package credits implements the subscription plan catalog and the
// credit ledger that meters generation features. The ledger never goes
// negative and never mutates state on a failed charge.
package credits
