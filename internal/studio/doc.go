// Package studio orchestrates one product workspace: it meters every
// generation through the credit ledger, appends results to the session
// graph, and debounces persistence into the project library. Credits
// are charged only after the provider delivers a usable result.
package studio
