// Package solin implements a personal-finance ledger driven by natural
// language. Free text is resolved into a structured intent, either by a
// deterministic phrase table or by a local inference service, and dispatched
// to the ledger: categorized expense records, per-category budgets, a
// semantic category classifier with a manual fallback, and a monthly
// archival scheduler that rolls past months out of the live store.
//
// Every store (expenses, budgets, categories, memory, archives and the
// rollover marker) is a single human-readable JSON or text document behind
// the Store capability, so tests can substitute an in-memory backing.
package solin
