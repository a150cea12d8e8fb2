// Package leilao provides the calculation core of a real-estate auction investment
// tracker. Every property is modeled twice: a Projection of the planned numbers and
// an Execution of the numbers as they happened.
//
// The core functionalities include:
//   - Entry Store: an immutable collection of labeled cash-flow lines, one per
//     (property, scenario, label), carrying the property metadata.
//   - Inheritance: any label the Execution does not hold is read on the Projection.
//   - Derived Fields: taxes, commissions, loan installments and the capital gains
//     tax are recomputed from a handful of root inputs, never overwriting a value the
//     user typed.
//   - Summaries: profit, capital employed and total and monthly returns of a
//     scenario, compared side by side or aggregated in a portfolio dashboard.
//   - Data Persistence: encoding of the entries to a human-readable, version
//     controllable JSONL file.
//
// Computations never fail: invalid numbers are clamped so that a recomputation
// always completes. This package serves as the foundational logic of the `leilao`
// command-line tool.
package leilao
