// Package divtrack provides the core types and functions for tracking
// dividends and earnings on a personal portfolio of Taiwan-listed
// equities. It is designed to be local-first and auditable: the single
// source of truth is a flat CSV history of purchase lots, and every
// derived figure is recomputed from it.
//
// The core functionalities include:
//   - Holding Ledger: an in-memory, append-only record of purchase
//     lots per security, with derived aggregates such as cost basis,
//     market value, and total earning.
//   - Earning Reconstruction: a deterministic replay of the dividend
//     distribution history against the lot timeline, accruing cash
//     dividends and compounding stock dividends into the holding.
//   - Market Data Integration: security names, dividend histories, and
//     latest closing prices supplied by a pluggable gateway (the
//     finmind subpackage implements it against the FinMind data API).
//   - History Import/Export: reading and writing the purchase-lot
//     history as a flat, human-readable CSV file.
//
// This package serves as the foundational logic for the `dvt`
// command-line tool.
package divtrack
