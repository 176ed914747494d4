// Package cpfolio computes a daily evaluation of a fixed set of SGX equity
// holdings financed from a CPF Ordinary Account. It is designed to answer one
// question precisely: if a position were sold today, what would actually be
// left after every cost the broker and the CPF board charge for the detour
// through equities.
//
// The core functionalities include:
//   - Fee Modeling: the full DBS Vickers schedule (tiered commission with a
//     flat minimum, clearing fee, trading fee, settlement fee) computed
//     exactly on decimal arithmetic.
//   - Opportunity Cost: interest foregone on the CPF-OA reference rate for
//     the capital locked into each position, accrued per calendar day.
//   - Breakeven Solving: the minimum sale price at which net proceeds after
//     fees and opportunity cost equal the cost basis, solved in closed form
//     across the commission-floor discontinuity.
//   - Position Evaluation: per-holding paper and net P&L records with a
//     discrete trading suggestion (stop-loss warning, can sell, near target,
//     hold, underwater).
//   - Report Assembly: an ordered report with portfolio aggregates that
//     tolerates per-holding quote failures.
//   - Market Context: technical signals, risk analytics and a macro snapshot
//     derived from daily history bars.
//
// This package serves as the foundational logic for the `cpfr` command-line
// tool; market data arrives through injected price sources and reports leave
// through the renderer package.
package cpfolio
