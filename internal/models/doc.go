// Package models defines the core domain models for the OTT share matcher.
//
// # Models
//
//   - User: an entry in the user directory; only its identity is needed here
//   - WaitingEntry: one user's request to share one streaming service
//   - Room: the persisted result of a completed sharing group
//   - Outcome: the result of a group formation attempt
//
// # Design Principles
//
// 1. **Waiting pool and rooms are disjoint**: once a group is formed its entries
// are deleted in the same transaction that creates the room
// 2. **Quorums are data**: the per-service member count lives in one table
// (see Quorum), never in scattered branches
// 3. **Incomplete is not an error**: formation attempts that find too few
// members return an Outcome, not an error
// 4. **IDs, not pointers**: relationships are expressed through IDs
package models
