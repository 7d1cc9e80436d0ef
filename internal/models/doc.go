// Package models defines the core domain models for the scavenger hunt.
//
// # Models
//
//   - User: a registered participant (email, name, major, selfie)
//   - Group: a team of 2-4 users progressing through checkpoints together
//   - MemberSlot: one positional member reference inside a Group
//   - Hint: a riddle from the fixed question pool
//   - Globals: the singleton game state row
//   - Location: the hidden location assembled at the final checkpoint
//
// # Design Principles
//
// 1. **Slots over columns**: Group members are an ordered slice of MemberSlot
// records rather than four nullable id columns, so allocation and progress
// checks are loops instead of per-column branches.
//
// 2. **Avoid circular references**: models reference each other by ID string,
// never by pointer.
//
// 3. **Flags flip once**: Found, Slot.Solved, LocationIsSolved,
// AssemblySolved and Finished only ever transition false to true; the storage
// layer enforces this with conditional updates.
package models
