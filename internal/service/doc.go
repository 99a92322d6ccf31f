// Package service contains the application use cases of the revision
// backend. It coordinates domain objects, the stores defined in
// internal/store and external collaborators such as the content provider
// and the mailer.
//
// Services:
//   - GenerationService decides whether to call the content provider for a
//     chapter, enforces the daily quota and commits generated items together
//     with the quota increment.
//   - UserService handles signup, password login, one-time passcodes and
//     profile updates.
//   - RevisionService records quiz progress and MCQ attempts, serves the
//     daily revision set and resets a chapter's attempt history.
//
// Services receive their dependencies through constructors and never depend
// on a specific storage or transport implementation.
package service
