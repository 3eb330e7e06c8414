// Package task owns the task collection and its JSON persistence.
//
// The persisted file (tasks.json) is a JSON array of task objects:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "Submit report",
//	    "priority": "high",
//	    "due_date": "2024-05-01",
//	    "category": "Work",
//	    "tags": ["quarterly"],
//	    "completed": false,
//	    "created_at": "2024-04-20T09:30:00Z"
//	  }
//	]
//
// Optional fields (due_date, category, tags, completed_at) are omitted
// when absent. Timestamps are RFC 3339 UTC; due dates carry no time
// component and marshal as YYYY-MM-DD.
//
// # Invariants
//
//   - ids are positive, unique, and assigned as max+1; deleted ids are
//     never reused
//   - descriptions are never empty
//   - completed_at is present exactly when completed is true
//   - the file on disk is replaced atomically (temp file + rename), so a
//     crash mid-write never leaves a truncated document behind
//
// # Error taxonomy
//
//   - ValidationError: bad input to Add or a malformed record
//   - NotFoundError: unknown id passed to Get, Complete, or Delete
//   - CorruptStoreError: the persisted file exists but cannot be read
//   - ImportError: a malformed import document (the store is untouched)
//
// Writes are single-process and synchronous. Two processes racing to
// save the same file is an accepted limitation, not a supported mode.
package task
