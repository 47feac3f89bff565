// Package taskclaimservice governs the claim, submit and review lifecycle of
// paid tasks under per-task capacity and per-user daily quota limits.
//
// Capacity and quota are enforced inside a single repository write together
// with the claim insert, so concurrent claimers never overshoot a task.
package taskclaimservice
