// Package ui owns everything the user sees and types: leveled colored
// messages, process termination on fatal conditions, line and masked
// prompts, and the process-level interrupt handler.
package ui
