// Package handlers implements the business logic for saintcloud commands.
//
// Handlers receive parsed arguments from the commands package, wire the App
// Engine directory into the audit pipeline and talk to the user through the
// writers and reader they are given. External collaborators are held in
// package-level factory variables so tests can replace them.
package handlers
