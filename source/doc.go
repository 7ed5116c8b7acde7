// Package source provides the collaborators an assembler.Assembler needs
// from the outside world: reading file content, resolving the project
// root, and noticing when selected files change on disk.
package source
