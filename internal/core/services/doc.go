// Package services implements the document generation core: the recursive
// tree builder, the file selection policy, the content resolver, the
// document assembler, and the Documents service that ties them to the
// driven ports.
package services
